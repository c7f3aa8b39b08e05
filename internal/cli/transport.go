package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/buitransport/internal/model"
)

func newTransportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transport",
		Short: "Browse transport options",
	}

	cmd.AddCommand(newTransportListCmd(a))
	cmd.AddCommand(newTransportShowCmd(a))

	return cmd
}

func newTransportListCmd(a *app) *cobra.Command {
	var search, destination string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transport options",
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := a.api.ListTransportOptions(cmd.Context())
			if err != nil {
				return err
			}
			a.out.Print(model.FilterTransportOptions(options, search, destination))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Match route name or departure location")
	cmd.Flags().StringVar(&destination, "destination", "", "Match destination")

	return cmd
}

func newTransportShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transport option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseTransportOptionID(args[0])
			if err != nil {
				return err
			}
			option, err := a.api.GetTransportOption(cmd.Context(), id)
			if err != nil {
				return err
			}
			a.out.Print(option)
			return nil
		},
	}
}
