package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/model"
)

// NewRootCmd creates the root command. Output goes to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg, cfgErr := DefaultConfig()
	if cfg == nil {
		cfg = &Config{}
	}
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "btc",
		Short: "Command-line client for BUI Transport",
		Long: `btc books campus transport from the terminal.

It talks to the BUI Transport REST API directly and keeps your login in a
credential file, so you stay signed in between commands until you log out
or the credential expires.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			*a = *newApp(cfg, stdout, stderr)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "API base URL (env: BTC_API)")
	rootCmd.PersistentFlags().StringVar(&cfg.CredentialFile, "credential-file", cfg.CredentialFile, "Credential file path (env: BTC_CREDENTIAL_FILE)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "API request timeout (env: BTC_TIMEOUT)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log API activity to stderr")

	rootCmd.AddCommand(newLoginCmd(a))
	rootCmd.AddCommand(newRegisterCmd(a))
	rootCmd.AddCommand(newLogoutCmd(a))
	rootCmd.AddCommand(newWhoamiCmd(a))
	rootCmd.AddCommand(newDashboardCmd(a))
	rootCmd.AddCommand(newTransportCmd(a))
	rootCmd.AddCommand(newBookingsCmd(a))

	return rootCmd
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		format := "text"
		if f := cmd.Flag("output"); f != nil {
			format = f.Value.String()
		}
		NewOutput(format, os.Stdout, os.Stderr).PrintError(err)
		return exitCode(err)
	}
	return 0
}

// exitCode is 2 for a missing or rejected login and 1 otherwise
func exitCode(err error) int {
	if errors.Is(err, gateway.Unauthorized) || errors.Is(err, model.ErrNotAuthenticated) {
		return 2
	}
	return 1
}
