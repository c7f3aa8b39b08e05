package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/services/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password, dashboard string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			landing := session.DashboardChoice(dashboard).Resolve(result.Role())
			a.out.Print(SessionView{User: result.User, Dashboard: landing.String()})
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&dashboard, "dashboard", string(session.ChoiceAuto), "Sign in as: auto, student, transport_organizer")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var fields model.RegistrationFields
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields.Role = model.Role(role)
			if fields.Role != model.RoleStudent && fields.Role != model.RoleTransportOrganizer {
				return fmt.Errorf("invalid role %q: must be student or transport_organizer", role)
			}
			// The password is typed once on the command line
			fields.PasswordConfirm = fields.Password

			result, err := a.session.Register(cmd.Context(), fields)
			if err != nil {
				return err
			}
			if !result.HasCredential() {
				a.out.PrintMessage("Registration successful! Please log in with your credentials.")
				return nil
			}

			a.out.Print(SessionView{User: result.User, Dashboard: session.DashboardFor(result.Role()).String()})
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&fields.Username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&fields.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&fields.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&fields.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&role, "role", string(model.RoleStudent), "Account type: student or transport_organizer")
	cmd.Flags().StringVar(&fields.Password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Logout(cmd.Context())
			a.out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			a.out.Print(state.Identity)
			return nil
		},
	}
}

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for your account type",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}

			dashboard := session.DashboardFor(state.Role())
			view := DashboardView{Dashboard: dashboard.String(), Path: dashboard.Path()}
			api := a.session.Client()
			if dashboard == session.OrganizerDashboard {
				view.Organizer, err = api.OrganizerStats(cmd.Context())
			} else {
				view.Student, err = api.BookingStats(cmd.Context())
			}
			if err != nil {
				return err
			}

			a.out.Print(view)
			return nil
		},
	}
}
