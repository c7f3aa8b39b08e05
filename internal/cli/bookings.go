package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/buitransport/internal/model"
)

func newBookingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage your bookings",
	}

	cmd.AddCommand(newBookingsListCmd(a))
	cmd.AddCommand(newBookingsCreateCmd(a))
	cmd.AddCommand(newBookingsCancelCmd(a))

	return cmd
}

func newBookingsListCmd(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter model.BookingStatus
			if status != "" {
				var ok bool
				if filter, ok = model.ParseBookingStatus(status); !ok {
					return fmt.Errorf("invalid status %q: must be one of pending, confirmed, completed, cancelled", status)
				}
			}
			if _, err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			bookings, err := a.session.Client().MyBookings(cmd.Context())
			if err != nil {
				return err
			}
			a.out.Print(model.FilterBookings(bookings, filter))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only show bookings with this status")

	return cmd
}

func newBookingsCreateCmd(a *app) *cobra.Command {
	var (
		seats   int
		payment string
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "create <option-id>",
		Short: "Book seats on a transport option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseTransportOptionID(args[0])
			if err != nil {
				return err
			}
			if seats <= 0 {
				return model.ErrInvalidSeats
			}
			if !model.PaymentMethod(payment).Valid() {
				return fmt.Errorf("invalid payment method %q: must be wallet, card or bank_transfer", payment)
			}
			if _, err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			booking, err := a.session.Client().CreateBooking(cmd.Context(), model.BookingRequest{
				TransportOption: id,
				SeatsBooked:     seats,
				PaymentMethod:   model.PaymentMethod(payment),
				SpecialRequests: notes,
			})
			if err != nil {
				return err
			}
			a.out.Print(booking)
			return nil
		},
	}

	cmd.Flags().IntVar(&seats, "seats", 1, "Number of seats")
	cmd.Flags().StringVar(&payment, "payment-method", string(model.PaymentWallet), "wallet, card or bank_transfer")
	cmd.Flags().StringVar(&notes, "notes", "", "Special requests for the organizer")

	return cmd
}

func newBookingsCancelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a pending or confirmed booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseBookingID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			if err := a.session.Client().CancelBooking(cmd.Context(), id); err != nil {
				return err
			}
			a.out.PrintMessage(fmt.Sprintf("Booking %s cancelled", id))
			return nil
		},
	}
}
