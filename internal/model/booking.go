package model

// BookingID identifies a booking
type BookingID string

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists the statuses in display order
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

// ParseBookingStatus returns the status for s, or false if s is not a known status
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, status := range BookingStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// PaymentMethod is how a booking is paid for
type PaymentMethod string

const (
	PaymentWallet       PaymentMethod = "wallet"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentMethods lists accepted payment methods in display order
var PaymentMethods = []PaymentMethod{PaymentWallet, PaymentCard, PaymentBankTransfer}

// Valid reports whether m is an accepted payment method
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// PlatformFeeRate is the share of the fare added as a platform fee
const PlatformFeeRate = 0.02

// Booking is a reservation of seats on a transport option
type Booking struct {
	ID              BookingID        `json:"id"`
	TransportOption *TransportOption `json:"transport_option,omitempty"`
	BookingDate     string           `json:"booking_date"`
	SeatsBooked     int              `json:"seats_booked"`
	TotalAmount     Amount           `json:"total_amount"`
	PlatformFee     Amount           `json:"platform_fee"`
	BookingStatus   BookingStatus    `json:"booking_status"`
	PaymentStatus   string           `json:"payment_status"`
	PaymentMethod   PaymentMethod    `json:"payment_method"`
	SpecialRequests string           `json:"special_requests,omitempty"`
	StudentName     string           `json:"student_name,omitempty"`
	CreatedAt       string           `json:"created_at,omitempty"`
}

// Cancellable reports whether the booking may still be cancelled by the student
func (b Booking) Cancellable() bool {
	return b.BookingStatus == BookingPending || b.BookingStatus == BookingConfirmed
}

// RouteName returns the booked route's name, or "" when not embedded
func (b Booking) RouteName() string {
	if b.TransportOption == nil {
		return ""
	}
	return b.TransportOption.RouteName
}

// FilterBookings returns bookings with the given status; an empty status returns all
func FilterBookings(bookings []Booking, status BookingStatus) []Booking {
	if status == "" {
		return bookings
	}
	result := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.BookingStatus == status {
			result = append(result, b)
		}
	}
	return result
}

// BookingRequest is the body sent to create a booking
type BookingRequest struct {
	TransportOption TransportOptionID `json:"transport_option"`
	SeatsBooked     int               `json:"seats_booked"`
	PaymentMethod   PaymentMethod     `json:"payment_method"`
	SpecialRequests string            `json:"special_requests"`
}

// Quote is the price summary shown before booking
type Quote struct {
	Subtotal    float64
	PlatformFee float64
	Total       float64
}

// QuoteFor computes the price summary for booking seats on an option
func QuoteFor(option TransportOption, seats int) Quote {
	subtotal := option.Price.Float() * float64(seats)
	fee := subtotal * PlatformFeeRate
	return Quote{
		Subtotal:    subtotal,
		PlatformFee: fee,
		Total:       subtotal + fee,
	}
}

// BookingStats summarises a student's bookings
type BookingStats struct {
	TotalBookings     int    `json:"total_bookings"`
	PendingBookings   int    `json:"pending_bookings"`
	ConfirmedBookings int    `json:"confirmed_bookings"`
	CompletedBookings int    `json:"completed_bookings"`
	CancelledBookings int    `json:"cancelled_bookings"`
	TotalSpent        Amount `json:"total_spent"`
}

// OrganizerStats summarises an organizer's business
type OrganizerStats struct {
	TotalBookings     int    `json:"total_bookings"`
	PendingBookings   int    `json:"pending_bookings"`
	CompletedBookings int    `json:"completed_bookings"`
	ActiveRoutes      int    `json:"active_routes"`
	TotalEarnings     Amount `json:"total_earnings"`
	PlatformFees      Amount `json:"platform_fees"`
	MonthlyEarnings   Amount `json:"monthly_earnings"`
}
