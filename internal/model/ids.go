package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseTransportOptionID validates a route id taken from user input
func ParseTransportOptionID(s string) (TransportOptionID, error) {
	if err := validateID(s); err != nil {
		return "", err
	}
	return TransportOptionID(s), nil
}

// ParseBookingID validates a booking id taken from user input
func ParseBookingID(s string) (BookingID, error) {
	if err := validateID(s); err != nil {
		return "", err
	}
	return BookingID(s), nil
}

// API resources are keyed by UUID
func validateID(s string) error {
	if _, err := uuid.Parse(s); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidID, s)
	}
	return nil
}
