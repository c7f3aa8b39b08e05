package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mcoot/buitransport/internal/model"
)

// Auth

// Login exchanges email and password for a credential
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	req := map[string]string{
		"email":    email,
		"password": password,
	}
	var result model.AuthResult
	if err := c.Post(ctx, "/auth/login/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account. The result may carry no credential when the
// API requires email verification before the first login.
func (c *Client) Register(ctx context.Context, fields model.RegistrationFields) (*model.AuthResult, error) {
	var result model.AuthResult
	if err := c.Post(ctx, "/auth/register/", fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CurrentUser returns the identity the credential belongs to
func (c *Client) CurrentUser(ctx context.Context) (*model.Identity, error) {
	var identity model.Identity
	if err := c.Get(ctx, "/auth/user/", &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Transport options

// ListTransportOptions returns all bookable routes
func (c *Client) ListTransportOptions(ctx context.Context) ([]model.TransportOption, error) {
	var options list[model.TransportOption]
	if err := c.Get(ctx, "/transport/options/", &options); err != nil {
		return nil, err
	}
	return options, nil
}

// GetTransportOption returns a single route
func (c *Client) GetTransportOption(ctx context.Context, id model.TransportOptionID) (*model.TransportOption, error) {
	var option model.TransportOption
	if err := c.Get(ctx, "/transport/options/"+url.PathEscape(string(id))+"/", &option); err != nil {
		return nil, err
	}
	return &option, nil
}

// MyTransportOptions returns the organizer's own routes
func (c *Client) MyTransportOptions(ctx context.Context, limit int) ([]model.TransportOption, error) {
	var options list[model.TransportOption]
	if err := c.Get(ctx, withLimit("/transport/my-options/", limit), &options); err != nil {
		return nil, err
	}
	return options, nil
}

// Bookings

// CreateBooking books seats on a route
func (c *Client) CreateBooking(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	var booking model.Booking
	if err := c.Post(ctx, "/bookings/create/", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// MyBookings returns the student's bookings
func (c *Client) MyBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings list[model.Booking]
	if err := c.Get(ctx, "/bookings/my-bookings/", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelBooking cancels one of the student's bookings
func (c *Client) CancelBooking(ctx context.Context, id model.BookingID) error {
	return c.Patch(ctx, "/bookings/"+url.PathEscape(string(id))+"/cancel/", nil, nil)
}

// BookingStats returns the student's booking summary
func (c *Client) BookingStats(ctx context.Context) (*model.BookingStats, error) {
	var stats model.BookingStats
	if err := c.Get(ctx, "/bookings/stats/", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Organizer

// OrganizerStats returns the organizer's business summary
func (c *Client) OrganizerStats(ctx context.Context) (*model.OrganizerStats, error) {
	var stats model.OrganizerStats
	if err := c.Get(ctx, "/organizer/stats/", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// OrganizerRecentBookings returns the latest bookings on the organizer's routes
func (c *Client) OrganizerRecentBookings(ctx context.Context, limit int) ([]model.Booking, error) {
	var bookings list[model.Booking]
	if err := c.Get(ctx, withLimit("/organizer/recent-bookings/", limit), &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Profile

// Profile returns the user's role-specific profile
func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	var profile model.Profile
	if err := c.Get(ctx, "/users/profile/", &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies a partial update to the profile
func (c *Client) UpdateProfile(ctx context.Context, changes model.Profile) (model.Profile, error) {
	var profile model.Profile
	if err := c.Patch(ctx, "/users/profile/", changes, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func withLimit(path string, limit int) string {
	if limit <= 0 {
		return path
	}
	return fmt.Sprintf("%s?limit=%d", path, limit)
}
