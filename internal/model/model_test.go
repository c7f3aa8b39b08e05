package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountAcceptsStringsAndNumbers(t *testing.T) {
	var v struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1500.50","b":250,"c":null}`), &v))

	assert.Equal(t, "1500.50", v.A.String())
	assert.Equal(t, 250.0, v.B.Float())
	assert.Equal(t, "0.00", v.C.String())
}

func TestAuthResultFlatTokens(t *testing.T) {
	var r AuthResult
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"a","refresh_token":"r","user":{"id":"1","role":"student"}}`), &r))

	assert.True(t, r.HasCredential())
	assert.Equal(t, Credential{AccessToken: "a", RefreshToken: "r"}, r.Credential())
	assert.Equal(t, RoleStudent, r.Role())
}

func TestAuthResultNestedTokens(t *testing.T) {
	var r AuthResult
	require.NoError(t, json.Unmarshal([]byte(`{"tokens":{"access":"a","refresh":"r"},"user":{"id":"1","role":"transport_organizer"},"message":"ok"}`), &r))

	assert.True(t, r.HasCredential())
	assert.Equal(t, "a", r.AccessToken)
	assert.Equal(t, "r", r.RefreshToken)
	assert.Equal(t, "ok", r.Message)
}

func TestAuthResultWithoutUserHasNoCredential(t *testing.T) {
	var r AuthResult
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"a"}`), &r))

	assert.False(t, r.HasCredential())
	assert.Equal(t, Role(""), r.Role())
}

func TestRoleIsOrganizer(t *testing.T) {
	assert.True(t, RoleOrganizer.IsOrganizer())
	assert.True(t, RoleTransportOrganizer.IsOrganizer())
	assert.False(t, RoleStudent.IsOrganizer())
	assert.False(t, Role("").IsOrganizer())
	assert.Equal(t, "Transport Organizer", RoleOrganizer.Label())
}

func TestIdentityDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Obi", Identity{FirstName: "Ada", LastName: "Obi", Username: "ada"}.DisplayName())
	assert.Equal(t, "ada", Identity{Username: "ada", Email: "a@b.com"}.DisplayName())
	assert.Equal(t, "a@b.com", Identity{Email: "a@b.com"}.DisplayName())
}

func TestFilterTransportOptions(t *testing.T) {
	options := []TransportOption{
		{RouteName: "Campus Shuttle", DepartureLocation: "Main Gate", Destination: "Ibadan"},
		{RouteName: "City Express", DepartureLocation: "Hostel Block", Destination: "Lagos"},
	}

	assert.Len(t, FilterTransportOptions(options, "", ""), 2)
	assert.Len(t, FilterTransportOptions(options, "shuttle", ""), 1)
	assert.Len(t, FilterTransportOptions(options, "hostel", "lagos"), 1)
	assert.Empty(t, FilterTransportOptions(options, "shuttle", "lagos"))
}

func TestFilterBookings(t *testing.T) {
	bookings := []Booking{
		{BookingStatus: BookingPending},
		{BookingStatus: BookingCancelled},
		{BookingStatus: BookingPending},
	}

	assert.Len(t, FilterBookings(bookings, ""), 3)
	assert.Len(t, FilterBookings(bookings, BookingPending), 2)
	assert.Empty(t, FilterBookings(bookings, BookingCompleted))
}

func TestBookingCancellable(t *testing.T) {
	assert.True(t, Booking{BookingStatus: BookingPending}.Cancellable())
	assert.True(t, Booking{BookingStatus: BookingConfirmed}.Cancellable())
	assert.False(t, Booking{BookingStatus: BookingCompleted}.Cancellable())
	assert.False(t, Booking{BookingStatus: BookingCancelled}.Cancellable())
}

func TestQuoteFor(t *testing.T) {
	quote := QuoteFor(TransportOption{Price: "1500"}, 3)

	assert.InDelta(t, 4500.0, quote.Subtotal, 0.001)
	assert.InDelta(t, 90.0, quote.PlatformFee, 0.001)
	assert.InDelta(t, 4590.0, quote.Total, 0.001)
}

func TestParseIDs(t *testing.T) {
	id := uuid.NewString()

	optionID, err := ParseTransportOptionID(id)
	require.NoError(t, err)
	assert.Equal(t, TransportOptionID(id), optionID)

	_, err = ParseBookingID("42; DROP")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestParseBookingStatus(t *testing.T) {
	status, ok := ParseBookingStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, BookingConfirmed, status)

	_, ok = ParseBookingStatus("lost")
	assert.False(t, ok)
}

func TestProfileString(t *testing.T) {
	p := Profile{"department": "Physics", "level": float64(200), "hostel_name": nil}

	assert.Equal(t, "Physics", p.String("department"))
	assert.Equal(t, "200", p.String("level"))
	assert.Equal(t, "", p.String("hostel_name"))
	assert.Equal(t, "", p.String("missing"))
}

func TestEditableProfileFields(t *testing.T) {
	assert.Equal(t, "student_id", EditableProfileFields(RoleStudent)[0].Key)
	assert.Equal(t, "business_name", EditableProfileFields(RoleTransportOrganizer)[0].Key)
}
