package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// TransportOptionID identifies a route offered by an organizer
type TransportOptionID string

// Amount is a decimal money value as sent by the API.
// The API sends decimals as strings; plain numbers are accepted too.
type Amount string

// UnmarshalJSON accepts a JSON string or number
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// Float returns the numeric value, or 0 if it cannot be parsed
func (a Amount) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(a)), 64)
	if err != nil {
		return 0
	}
	return f
}

// String formats the amount with two decimal places
func (a Amount) String() string {
	return strconv.FormatFloat(a.Float(), 'f', 2, 64)
}

// Naira formats a value in naira with two decimal places
func Naira(v float64) string {
	return "₦" + strconv.FormatFloat(v, 'f', 2, 64)
}

// TransportOption is a bookable route
type TransportOption struct {
	ID                TransportOptionID `json:"id"`
	RouteName         string            `json:"route_name"`
	DepartureLocation string            `json:"departure_location"`
	Destination       string            `json:"destination"`
	DepartureTime     string            `json:"departure_time"`
	ArrivalTime       string            `json:"arrival_time"`
	Price             Amount            `json:"price"`
	TotalSeats        int               `json:"total_seats"`
	AvailableSeats    int               `json:"available_seats"`
	DaysOfOperation   []string          `json:"days_of_operation"`
	IsActive          bool              `json:"is_active"`
	OrganizerName     string            `json:"organizer_name,omitempty"`
}

// Matches reports whether the option matches a free-text search over route name and
// departure location, and a destination filter. Empty filters match everything.
func (o TransportOption) Matches(search, destination string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	destination = strings.ToLower(strings.TrimSpace(destination))

	matchesSearch := search == "" ||
		strings.Contains(strings.ToLower(o.RouteName), search) ||
		strings.Contains(strings.ToLower(o.DepartureLocation), search)
	matchesDestination := destination == "" ||
		strings.Contains(strings.ToLower(o.Destination), destination)

	return matchesSearch && matchesDestination
}

// FilterTransportOptions returns the options matching search and destination, in order
func FilterTransportOptions(options []TransportOption, search, destination string) []TransportOption {
	result := make([]TransportOption, 0, len(options))
	for _, o := range options {
		if o.Matches(search, destination) {
			result = append(result, o)
		}
	}
	return result
}
