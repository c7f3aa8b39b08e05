package model

import (
	"fmt"
	"strings"
)

// UserID identifies an account on the transport API
type UserID string

// Identity is the authenticated user's profile as reported by the API
type Identity struct {
	ID          UserID `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Role        Role   `json:"role"`
	IsVerified  bool   `json:"is_verified"`
	DateJoined  string `json:"date_joined,omitempty"`
}

// DisplayName returns the best available name for the user
func (i Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	switch {
	case name != "":
		return name
	case i.Username != "":
		return i.Username
	default:
		return i.Email
	}
}

// RegistrationFields is the full field set accepted by the registration endpoint
type RegistrationFields struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
	Role            Role   `json:"role"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// Profile holds the role-specific profile document (student or organizer).
// Fields vary by role so it is kept as a flat map of the API's JSON.
type Profile map[string]any

// String returns the string form of a profile field, or "" if missing
func (p Profile) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// ProfileField is a profile entry the user may edit
type ProfileField struct {
	Key   string
	Label string
}

var (
	studentProfileFields = []ProfileField{
		{"student_id", "Student ID"},
		{"department", "Department"},
		{"level", "Level"},
		{"hostel_name", "Hostel"},
		{"room_number", "Room Number"},
		{"emergency_contact_name", "Emergency Contact"},
		{"emergency_contact_phone", "Emergency Contact Phone"},
	}
	organizerProfileFields = []ProfileField{
		{"business_name", "Business Name"},
		{"license_number", "License Number"},
		{"bank_name", "Bank Name"},
		{"account_holder_name", "Account Holder"},
		{"bank_account_number", "Account Number"},
		{"mobile_money_number", "Mobile Money Number"},
	}
)

// EditableProfileFields returns the profile fields a user with role may change
func EditableProfileFields(role Role) []ProfileField {
	if role.IsOrganizer() {
		return organizerProfileFields
	}
	return studentProfileFields
}
