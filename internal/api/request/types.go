package request

// LoginRequest is the request body for opening a session
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Dashboard is the optional "sign in as" choice: auto, student or transport_organizer
	Dashboard string `json:"dashboard,omitempty"`
}
