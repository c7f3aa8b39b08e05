package model

import (
	"encoding/json"
	"time"

	"golang.org/x/oauth2"
)

// Credential is the persisted access/refresh token pair for a logged-in client
type Credential struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IsZero reports whether the credential carries no access token
func (c Credential) IsZero() bool {
	return c.AccessToken == ""
}

// OAuth2Token converts the credential to a bearer token.
// expiry may be zero when the access token's lifetime is unknown.
func (c Credential) OAuth2Token(expiry time.Time) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       expiry,
	}
}

// AuthResult is the payload returned by the login and registration endpoints
type AuthResult struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *Identity `json:"user,omitempty"`
	Message      string    `json:"message,omitempty"`
}

// UnmarshalJSON accepts both the flat token fields and the nested
// {"tokens":{"access":...,"refresh":...}} form
func (a *AuthResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		AccessToken  string    `json:"access_token"`
		RefreshToken string    `json:"refresh_token"`
		User         *Identity `json:"user"`
		Message      string    `json:"message"`
		Tokens       *struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		} `json:"tokens"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.AccessToken = raw.AccessToken
	a.RefreshToken = raw.RefreshToken
	a.User = raw.User
	a.Message = raw.Message
	if raw.Tokens != nil {
		if a.AccessToken == "" {
			a.AccessToken = raw.Tokens.Access
		}
		if a.RefreshToken == "" {
			a.RefreshToken = raw.Tokens.Refresh
		}
	}
	return nil
}

// Credential returns the token pair carried by the result
func (a AuthResult) Credential() Credential {
	return Credential{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
	}
}

// HasCredential reports whether the result carries a usable token pair and identity
func (a AuthResult) HasCredential() bool {
	return a.AccessToken != "" && a.User != nil
}

// Role returns the user's role, or "" when the result has no user
func (a AuthResult) Role() Role {
	if a.User == nil {
		return ""
	}
	return a.User.Role
}
