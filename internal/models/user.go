package models

// User represents an admin-app account
type User struct {
	ID            string `json:"_id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	AdminVerified bool   `json:"adminVerified"`
}

// SignupRequest is the payload for user registration
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the payload for credential login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the access token issued on login or refresh
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user,omitempty"`
}

// ResetPasswordRequest is the payload for a password reset
type ResetPasswordRequest struct {
	Email string `json:"email"`
}
