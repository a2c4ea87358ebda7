package dto

import "time"

// RegisterRequest payload for new teachers. Only email, password and names are required.
type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	UniversityName string `json:"university_name"`
	Gender         string `json:"gender"`
	YearJoined     *int   `json:"year_joined"`
	Department     string `json:"department"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for register and login.
type AuthResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MessageResponse is a body-only acknowledgement.
type MessageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
