package authapi

import "time"

// User is the profile shape returned by the remote service. It is the
// authoritative identity record; the client only caches it.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	IsVerified bool      `json:"isVerified"`
	Rating     float64   `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// Envelope is the common response wrapper: {success, message?, data}.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AuthData is the payload of auth-mutating responses: a user plus a
// bearer token for subsequent requests.
type AuthData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// VerifyOTPRequest is the JSON body for POST /auth/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResendOTPRequest is the JSON body for POST /auth/resend-otp.
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordRequest is the JSON body for POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// RefreshTokenRequest is the JSON body for POST /auth/refresh-token.
type RefreshTokenRequest struct {
	Token string `json:"token"`
}
