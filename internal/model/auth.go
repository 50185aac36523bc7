package model

import (
	"github.com/google/uuid"
)

// Actor is the authenticated identity threaded into each operation. It is
// built from validated token claims at the boundary; operations never reach
// into ambient session state.
type Actor struct {
	UserID    uuid.UUID
	Username  string
	IsPatient bool
	IsDoctor  bool
}

// LoginRequest carries credentials for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned on successful authentication. RedirectTo tells
// the client which dashboard the account should land on.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	RedirectTo   string `json:"redirect_to"`
}

// ForgotPasswordRequest starts the password-reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password-reset flow.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
