package dto

import "github.com/polkiloo/bankportal/internal/domain/model"

// LoginRequest is the sign-in form.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode,omitempty"`
}

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role,omitempty"`
}

// SessionResponse describes the signed-in user and where the portal should
// take them.
type SessionResponse struct {
	User    model.User `json:"user"`
	Landing string     `json:"landing"`
}

type RegisterResponse struct {
	User      model.User `json:"user"`
	MFAQRCode string     `json:"mfaQrCode,omitempty"`
}

type LandingResponse struct {
	Landing string `json:"landing"`
}
