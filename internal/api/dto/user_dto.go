package dto

import (
	"github.com/campus-kit/society-events/internal/domain"
)

// SignupRequest payload for new accounts. Presence is checked in the
// service so empty fields answer 409, not a validation 400.
type SignupRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest starts the password recovery flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest consumes a recovery code.
type ResetPasswordRequest struct {
	Code        string `json:"verificationCode" validate:"required"`
	UserID      string `json:"userId" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// VerifyAccountRequest consumes a signup verification code.
type VerifyAccountRequest struct {
	Code   string `json:"verificationCode" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

// TokenResponse carries a fresh JWT.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

// NewUserResponse maps a domain user, dropping the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     string(user.Role),
		Verified: user.Verified,
	}
}
