package domain

import "time"

// VerificationType distinguishes signup confirmation from password reset.
type VerificationType string

const (
	VerificationTypeNewUser        VerificationType = "newUser"
	VerificationTypeForgotPassword VerificationType = "forgotPassword"
)

// Verification is a single-use code mailed to a user. Rows are deleted
// when consumed; no expiry is enforced.
type Verification struct {
	ID        string
	UserID    string
	Code      string
	Type      VerificationType
	CreatedAt time.Time
}
