package onboarding

import "time"

// Credentials are captured at sign-in and re-checked at sign-up.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Empty reports whether no credentials were captured for the session.
func (c Credentials) Empty() bool {
	return c.Email == ""
}

// SignUpInput is the sign-up form as submitted by the user.
type SignUpInput struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required"`
	MobileNumber  string `json:"mobile_number" validate:"required"`
	Password      string `json:"password" validate:"required"`
	AgreedToTerms bool   `json:"agreed_to_terms"`
}

// Applicant is the accepted sign-up profile kept until the session is verified.
type Applicant struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	PasswordHash []byte `json:"password_hash"`
}

// Session is the per-user flow context handed to every step. Version is bumped
// by every successful save and guards against concurrent writers.
type Session struct {
	ID          string      `json:"id"`
	Version     int64       `json:"version"`
	Stage       Stage       `json:"stage"`
	Credentials Credentials `json:"credentials"`
	OTP         OTP         `json:"otp"`
	Applicant   *Applicant  `json:"applicant,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
