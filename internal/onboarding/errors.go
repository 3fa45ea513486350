package onboarding

import "errors"

var (
	// ErrMissingFields indicates a required form field was left empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidEmail indicates the email does not look like local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidMobile indicates the mobile number is not exactly 10 digits.
	ErrInvalidMobile = errors.New("mobile number must have 10 digits")
	// ErrWeakPassword indicates the password is shorter than the minimum length.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrTermsNotAccepted indicates the user did not agree to the terms.
	ErrTermsNotAccepted = errors.New("terms and conditions not accepted")
	// ErrCredentialsMismatch indicates the sign-up email or password differs from
	// the credentials captured at sign-in.
	ErrCredentialsMismatch = errors.New("credentials do not match sign-in")
	// ErrIncompleteOtp indicates at least one verification code slot is empty.
	ErrIncompleteOtp = errors.New("verification code incomplete")

	// ErrWrongStage indicates the step is not reachable from the session's current stage.
	ErrWrongStage = errors.New("step not available at current stage")
	// ErrFlowComplete indicates the session is already verified.
	ErrFlowComplete = errors.New("onboarding already completed")
	// ErrNoPreviousStage indicates back navigation from the first stage.
	ErrNoPreviousStage = errors.New("no previous stage")
	// ErrSlotOutOfRange indicates an OTP slot index outside 0..3.
	ErrSlotOutOfRange = errors.New("otp slot out of range")
	// ErrSessionNotFound indicates the session id is unknown or expired.
	ErrSessionNotFound = errors.New("onboarding session not found")
	// ErrStaleSession indicates the session was saved by another request since it was loaded.
	ErrStaleSession = errors.New("onboarding session changed concurrently")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrMissingFields, "missing_fields"},
	{ErrInvalidEmail, "invalid_email"},
	{ErrInvalidMobile, "invalid_mobile"},
	{ErrWeakPassword, "weak_password"},
	{ErrTermsNotAccepted, "terms_not_accepted"},
	{ErrCredentialsMismatch, "credentials_mismatch"},
	{ErrIncompleteOtp, "incomplete_otp"},
	{ErrWrongStage, "wrong_stage"},
	{ErrFlowComplete, "flow_complete"},
	{ErrNoPreviousStage, "no_previous_stage"},
	{ErrSlotOutOfRange, "slot_out_of_range"},
	{ErrSessionNotFound, "session_not_found"},
	{ErrStaleSession, "session_conflict"},
}

// Code returns a stable machine-readable code for onboarding errors, or
// "internal" for anything outside the taxonomy.
func Code(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal"
}

// IsValidation reports whether err is a user-recoverable input error.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidMobile),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrTermsNotAccepted),
		errors.Is(err, ErrIncompleteOtp),
		errors.Is(err, ErrSlotOutOfRange):
		return true
	}
	return false
}
