package onboarding

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 6

// emailRun is a run of characters that are neither whitespace nor '@'.
// Whitespace covers vertical tab, Unicode separators and the byte order mark.
const emailRun = `[^\s\v\p{Z}\x{FEFF}@]+`

var (
	validate      = validator.New()
	emailPattern  = regexp.MustCompile(`^` + emailRun + `@` + emailRun + `\.` + emailRun + `$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	mobileFiller  = strings.NewReplacer(" ", "", "-", "")
)

func requireFields(form any) error {
	if err := validate.Struct(form); err != nil {
		return ErrMissingFields
	}
	return nil
}

// ValidEmail reports whether email has the shape local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeMobile strips spaces and hyphens and returns the digits when exactly
// ten remain.
func NormalizeMobile(mobile string) (string, bool) {
	digits := mobileFiller.Replace(mobile)
	if !mobilePattern.MatchString(digits) {
		return "", false
	}
	return digits, true
}

// StrongPassword reports whether the password meets the minimum length.
func StrongPassword(password string) bool {
	return utf8.RuneCountInString(password) >= minPasswordLength
}

// ValidateSignIn checks a sign-in submission.
func ValidateSignIn(creds Credentials) error {
	if err := requireFields(creds); err != nil {
		return err
	}
	if !ValidEmail(creds.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateSignUp checks a sign-up submission against the credentials captured
// at sign-in. The first failing rule wins. Empty prior credentials skip the
// consistency check so sign-up can be entered directly.
func ValidateSignUp(in SignUpInput, prior Credentials) error {
	if err := requireFields(in); err != nil {
		return err
	}
	if !in.AgreedToTerms {
		return ErrTermsNotAccepted
	}
	if !ValidEmail(in.Email) {
		return ErrInvalidEmail
	}
	if _, ok := NormalizeMobile(in.MobileNumber); !ok {
		return ErrInvalidMobile
	}
	if !StrongPassword(in.Password) {
		return ErrWeakPassword
	}
	if prior.Empty() {
		return nil
	}
	if in.Email != prior.Email || in.Password != prior.Password {
		return ErrCredentialsMismatch
	}
	return nil
}
