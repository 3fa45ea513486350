package identity

import "time"

// User represents a patient account created once onboarding is verified.
type User struct {
    ID           string
    Name         string
    Email        string
    Mobile       string
    PasswordHash []byte
    TokenVersion int
    CreatedAt    time.Time
}

// Registration carries the verified applicant data needed to open an account.
type Registration struct {
    Name         string
    Email        string
    Mobile       string
    PasswordHash []byte
}
