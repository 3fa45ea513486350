package identity

import (
    "context"
    "errors"
    "time"

    "github.com/google/uuid"
    "golang.org/x/crypto/bcrypt"
)

// Service manages patient accounts.
type Service struct {
    repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
    return &Service{repo: repo}
}

// HashPassword returns the bcrypt hash stored for an account password.
func HashPassword(password string) ([]byte, error) {
    return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Register opens an account for a verified applicant.
func (s *Service) Register(ctx context.Context, reg Registration) (User, error) {
    if reg.Email == "" || len(reg.PasswordHash) == 0 {
        return User{}, errors.New("email and password hash are required")
    }

    user := User{
        ID:           uuid.New().String(),
        Name:         reg.Name,
        Email:        reg.Email,
        Mobile:       reg.Mobile,
        PasswordHash: reg.PasswordHash,
        CreatedAt:    time.Now().UTC(),
    }

    if err := s.repo.Create(ctx, user); err != nil {
        return User{}, err
    }

    return user, nil
}

// Get fetches an account by id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
    return s.repo.FindByID(ctx, id)
}
