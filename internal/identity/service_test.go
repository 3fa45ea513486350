package identity

import (
    "context"
    "errors"
    "testing"

    "golang.org/x/crypto/bcrypt"
)

func TestRegisterAndGet(t *testing.T) {
    repo := NewMemoryRepository()
    svc := NewService(repo)
    ctx := context.Background()

    hash, err := HashPassword("secret")
    if err != nil {
        t.Fatalf("hash: %v", err)
    }
    user, err := svc.Register(ctx, Registration{Name: "Asha", Email: "a@b.com", Mobile: "9876543210", PasswordHash: hash})
    if err != nil {
        t.Fatalf("register: %v", err)
    }
    if user.ID == "" || user.TokenVersion != 0 {
        t.Fatalf("unexpected user %+v", user)
    }
    if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("secret")); err != nil {
        t.Fatalf("stored hash does not match password: %v", err)
    }

    fetched, err := svc.Get(ctx, user.ID)
    if err != nil {
        t.Fatalf("get: %v", err)
    }
    if fetched.Email != "a@b.com" || fetched.Mobile != "9876543210" {
        t.Fatalf("unexpected fetched user %+v", fetched)
    }
}

func TestRegisterDuplicateEmail(t *testing.T) {
    svc := NewService(NewMemoryRepository())
    ctx := context.Background()
    reg := Registration{Name: "Asha", Email: "a@b.com", PasswordHash: []byte("hash")}

    if _, err := svc.Register(ctx, reg); err != nil {
        t.Fatalf("register: %v", err)
    }
    if _, err := svc.Register(ctx, reg); !errors.Is(err, ErrUserExists) {
        t.Fatalf("expected ErrUserExists, got %v", err)
    }
}

func TestRegisterRequiresHash(t *testing.T) {
    svc := NewService(NewMemoryRepository())
    if _, err := svc.Register(context.Background(), Registration{Email: "a@b.com"}); err == nil {
        t.Fatal("expected error without password hash")
    }
}

func TestGetUnknown(t *testing.T) {
    svc := NewService(NewMemoryRepository())
    if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
        t.Fatalf("expected ErrUserNotFound, got %v", err)
    }
}
