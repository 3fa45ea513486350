package auth

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"

    "github.com/carelink/carelink/internal/config"
    "github.com/carelink/carelink/internal/identity"
)

var (
    // ErrInvalidToken indicates a token that failed signature or claim checks.
    ErrInvalidToken = errors.New("invalid token")
    // ErrTokenInvalidated indicates a token issued before the latest logout.
    ErrTokenInvalidated = errors.New("token version invalidated")
)

// Claims carried by access and refresh tokens.
type Claims struct {
    Email   string `json:"email,omitempty"`
    Version int    `json:"ver"`
    jwt.RegisteredClaims
}

// Service issues and verifies account tokens.
type Service struct {
    cfg   config.Config
    users identity.Repository
    now   func() time.Time
}

// NewService builds a token service signing with the configured secrets.
func NewService(cfg config.Config, users identity.Repository) *Service {
    return &Service{cfg: cfg, users: users, now: time.Now}
}

// TokenPair is returned once an account is verified or refreshed.
type TokenPair struct {
    AccessToken  string `json:"access_token"`
    RefreshToken string `json:"refresh_token"`
    ExpiresIn    int64  `json:"expires_in"`
}

// Issue signs a fresh access/refresh pair for the account.
func (s *Service) Issue(user identity.User) (TokenPair, error) {
    access, err := s.sign(user, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
    if err != nil {
        return TokenPair{}, err
    }
    refresh, err := s.sign(user, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL)
    if err != nil {
        return TokenPair{}, err
    }
    return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: int64(s.cfg.AccessTokenTTL.Seconds())}, nil
}

func (s *Service) sign(user identity.User, secret string, ttl time.Duration) (string, error) {
    now := s.now()
    claims := Claims{
        Email:   user.Email,
        Version: user.TokenVersion,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   user.ID,
            Issuer:    s.cfg.AppName,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
        },
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return "", fmt.Errorf("sign token: %w", err)
    }
    return signed, nil
}

func (s *Service) parse(token, secret string) (*Claims, error) {
    parser := jwt.NewParser(
        jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
        jwt.WithIssuer(s.cfg.AppName),
        jwt.WithTimeFunc(s.now),
    )
    claims := &Claims{}
    parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    if err != nil || !parsed.Valid || claims.Subject == "" {
        return nil, ErrInvalidToken
    }
    return claims, nil
}

// Authorize verifies an access token and checks that its version is current.
func (s *Service) Authorize(ctx context.Context, accessToken string) (identity.User, error) {
    claims, err := s.parse(accessToken, s.cfg.JWTSecret)
    if err != nil {
        return identity.User{}, err
    }
    return s.current(ctx, claims)
}

// Refresh verifies the refresh token and returns a new access token if valid.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, int64, error) {
    claims, err := s.parse(refreshToken, s.cfg.RefreshSecret)
    if err != nil {
        return "", 0, err
    }
    user, err := s.current(ctx, claims)
    if err != nil {
        return "", 0, err
    }
    access, err := s.sign(user, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
    if err != nil {
        return "", 0, err
    }
    return access, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}

// Logout increments token version so older tokens become invalid.
func (s *Service) Logout(ctx context.Context, userID string) error {
    user, err := s.users.FindByID(ctx, userID)
    if err != nil {
        return err
    }
    return s.users.UpdateTokenVersion(ctx, user.ID, user.TokenVersion+1)
}

func (s *Service) current(ctx context.Context, claims *Claims) (identity.User, error) {
    user, err := s.users.FindByID(ctx, claims.Subject)
    if err != nil {
        return identity.User{}, ErrInvalidToken
    }
    if user.TokenVersion != claims.Version {
        return identity.User{}, ErrTokenInvalidated
    }
    return user, nil
}
