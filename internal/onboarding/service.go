package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carelink/carelink/internal/auth"
	"github.com/carelink/carelink/internal/identity"
	"github.com/carelink/carelink/internal/notification"
)

// Registrar opens an account for a verified applicant.
type Registrar interface {
	Register(ctx context.Context, reg identity.Registration) (identity.User, error)
}

// TokenIssuer signs tokens for a newly opened account.
type TokenIssuer interface {
	Issue(user identity.User) (auth.TokenPair, error)
}

// Service drives stored sessions through the onboarding steps. Each call loads
// the session, applies exactly one step and saves it only when the step succeeds.
type Service struct {
	store    Store
	accounts Registrar
	tokens   TokenIssuer
	notifier notification.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the onboarding service. accounts and tokens may be nil, in
// which case verification only completes the session.
func NewService(store Store, accounts Registrar, tokens TokenIssuer, notifier notification.Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, accounts: accounts, tokens: tokens, notifier: notifier, logger: logger, now: time.Now}
}

// Verification is the outcome of a successful OTP verification.
type Verification struct {
	Session *Session
	User    *identity.User
	Tokens  *auth.TokenPair
}

// Start opens a new session at the sign-in stage.
func (s *Service) Start(ctx context.Context) (*Session, error) {
	session := NewSession(uuid.NewString(), s.now().UTC())
	if err := s.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.logger.Info("onboarding.started", slog.String("session_id", session.ID))
	return session, nil
}

// Get returns the stored session.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

// SignIn captures credentials for the session.
func (s *Service) SignIn(ctx context.Context, id, email, password string) (*Session, error) {
	return s.apply(ctx, id, "sign_in", func(session *Session) error {
		_, err := session.SignIn(email, password)
		return err
	})
}

// SignUp validates the sign-up form and keeps the applicant profile with a
// hashed password until verification.
func (s *Service) SignUp(ctx context.Context, id string, in SignUpInput) (*Session, error) {
	return s.apply(ctx, id, "sign_up", func(session *Session) error {
		if err := session.SignUp(in); err != nil {
			return err
		}
		hash, err := identity.HashPassword(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		mobile, _ := NormalizeMobile(in.MobileNumber)
		session.Applicant = &Applicant{Name: in.Name, Email: in.Email, Mobile: mobile, PasswordHash: hash}
		return nil
	})
}

// EnterDigit writes an OTP slot and returns the focus hint, if any.
func (s *Service) EnterDigit(ctx context.Context, id string, slot int, value string) (*Session, *FocusHint, error) {
	var hint *FocusHint
	session, err := s.apply(ctx, id, "otp_digit", func(session *Session) error {
		h, moved, err := session.EnterDigit(slot, value)
		if moved {
			hint = &h
		}
		return err
	})
	return session, hint, err
}

// Backspace handles a backspace key press on an OTP slot.
func (s *Service) Backspace(ctx context.Context, id string, slot int) (*Session, *FocusHint, error) {
	var hint *FocusHint
	session, err := s.apply(ctx, id, "otp_backspace", func(session *Session) error {
		h, moved, err := session.Backspace(slot)
		if moved {
			hint = &h
		}
		return err
	})
	return session, hint, err
}

// Resend clears the code buffer and requests a new code. Delivery failures
// are logged and never reported to the caller.
func (s *Service) Resend(ctx context.Context, id string) (*Session, error) {
	session, err := s.apply(ctx, id, "otp_resend", func(session *Session) error {
		return session.Resend()
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, notification.Message{
		Kind:        notification.KindOTPResend,
		Destination: destination(session),
		Body:        "a new verification code was requested",
	})
	return session, nil
}

// Verify completes the flow once the code buffer is full, opening the
// account and issuing its first token pair. The verified session is saved
// before the account is opened; if registration fails the session is put
// back at the OTP stage so the step can be retried.
func (s *Service) Verify(ctx context.Context, id string) (Verification, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return Verification{}, err
	}
	prior := *session
	session, err = s.commit(ctx, session, "otp_verify", func(session *Session) error {
		if err := session.Verify(); err != nil {
			return err
		}
		if s.accounts != nil && session.Applicant == nil {
			return errors.New("verified session has no applicant")
		}
		return nil
	})
	if err != nil {
		return Verification{}, err
	}

	result := Verification{Session: session}
	if s.accounts != nil {
		user, err := s.accounts.Register(ctx, identity.Registration{
			Name:         session.Applicant.Name,
			Email:        session.Applicant.Email,
			Mobile:       session.Applicant.Mobile,
			PasswordHash: session.Applicant.PasswordHash,
		})
		if err != nil {
			prior.Version = session.Version
			s.rollback(ctx, &prior)
			return Verification{}, fmt.Errorf("register account: %w", err)
		}
		result.User = &user
		if s.tokens != nil {
			pair, err := s.tokens.Issue(user)
			if err != nil {
				return Verification{}, fmt.Errorf("issue tokens: %w", err)
			}
			result.Tokens = &pair
		}
	}
	s.notify(ctx, notification.Message{
		Kind:        notification.KindAccountVerified,
		Destination: destination(session),
		Body:        "your CareLink account is ready",
	})
	return result, nil
}

// Back returns the session to its previous stage.
func (s *Service) Back(ctx context.Context, id string) (*Session, error) {
	return s.apply(ctx, id, "back", func(session *Session) error {
		return session.Back()
	})
}

func (s *Service) apply(ctx context.Context, id, step string, fn func(*Session) error) (*Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, session, step, fn)
}

func (s *Service) commit(ctx context.Context, session *Session, step string, fn func(*Session) error) (*Session, error) {
	id := session.ID
	from := session.Stage
	if err := fn(session); err != nil {
		s.logger.Debug("onboarding.step_rejected",
			slog.String("session_id", id),
			slog.String("step", step),
			slog.String("stage", from.String()),
			slog.String("code", Code(err)),
		)
		return nil, err
	}
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	if session.Stage != from {
		s.logger.Info("onboarding.stage_changed",
			slog.String("session_id", id),
			slog.String("step", step),
			slog.String("from", from.String()),
			slog.String("to", session.Stage.String()),
		)
	}
	return session, nil
}

func (s *Service) rollback(ctx context.Context, session *Session) {
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Error("onboarding.rollback_failed",
			slog.String("session_id", session.ID),
			slog.String("stage", session.Stage.String()),
			slog.Any("error", err),
		)
		return
	}
	s.logger.Info("onboarding.rolled_back",
		slog.String("session_id", session.ID),
		slog.String("to", session.Stage.String()),
	)
}

func (s *Service) notify(ctx context.Context, msg notification.Message) {
	if s.notifier == nil || msg.Destination == "" {
		return
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn("onboarding.notify_failed", slog.String("kind", msg.Kind), slog.Any("error", err))
	}
}

func destination(session *Session) string {
	if session.Applicant != nil && session.Applicant.Mobile != "" {
		return session.Applicant.Mobile
	}
	return session.Credentials.Email
}
