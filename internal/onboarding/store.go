package onboarding

import "context"

// Store persists onboarding sessions between user actions. Save succeeds only
// when the stored version still matches session.Version, and then bumps it;
// otherwise it returns ErrStaleSession.
type Store interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}
