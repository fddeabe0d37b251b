package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-user-accounts/pkg/events"
)

// PasswordHasher is the one-way credential transform. Verify must be
// constant-time with respect to where a mismatch occurs.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

// IDGenerator produces the permanent user identifiers (26-char sortable
// ULIDs), which double as token subjects.
type IDGenerator interface {
	NewID() string
}

// TokenService issues and validates stateless bearer tokens. Subject returns
// helpers.ErrTokenExpired or helpers.ErrTokenInvalid on failure.
type TokenService interface {
	Issue(subject string) (token string, expiresAt time.Time, err error)
	Subject(token string) (string, error)
}

// EventPublisher fans account lifecycle events out to interested workers.
// Publishing is best-effort from the use cases' point of view.
type EventPublisher interface {
	Publish(ctx context.Context, ev events.AccountEvent) error
}
