package repository

import (
	"errors"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
)

// ErrNotFound is returned by lookups that match no user.
var ErrNotFound = errors.New("user not found")

// UserRepository defines the interface for user persistence. Implementations
// must be safe for concurrent use; each call is a single-document read or
// write against the backing store.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
}
