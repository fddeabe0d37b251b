package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/internal/application/apperrors"
	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
)

// AuthService verifies credentials and exchanges them for bearer tokens.
// It is stateless beyond its collaborators and safe for concurrent use.
type AuthService struct {
	Repo   repository.UserRepository
	Hasher PasswordHasher
	Tokens TokenService
	Logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, hasher PasswordHasher, tokens TokenService, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, Hasher: hasher, Tokens: tokens, Logger: logger}
}

// IssuedToken is the outcome of a successful login.
type IssuedToken struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Authenticate checks email and password and returns the user unchanged.
// Unknown email and wrong password collapse into the same failure so callers
// can't probe which accounts exist.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, err
	}
	if !s.Hasher.Verify(password, u.HashedPassword) {
		return nil, apperrors.InvalidCredentials()
	}
	if !u.IsActive {
		return nil, apperrors.UserIsDeactivated(u.Email)
	}
	return u, nil
}

// Login authenticates and issues an access token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, IssuedToken, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue access token failed")
		}
		return nil, IssuedToken{}, err
	}
	return u, IssuedToken{AccessToken: token, ExpiresAt: exp}, nil
}
