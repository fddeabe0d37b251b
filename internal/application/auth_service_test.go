package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-accounts/internal/application/apperrors"
	"github.com/oksasatya/go-user-accounts/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

func newTestAuthService(repo *memory.UserRepository) *AuthService {
	return NewAuthService(repo, stubHasher{}, helpers.NewJWTManager("test-secret", time.Hour), nil)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	svc := newTestAuthService(repo)

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever1!")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidCredentials, apperrors.KindOf(err))
}

func TestAuthenticateWrongPassword(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	seedUser(repo, "alberto@example.com", "ye5s(D!S", true)
	svc := newTestAuthService(repo)

	_, err := svc.Authenticate(context.Background(), "alberto@example.com", "TE94U@2T")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidCredentials, apperrors.KindOf(err),
		"wrong password must be indistinguishable from unknown email")
}

func TestAuthenticateDeactivated(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	seedUser(repo, "leandro@example.com", "ye5s(D!S", false)
	svc := newTestAuthService(repo)

	_, err := svc.Authenticate(context.Background(), "leandro@example.com", "ye5s(D!S")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUserIsDeactivated, apperrors.KindOf(err),
		"correct credentials on a deactivated account must not report invalid credentials")
	assert.Contains(t, err.Error(), "leandro@example.com")
}

func TestAuthenticateSuccess(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	want := seedUser(repo, "alberto@example.com", "ye5s(D!S", true)
	svc := newTestAuthService(repo)

	got, err := svc.Authenticate(context.Background(), "alberto@example.com", "ye5s(D!S")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.HashedPassword, got.HashedPassword, "authenticate must not mutate the user")
}

func TestLoginIssuesTokenForUser(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	want := seedUser(repo, "alberto@example.com", "ye5s(D!S", true)

	tokens := helpers.NewJWTManager("test-secret", time.Hour)
	svc := NewAuthService(repo, stubHasher{}, tokens, nil)

	u, issued, err := svc.Login(context.Background(), "alberto@example.com", "ye5s(D!S")
	require.NoError(t, err)
	require.Equal(t, want.ID, u.ID)
	require.NotEmpty(t, issued.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 2*time.Second)

	sub, err := tokens.Subject(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, want.ID, sub, "token subject must round-trip to the user id")
}
