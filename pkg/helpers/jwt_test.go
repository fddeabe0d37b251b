package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSubject = "01JB8GT124Y8GJ8FDQGWR91X3J"

func TestIssueAndSubject(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", time.Hour)

	token, exp, err := m.Issue(testSubject)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	got, err := m.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, testSubject, got)
}

func TestSubjectExpired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", -1*time.Second)
	token, _, err := m.Issue(testSubject)
	require.NoError(t, err)

	_, err = m.Subject(token)
	require.ErrorIs(t, err, ErrTokenExpired, "expired tokens must fail as expired, not invalid")
}

func TestSubjectWrongSecret(t *testing.T) {
	t.Parallel()

	right := NewJWTManager("right-secret", time.Hour)
	wrong := NewJWTManager("wrong-secret", time.Hour)

	token, _, err := right.Issue(testSubject)
	require.NoError(t, err)

	_, err = wrong.Subject(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSubjectMalformed(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "not.a.jwt"} {
		_, err := m.Subject(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}

func TestSubjectNotAULID(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", time.Hour)
	token, _, err := m.Issue("user-123")
	require.NoError(t, err)

	_, err = m.Subject(token)
	require.ErrorIs(t, err, ErrTokenInvalid, "a well-signed token with a malformed subject is invalid")
}

func TestSubjectRejectsUnsignedAlgorithm(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   testSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Subject(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
