package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned only when a structurally valid, correctly
	// signed token is past its exp claim.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed tokens, bad signatures and subjects
	// that are not well-formed identifiers.
	ErrTokenInvalid = errors.New("token invalid")
)

// JWTManager issues and validates stateless HS256 bearer tokens. Validity is
// purely cryptographic plus the exp check; nothing is stored server-side.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl}
}

// Issue signs a token whose subject is the given user id, expiring TTL from
// now.
func (m *JWTManager) Issue(subject string) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Subject verifies the token and returns its subject. The subject must be a
// well-formed ULID; whether it resolves to a stored user is the caller's
// problem.
func (m *JWTManager) Subject(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !tkn.Valid {
		return "", ErrTokenInvalid
	}
	if !ValidULID(claims.Subject) {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
