// Package apperrors carries the expected business failures of the account
// service as a tagged error kind plus structured context, so transport code
// can map each kind to a status without string matching.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidCredentials              Kind = "invalid_credentials"
	KindUserIsDeactivated               Kind = "user_is_deactivated"
	KindUserIsUnderage                  Kind = "user_is_underage"
	KindUserAlreadyExists               Kind = "user_already_exists"
	KindUserNotFound                    Kind = "user_not_found"
	KindMissingToken                    Kind = "missing_token"
	KindInvalidToken                    Kind = "invalid_token"
	KindExpiredToken                    Kind = "expired_token"
	KindOldPasswordDoesntMatch          Kind = "old_password_doesnt_match"
	KindNewPasswordConfirmationMismatch Kind = "new_password_confirmation_mismatch"
	KindNewPasswordCantBeSameAsOld      Kind = "new_password_cant_be_same_as_old"
)

// Error is an expected, caller-recoverable outcome. Email and UserID are
// correlating context and may be empty depending on the kind.
type Error struct {
	Kind    Kind
	Message string
	Email   string
	UserID  string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf extracts the business kind from err, or "" when err is not an
// application error (storage and other fatal failures).
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// Is makes kinds comparable through errors.Is against a bare kinded error.
func (e *Error) Is(target error) bool {
	var ae *Error
	if errors.As(target, &ae) {
		return e.Kind == ae.Kind
	}
	return false
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
}

func UserIsDeactivated(email string) *Error {
	return &Error{
		Kind:    KindUserIsDeactivated,
		Message: fmt.Sprintf("the user %s is deactivated", email),
		Email:   email,
	}
}

func UserIsUnderage() *Error {
	return &Error{Kind: KindUserIsUnderage, Message: "the user is underage"}
}

func UserAlreadyExists(email string) *Error {
	return &Error{
		Kind:    KindUserAlreadyExists,
		Message: fmt.Sprintf("the user %s already exists", email),
		Email:   email,
	}
}

func UserNotFound(userID string) *Error {
	return &Error{
		Kind:    KindUserNotFound,
		Message: fmt.Sprintf("the user %s wasn't found", userID),
		UserID:  userID,
	}
}

func MissingToken() *Error {
	return &Error{Kind: KindMissingToken, Message: "bearer token not provided"}
}

func InvalidToken() *Error {
	return &Error{Kind: KindInvalidToken, Message: "bearer token is invalid"}
}

func ExpiredToken() *Error {
	return &Error{Kind: KindExpiredToken, Message: "bearer token is expired"}
}

func OldPasswordDoesntMatch() *Error {
	return &Error{Kind: KindOldPasswordDoesntMatch, Message: "the old password provided does not match the real one"}
}

func NewPasswordConfirmationMismatch() *Error {
	return &Error{Kind: KindNewPasswordConfirmationMismatch, Message: "new password confirmation doesn't match the password provided"}
}

func NewPasswordCantBeSameAsOld(email string) *Error {
	return &Error{
		Kind:    KindNewPasswordCantBeSameAsOld,
		Message: fmt.Sprintf("the new password for %s can't be the same as the old one", email),
		Email:   email,
	}
}
