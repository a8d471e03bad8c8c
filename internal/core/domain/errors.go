package domain

import "errors"

// Kind classifies a failure so the transport layer can pick a status code
// without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a classified failure. Services return these instead of bare
// strings so callers can branch on Kind with errors.As.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a classified error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a classification to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the classification from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Common domain errors
var (
	ErrUserNotFound       = E(KindNotFound, "User not found")
	ErrEmailInUse         = E(KindConflict, "Email already in use")
	ErrRoleNotFound       = E(KindValidation, "Role not found")
	ErrInvalidCredentials = E(KindUnauthorized, "Invalid credentials")
	ErrUserInactive       = E(KindForbidden, "User account is inactive")
	ErrInvalidToken       = E(KindUnauthorized, "Refresh token revoked or not found")
	ErrTokenExpired       = E(KindUnauthorized, "Refresh token expired")
	ErrManagerNotFound    = E(KindValidation, "Manager does not exist")
	ErrSelfManager        = E(KindValidation, "User cannot be their own manager")
	ErrManagerCycle       = E(KindValidation, "Manager assignment would create a cycle")
)
