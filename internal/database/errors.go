package database

import "errors"

var (
	// ErrValidation indicates malformed or missing caller input. It is never retried.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates a record that does not exist or is not visible to the
	// requesting user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
