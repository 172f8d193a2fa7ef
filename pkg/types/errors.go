package types

import "errors"

// Marketplace lifecycle errors.
var (
	ErrDetached        = errors.New("marketplace is detached")
	ErrAlreadyAttached = errors.New("marketplace is already attached")
)

// Operation outcomes. Callers match them with errors.Is; the backend never
// lets a raw storage engine error stand in for one of these.
var (
	// ErrUsernameTaken is returned when registration hits the unique
	// constraint on username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrNotFound is returned by Authenticate on any mismatch. It does not
	// say whether the user is unknown or the password is wrong.
	ErrNotFound = errors.New("invalid username or password")

	// ErrStorageUnavailable reports a transient failure to read or write
	// the store, typically lock contention from another process.
	ErrStorageUnavailable = errors.New("database is locked, please try again")

	// ErrReferenceNotFound is returned when an insert names a user or
	// listing that does not exist.
	ErrReferenceNotFound = errors.New("referenced user or listing does not exist")
)

// ErrValidation is the parent of every input validation failure.
var ErrValidation = errors.New("validation failed")

// Validation errors. Each wraps ErrValidation.
var (
	ErrInvalidPrice    = validationError("invalid price format")
	ErrInvalidUsername = validationError("username must not be empty")
)

type validationErr struct {
	msg string
}

func validationError(msg string) error {
	return &validationErr{msg: msg}
}

func (e *validationErr) Error() string { return e.msg }

func (e *validationErr) Unwrap() error { return ErrValidation }
