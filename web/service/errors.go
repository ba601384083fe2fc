package service

import "errors"

// Recoverable outcomes of the auth and store operations. Controllers map
// these onto localized user-facing messages.
var (
	ErrUsernameNotFound   = errors.New("username not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")
	ErrDuplicateUser = errors.New("username or email already registered")

	ErrUsernameNotAlphanumeric = errors.New("username must be alphanumeric")
	ErrUsernameTooShort        = errors.New("username must be at least 3 characters")
	ErrEmailInvalid            = errors.New("email address is invalid")
	ErrPasswordTooShort        = errors.New("password must be at least 6 characters")
)
