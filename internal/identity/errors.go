package identity

import "errors"

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when registering with an email already in use.
	ErrEmailExists = errors.New("email already in use")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The single message keeps login from leaking which
	// accounts exist.
	ErrInvalidCredentials = errors.New("invalid user or password")

	// ErrInvalidRole is returned when a role update names an unknown role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("invalid token")
)
