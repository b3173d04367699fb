package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid employee ID, password, or role")
	ErrAccountNotFound    = errors.New("no account with this employee ID and role")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrNoSession          = errors.New("no active session")
)
