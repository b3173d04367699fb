package auth

import (
	"context"
)

type AuthService interface {
	// Login checks the credential of the employee with the given ID and role
	// and opens a session for it.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout revokes the session carried by ctx. It never fails for an
	// already closed session.
	Logout(ctx context.Context) error

	// CurrentUser returns the session view carried by ctx, or ErrNoSession.
	CurrentUser(ctx context.Context) (SessionUser, error)

	// Bootstrap seeds the default HR admin when the directory is empty.
	Bootstrap(ctx context.Context) (bool, error)
}
