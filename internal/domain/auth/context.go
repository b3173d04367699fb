package auth

import "context"

type sessionUserKey struct{}

// WithSessionUser stores the caller resolved for the current request.
func WithSessionUser(ctx context.Context, user SessionUser) context.Context {
	return context.WithValue(ctx, sessionUserKey{}, user)
}

// SessionUserFromContext returns the caller stored by WithSessionUser.
func SessionUserFromContext(ctx context.Context) (SessionUser, bool) {
	user, ok := ctx.Value(sessionUserKey{}).(SessionUser)
	return user, ok
}
