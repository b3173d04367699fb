package middleware

import (
	"net/http"

	"github.com/attendease/attendease-backend-go/internal/domain/auth"
	"github.com/attendease/attendease-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified, unrevoked access token
// whose employee still exists with the same role. The resolved caller is
// stored in the request context. It must run after jwtauth.Verifier.
func AuthRequired(authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			user, err := authService.CurrentUser(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSessionUser(r.Context(), user)))
		}
		return http.HandlerFunc(hfn)
	}
}
