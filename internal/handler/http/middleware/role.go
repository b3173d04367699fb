package middleware

import (
	"net/http"

	"github.com/attendease/attendease-backend-go/internal/domain/auth"
	"github.com/attendease/attendease-backend-go/internal/handler/http/response"
)

// RequireHR requires the HR role. It must run after AuthRequired.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.SessionUserFromContext(r.Context())
		if !ok || !user.IsHR() {
			response.HandleError(w, response.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
