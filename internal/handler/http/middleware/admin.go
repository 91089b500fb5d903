package middleware

import (
	"net/http"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/handler/http/response"
)

// AdminOnly must run after ResolveCaller.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := access.CallerFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !caller.IsAdmin() {
			response.HandleError(w, access.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
