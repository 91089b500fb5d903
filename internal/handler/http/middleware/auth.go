package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/insighthr/insighthr-backend-go/internal/handler/http/response"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests whose token failed jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, jwt.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
