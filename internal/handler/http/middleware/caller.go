package middleware

import (
	"log/slog"
	"net/http"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/user"
	"github.com/insighthr/insighthr-backend-go/internal/handler/http/response"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/jwt"
)

// ResolveCaller turns the verified token into an access.Caller once per request.
// Role and department come from the user directory, never from token claims.
func ResolveCaller(jwtService jwt.Service, resolver user.CallerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, err := jwtService.Identity(ctx)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			caller, err := resolver.ResolveCaller(ctx, id)
			if err != nil {
				slog.WarnContext(ctx, "Caller rejected", "email", id.Email, "error", err)
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(access.WithCaller(ctx, caller)))
		})
	}
}
