package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/user"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/jwt"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type stubResolver struct {
	callers map[string]access.Caller
}

func (s stubResolver) ResolveCaller(ctx context.Context, id user.Identity) (access.Caller, error) {
	c, ok := s.callers[id.Email]
	if !ok {
		return access.Caller{}, user.ErrUserDisabled
	}
	return c, nil
}

func protected(t *testing.T) (http.Handler, jwt.Service) {
	t.Helper()

	svc := jwt.NewJWTService("secret", "", time.Second)
	resolver := stubResolver{callers: map[string]access.Caller{
		"admin@example.com": {UserID: "u-1", Email: "admin@example.com", Role: access.RoleAdmin},
		"emp@example.com":   {UserID: "u-2", Email: "emp@example.com", Role: access.RoleEmployee, EmployeeID: "DEV-002"},
	}}

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired)
	r.Use(ResolveCaller(svc, resolver))
	r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
		c, err := access.CallerFromContext(r.Context())
		require.NoError(t, err)
		_, _ = w.Write([]byte(c.UserID))
	})
	r.With(AdminOnly).Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r, svc
}

func call(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthChain(t *testing.T) {
	h, svc := protected(t)

	adminToken, err := svc.IssueToken(user.Identity{Subject: "s1", Email: "admin@example.com", Role: "Employee"}, time.Minute)
	require.NoError(t, err)
	empToken, err := svc.IssueToken(user.Identity{Subject: "s2", Email: "emp@example.com", Role: "Admin"}, time.Minute)
	require.NoError(t, err)
	disabledToken, err := svc.IssueToken(user.Identity{Subject: "s3", Email: "gone@example.com"}, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, call(h, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(h, "/me", "not-a-jwt").Code)

	rec := call(h, "/me", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", rec.Body.String())

	assert.Equal(t, http.StatusForbidden, call(h, "/me", disabledToken).Code)

	// the role claim is ignored; the directory decides
	assert.Equal(t, http.StatusNoContent, call(h, "/admin", adminToken).Code)
	assert.Equal(t, http.StatusForbidden, call(h, "/admin", empToken).Code)
}

func TestRateLimitByIP(t *testing.T) {
	limiter := ratelimit.NewKeyedLimiter(rate.Limit(0.001), 2, time.Minute)
	h := RateLimitByIP(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000"))
}
