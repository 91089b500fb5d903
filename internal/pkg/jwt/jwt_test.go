package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/insighthr/insighthr-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verify(t *testing.T, svc Service, token string) (user.Identity, error) {
	t.Helper()

	var (
		got    user.Identity
		gotErr error
	)
	h := jwtauth.Verifier(svc.JWTAuth())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = svc.Identity(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)

	return got, gotErr
}

func TestIdentity_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "insighthr-idp", 30*time.Second)

	token, err := svc.IssueToken(user.Identity{Subject: "sub-1", Email: "dana@example.com", Name: "Dana", Role: "Admin"}, time.Minute)
	require.NoError(t, err)

	id, err := verify(t, svc, token)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", id.Subject)
	assert.Equal(t, "dana@example.com", id.Email)
	assert.Equal(t, "Dana", id.Name)
	assert.Equal(t, "Admin", id.Role)
}

func TestIdentity_MissingEmail(t *testing.T) {
	svc := NewJWTService("secret", "", 0)

	token, err := svc.IssueToken(user.Identity{Subject: "sub-1"}, time.Minute)
	require.NoError(t, err)

	_, err = verify(t, svc, token)
	assert.ErrorIs(t, err, user.ErrEmailClaimRequired)
}

func TestIdentity_WrongIssuerOrSecret(t *testing.T) {
	svc := NewJWTService("secret", "insighthr-idp", 0)

	other, err := NewJWTService("secret", "someone-else", 0).IssueToken(user.Identity{Email: "a@example.com"}, time.Minute)
	require.NoError(t, err)
	_, err = verify(t, svc, other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	forged, err := NewJWTService("other-secret", "insighthr-idp", 0).IssueToken(user.Identity{Email: "a@example.com"}, time.Minute)
	require.NoError(t, err)
	_, err = verify(t, svc, forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentity_NoToken(t *testing.T) {
	_, err := NewJWTService("secret", "", 0).Identity(context.Background())
	assert.ErrorIs(t, err, ErrInvalidToken)
}
