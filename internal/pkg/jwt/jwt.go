package jwt

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/insighthr/insighthr-backend-go/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// ErrInvalidToken is returned when the request carries no usable token.
var ErrInvalidToken = errors.New("invalid or missing token")

// Service verifies identity provider tokens. Tokens are issued elsewhere;
// IssueToken exists for local tooling and tests that share the secret.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	Identity(ctx context.Context) (user.Identity, error)
	IssueToken(id user.Identity, ttl time.Duration) (string, error)
}

type JWTService struct {
	issuer    string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, issuer string, clockSkew time.Duration) Service {
	opts := []jwt.ValidateOption{jwt.WithAcceptableSkew(clockSkew)}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &JWTService{
		issuer:    issuer,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, opts...),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// Identity reads the verified token placed on the context by jwtauth.Verifier.
func (j *JWTService) Identity(ctx context.Context) (user.Identity, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return user.Identity{}, ErrInvalidToken
	}

	id := user.Identity{
		Subject: token.Subject(),
		Email:   strings.TrimSpace(claimString(claims, "email")),
		Name:    claimString(claims, "name"),
		Role:    claimString(claims, "role"),
	}
	if id.Email == "" {
		return user.Identity{}, user.ErrEmailClaimRequired
	}

	return id, nil
}

func (j *JWTService) IssueToken(id user.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := map[string]interface{}{
		jwt.SubjectKey:    id.Subject,
		jwt.IssuedAtKey:   now.Unix(),
		jwt.ExpirationKey: now.Add(ttl).Unix(),
		"email":           id.Email,
	}
	if j.issuer != "" {
		claims[jwt.IssuerKey] = j.issuer
	}
	if id.Name != "" {
		claims["name"] = id.Name
	}
	if id.Role != "" {
		claims["role"] = id.Role
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, err
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
