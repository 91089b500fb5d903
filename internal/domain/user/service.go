package user

import (
	"context"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
)

// Identity is what the identity provider's token says about the requester.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Role    string // legacy claim, never used for authorization
}

// CallerResolver turns a verified identity into the caller used for every
// authorization decision of the request.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, id Identity) (access.Caller, error)
}

// UserService defines business logic for user management.
// Everything except GetMe and UpdateMe is Admin only.
type UserService interface {
	GetMe(ctx context.Context) (MeResponse, error)
	UpdateMe(ctx context.Context, req UpdateMeRequest) (UserResponse, error)

	ListUsers(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	DisableUser(ctx context.Context, userID string) (UserResponse, error)
	EnableUser(ctx context.Context, userID string) (UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
}
