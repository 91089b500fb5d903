package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)

	// Create inserts a user, returning ErrUserEmailExists when the email is taken
	Create(ctx context.Context, newUser User) (User, error)

	// Update overwrites name, role, department, employee link and status
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
}
