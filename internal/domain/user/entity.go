package user

import (
	"time"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// User is the authorization record of a person known to the identity provider.
// Department is stored for every user, but for a Manager the department of the
// linked employee takes precedence.
type User struct {
	UserID     string
	Email      string
	Name       string
	Role       access.Role
	Department *string
	EmployeeID *string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsAdmin checks if user has the Admin role
func (u *User) IsAdmin() bool {
	return u.Role == access.RoleAdmin
}

// IsDisabled checks if an Admin has disabled the user
func (u *User) IsDisabled() bool {
	return u.Status == StatusDisabled
}
