package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/employee"
	"github.com/insighthr/insighthr-backend-go/internal/domain/user"
)

// CallerResolverImpl turns a verified token identity into an access.Caller,
// creating the user row on first sign-in.
type CallerResolverImpl struct {
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
}

func NewCallerResolver(userRepo user.UserRepository, employeeRepo employee.EmployeeRepository) user.CallerResolver {
	return &CallerResolverImpl{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
	}
}

// ResolveCaller implements user.CallerResolver.
// The user directory is the only source of the caller's role. A first-time
// identity gets an Employee user record.
func (r *CallerResolverImpl) ResolveCaller(ctx context.Context, id user.Identity) (access.Caller, error) {
	email := normalizeEmail(id.Email)
	if email == "" {
		return access.Caller{}, user.ErrEmailClaimRequired
	}

	u, err := r.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrUserNotFound) {
		u, err = r.registerFirstLogin(ctx, id, email)
	}
	if err != nil {
		return access.Caller{}, fmt.Errorf("failed to resolve user %s: %w", email, err)
	}

	if u.IsDisabled() {
		return access.Caller{}, user.ErrUserDisabled
	}

	if id.Role != "" && id.Role != string(u.Role) {
		slog.DebugContext(ctx, "ignoring role claim that disagrees with user directory",
			"email", email, "claim_role", id.Role, "directory_role", u.Role)
	}

	caller := access.Caller{
		UserID: u.UserID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}
	if u.EmployeeID != nil {
		caller.EmployeeID = *u.EmployeeID
	}

	if u.Role != access.RoleManager {
		if u.Department != nil {
			caller.Department = *u.Department
		}
		return caller, nil
	}

	// A manager is scoped by the linked employee's department, never by the user record
	if caller.EmployeeID == "" {
		slog.WarnContext(ctx, "manager has no linked employee, access will be denied", "email", email)
		return caller, nil
	}

	emp, err := r.employeeRepo.GetByID(ctx, caller.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.WarnContext(ctx, "manager's linked employee does not exist, access will be denied",
				"email", email, "employee_id", caller.EmployeeID)
			return caller, nil
		}
		return access.Caller{}, fmt.Errorf("failed to get linked employee %s: %w", caller.EmployeeID, err)
	}
	caller.Department = emp.Department

	return caller, nil
}

func (r *CallerResolverImpl) registerFirstLogin(ctx context.Context, id user.Identity, email string) (user.User, error) {
	userID := id.Subject
	if userID == "" {
		v7, err := uuid.NewV7()
		if err != nil {
			return user.User{}, fmt.Errorf("failed to generate user ID: %w", err)
		}
		userID = v7.String()
	}

	name := strings.TrimSpace(id.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	created, err := r.userRepo.Create(ctx, user.User{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   access.RoleEmployee,
		Status: user.StatusActive,
	})
	if errors.Is(err, user.ErrUserEmailExists) {
		// a concurrent request registered the same identity first
		return r.userRepo.GetByEmail(ctx, email)
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to register user: %w", err)
	}

	slog.InfoContext(ctx, "registered user on first login", "email", email, "user_id", created.UserID)
	return created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
