package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/employee"
	"github.com/insighthr/insighthr-backend-go/internal/domain/user"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

// UserServiceImpl implements user.UserService.
type UserServiceImpl struct {
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
	resolver     *access.Resolver
}

func NewUserService(
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *access.Resolver,
) user.UserService {
	return &UserServiceImpl{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
	}
}

// GetMe implements user.UserService.
func (s *UserServiceImpl) GetMe(ctx context.Context) (user.MeResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return user.MeResponse{}, err
	}

	var (
		me     user.User
		linked *employee.Employee
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := s.userRepo.GetByID(gCtx, caller.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		me = u
		return nil
	})

	if caller.EmployeeID != "" {
		g.Go(func() error {
			emp, err := s.employeeRepo.GetByID(gCtx, caller.EmployeeID)
			if err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					return nil
				}
				return fmt.Errorf("failed to get linked employee: %w", err)
			}
			linked = &emp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return user.MeResponse{}, err
	}

	resp := user.MeResponse{
		User:               mapUserToResponse(me),
		ResolvedDepartment: caller.Department,
	}
	if linked != nil {
		resp.Employee = &employee.EmployeeResponse{
			EmployeeID: linked.EmployeeID,
			Name:       linked.Name,
			Department: linked.Department,
			Position:   string(linked.Position),
			Status:     string(linked.Status),
			Email:      linked.Email,
			CreatedAt:  linked.CreatedAt.Format(time.RFC3339),
			UpdatedAt:  linked.UpdatedAt.Format(time.RFC3339),
		}
	}

	return resp, nil
}

// UpdateMe implements user.UserService.
func (s *UserServiceImpl) UpdateMe(ctx context.Context, req user.UpdateMeRequest) (user.UserResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	u.Name = strings.TrimSpace(*req.Name)

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return mapUserToResponse(updated), nil
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return user.ListUserResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return user.ListUserResponse{}, err
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, mapUserToResponse(u))
	}

	totalPages, showing := pagination.Summarize(total, filter.Page, filter.Limit)

	return user.ListUserResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Users:      responses,
	}, nil
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return user.UserResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.checkDepartment(req.Department); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.checkEmployeeLink(ctx, req.EmployeeID); err != nil {
		return user.UserResponse{}, err
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to generate user ID: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		UserID:     userID.String(),
		Email:      normalizeEmail(req.Email),
		Name:       strings.TrimSpace(req.Name),
		Role:       access.Role(req.Role),
		Department: emptyToNil(req.Department),
		EmployeeID: emptyToNil(req.EmployeeID),
		Status:     user.StatusActive,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return mapUserToResponse(created), nil
}

// UpdateUser implements user.UserService.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return user.UserResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.checkDepartment(req.Department); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.checkEmployeeLink(ctx, req.EmployeeID); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		u.Role = access.Role(*req.Role)
	}
	if req.Department != nil {
		u.Department = emptyToNil(req.Department)
	}
	if req.EmployeeID != nil {
		u.EmployeeID = emptyToNil(req.EmployeeID)
	}

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return mapUserToResponse(updated), nil
}

// DisableUser implements user.UserService.
func (s *UserServiceImpl) DisableUser(ctx context.Context, userID string) (user.UserResponse, error) {
	return s.setStatus(ctx, userID, user.StatusDisabled)
}

// EnableUser implements user.UserService.
func (s *UserServiceImpl) EnableUser(ctx context.Context, userID string) (user.UserResponse, error) {
	return s.setStatus(ctx, userID, user.StatusActive)
}

// DeleteUser implements user.UserService.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	caller, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}

	if caller.UserID == userID {
		return user.ErrCannotModifySelf
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (s *UserServiceImpl) setStatus(ctx context.Context, userID string, status user.Status) (user.UserResponse, error) {
	caller, err := s.requireAdmin(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	if status == user.StatusDisabled && caller.UserID == userID {
		return user.UserResponse{}, user.ErrCannotModifySelf
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if u.Status == status {
		return mapUserToResponse(u), nil
	}

	u.Status = status
	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user status: %w", err)
	}

	return mapUserToResponse(updated), nil
}

func (s *UserServiceImpl) requireAdmin(ctx context.Context) (access.Caller, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return access.Caller{}, err
	}
	if !caller.IsAdmin() {
		return access.Caller{}, access.ErrAdminRequired
	}
	return caller, nil
}

func (s *UserServiceImpl) checkDepartment(department *string) error {
	if department == nil || *department == "" {
		return nil
	}
	if !s.resolver.ValidDepartment(*department) {
		return fmt.Errorf("%w: %s", user.ErrInvalidDepartment, *department)
	}
	return nil
}

func (s *UserServiceImpl) checkEmployeeLink(ctx context.Context, employeeID *string) error {
	if employeeID == nil || *employeeID == "" {
		return nil
	}
	if _, err := s.employeeRepo.GetByID(ctx, *employeeID); err != nil {
		return fmt.Errorf("failed to link employee %s: %w", *employeeID, err)
	}
	return nil
}

func mapUserToResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		UserID:     u.UserID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		Department: u.Department,
		EmployeeID: u.EmployeeID,
		Status:     string(u.Status),
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
