package user

import (
	"strings"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/employee"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	UserID     string  `json:"user_id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Department *string `json:"department,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// MeResponse is the caller's own profile together with the linked employee
// and the department used for scoping.
type MeResponse struct {
	User               UserResponse               `json:"user"`
	Employee           *employee.EmployeeResponse `json:"employee,omitempty"`
	ResolvedDepartment string                     `json:"resolved_department,omitempty"`
}

type UpdateMeRequest struct {
	Name *string `json:"name,omitempty"`
}

func (r *UpdateMeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserFilter struct {
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	Search     *string `json:"search,omitempty"` // name or email

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *UserFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validator.ValidatePagination(&f.Page, &f.Limit)...)

	if f.Role != nil && *f.Role != "" && !access.Role(*f.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: " + joinRoles(),
		})
	}

	// "all" is accepted and means no status filter
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(strings.ToLower(*f.Status), []string{"all", string(StatusActive), string(StatusDisabled)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: all, active, disabled",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListUserResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Showing    string         `json:"showing"`
	Users      []UserResponse `json:"users"`
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Department *string `json:"department,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Role == "" {
		r.Role = string(access.RoleEmployee)
	}
	if !access.Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: " + joinRoles(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRequest represents an Admin update; nil fields are left unchanged
type UpdateUserRequest struct {
	UserID     string  `json:"-"`
	Name       *string `json:"name,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Role == nil && r.Department == nil && r.EmployeeID == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: ErrNoFieldsToUpdate.Error(),
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}

	if r.Role != nil && !access.Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: " + joinRoles(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func joinRoles() string {
	names := make([]string, 0, len(access.Roles))
	for _, r := range access.Roles {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}
