package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/employee"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/pagination"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/validator"
)

// EmployeeServiceImpl implements employee.EmployeeService.
type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	resolver     *access.Resolver
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, resolver *access.Resolver) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		resolver:     resolver,
	}
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Department: emp.Department,
		Position:   string(emp.Position),
		Status:     string(emp.Status),
		Email:      emp.Email,
		CreatedAt:  emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  emp.UpdatedAt.Format(time.RFC3339),
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	scope := s.resolver.ListScope(caller, access.ResourceEmployee)
	if scope.Denied() {
		return employee.ListEmployeeResponse{}, scope.Err()
	}

	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	// A manager always sees their resolved department.
	if !caller.IsAdmin() {
		filter.Department = nil
	}

	employees, total, err := s.employeeRepo.List(ctx, scope, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	employees, dropped := access.Visible(scope, employees, func(e employee.Employee) access.Target {
		return access.Target{EmployeeID: e.EmployeeID, Department: e.Department}
	})
	if dropped > 0 {
		slog.WarnContext(ctx, "employee list returned rows outside the caller scope",
			"user_id", caller.UserID, "scope", scope.Kind.String(), "dropped", dropped)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	totalPages, showing := pagination.Summarize(total, filter.Page, filter.Limit)

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	target := access.Target{EmployeeID: emp.EmployeeID, Department: emp.Department}
	if err := s.resolver.CanRead(caller, access.ResourceEmployee, target); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.resolver.CanWrite(caller, access.ResourceEmployee, access.Target{Department: req.Department}); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.create(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(created), nil
}

func (s *EmployeeServiceImpl) create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	if !s.resolver.ValidDepartment(req.Department) {
		return employee.Employee{}, departmentError(s.resolver, req.Department)
	}

	var email *string
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		e := strings.ToLower(strings.TrimSpace(*req.Email))
		email = &e
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		Name:       strings.TrimSpace(req.Name),
		Department: req.Department,
		Position:   employee.Position(req.Position),
		Status:     employee.StatusActive,
		Email:      email,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeIDExists) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.resolver.CanWrite(caller, access.ResourceEmployee, access.Target{EmployeeID: existing.EmployeeID, Department: existing.Department}); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Department != nil && !s.resolver.ValidDepartment(*req.Department) {
		return employee.EmployeeResponse{}, departmentError(s.resolver, *req.Department)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}

	updated, err := s.employeeRepo.Update(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return mapEmployeeToResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, employeeID string) error {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.resolver.CanDelete(caller, access.ResourceEmployee); err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, employeeID); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// BulkImport implements employee.EmployeeService.
func (s *EmployeeServiceImpl) BulkImport(ctx context.Context, req employee.BulkImportRequest) (employee.BulkImportResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return employee.BulkImportResponse{}, err
	}

	if err := s.resolver.CanBulkImport(caller, access.ResourceEmployee); err != nil {
		return employee.BulkImportResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return employee.BulkImportResponse{}, err
	}

	resp := employee.BulkImportResponse{
		Total:   len(req.Rows),
		Results: make([]employee.BulkRowResult, 0, len(req.Rows)),
	}

	for i, row := range req.Rows {
		result := employee.BulkRowResult{Row: i + 1, EmployeeID: row.EmployeeID}

		if _, err := s.create(ctx, row); err != nil {
			result.Error = rowError(err)
			resp.Failed++
		} else {
			result.Success = true
			resp.Succeeded++
		}

		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

func departmentError(r *access.Resolver, department string) error {
	return fmt.Errorf("%w: %s must be one of: %s", employee.ErrInvalidDepartment, department, strings.Join(r.Departments(), ", "))
}

func rowError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Error()
	}
	return err.Error()
}
