package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees lists the employees visible to the caller (Admin: all, Manager: own department)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, employeeID string) (EmployeeResponse, error)

	// CreateEmployee creates a new employee (Admin only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee updates an existing employee (Admin only)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee (Admin only)
	DeleteEmployee(ctx context.Context, employeeID string) error

	// BulkImport creates employees row by row (Admin only)
	BulkImport(ctx context.Context, req BulkImportRequest) (BulkImportResponse, error)
}
