package employee

import (
	"context"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, employeeID string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, employeeID string) error
	List(ctx context.Context, scope access.Scope, filter EmployeeFilter) ([]Employee, int64, error)
}
