package attendance

import (
	"context"
	"time"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
)

// AttendanceRepository defines data access methods for attendance records.
// Records are keyed by (employeeID, date).
type AttendanceRepository interface {
	// Create inserts a new record, returning ErrAttendanceExists when the key is taken
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByKey retrieves the record for an employee on a date
	GetByKey(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// GetByKeyForUpdate is GetByKey with a row lock; it must run inside a transaction
	GetByKeyForUpdate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// Update overwrites every mutable field of the record
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	Delete(ctx context.Context, employeeID string, date time.Time) error

	// List retrieves records visible under scope, with filters and pagination
	List(ctx context.Context, scope access.Scope, filter AttendanceFilter) ([]Attendance, int64, error)
}
