package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// Every method except the kiosk ones reads the caller from the context.
type AttendanceService interface {
	// CheckIn records today's arrival from the public kiosk
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut records today's departure and derives status and points
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// KioskStatus reports whether the employee has an open session today
	KioskStatus(ctx context.Context, employeeID string) (KioskStatusResponse, error)

	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetAttendance(ctx context.Context, employeeID, date string) (AttendanceResponse, error)

	// CreateAttendance creates a record manually (Admin, or Manager of the employee's department)
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// UpdateAttendance fixes an existing record; points are recomputed when both times are present
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	DeleteAttendance(ctx context.Context, employeeID, date string) error

	// BulkImport creates records row by row, reporting failures per row
	BulkImport(ctx context.Context, req BulkImportRequest) (BulkImportResponse, error)
}
