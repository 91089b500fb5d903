package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one employee's record for one calendar day in the operating timezone.
// Department and Position are snapshots taken when the record was created.
type Attendance struct {
	EmployeeID string
	Date       time.Time
	CheckIn    *string
	CheckOut   *string
	Status     Status
	Points360  decimal.Decimal
	PaidLeave  bool
	Reason     *string
	Department string
	Position   string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// HasCheckIn reports whether a check-in time is recorded.
func (a Attendance) HasCheckIn() bool {
	return a.CheckIn != nil && *a.CheckIn != ""
}

// HasCheckOut reports whether a check-out time is recorded.
func (a Attendance) HasCheckOut() bool {
	return a.CheckOut != nil && *a.CheckOut != ""
}

// DateKey returns the record's date as YYYY-MM-DD.
func (a Attendance) DateKey() string {
	return a.Date.Format(DateLayout)
}

const DateLayout = "2006-01-02"
