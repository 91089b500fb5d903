package attendance

import (
	"fmt"
	"strings"

	"github.com/insighthr/insighthr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// KIOSK DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type KioskStatusResponse struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	Date          string  `json:"date"`
	HasCheckedIn  bool    `json:"has_checked_in"`
	HasCheckedOut bool    `json:"has_checked_out"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	CanCheckIn    bool    `json:"can_check_in"`
	CanCheckOut   bool    `json:"can_check_out"`
	Message       string  `json:"message"`
}

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Date         string          `json:"date"`
	CheckIn      *string         `json:"check_in,omitempty"`
	CheckOut     *string         `json:"check_out,omitempty"`
	Status       string          `json:"status"`
	Points360    decimal.Decimal `json:"points360"`
	PaidLeave    bool            `json:"paid_leave"`
	Reason       *string         `json:"reason,omitempty"`
	Department   string          `json:"department"`
	Position     string          `json:"position"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_id, check_in, status, points360
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validator.ValidatePagination(&f.Page, &f.Limit)...)

	if f.Status != nil && *f.Status != "" && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + joinStatuses(),
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "employee_id", "check_in", "status", "points360"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, employee_id, check_in, status, points360",
			})
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// CreateAttendanceRequest is used for manual creation and for each bulk import row.
type CreateAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`                // YYYY-MM-DD
	CheckIn    *string `json:"check_in,omitempty"`  // HH:MM
	CheckOut   *string `json:"check_out,omitempty"` // HH:MM
	Status     *string `json:"status,omitempty"`
	PaidLeave  bool    `json:"paid_leave"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	errs = append(errs, validateTimes(r.CheckIn, r.CheckOut)...)
	errs = append(errs, validateStatus(r.Status)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest carries the fields a privileged caller may fix.
// Nil fields are left unchanged.
type UpdateAttendanceRequest struct {
	EmployeeID string  `json:"-"`
	Date       string  `json:"-"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     *string `json:"status,omitempty"`
	PaidLeave  *bool   `json:"paid_leave,omitempty"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.CheckIn != nil && *r.CheckIn != "" {
		if _, err := ParseClock(*r.CheckIn); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be in HH:MM format",
			})
		}
	}

	if r.CheckOut != nil && *r.CheckOut != "" {
		if _, err := ParseClock(*r.CheckOut); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be in HH:MM format",
			})
		}
	}

	errs = append(errs, validateStatus(r.Status)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkImportRequest struct {
	Rows []CreateAttendanceRequest `json:"rows"`
}

const MaxBulkRows = 1000

func (r *BulkImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rows) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "at least one row is required",
		})
	}

	if len(r.Rows) > MaxBulkRows {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: fmt.Sprintf("at most %d rows are allowed", MaxBulkRows),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkRowResult struct {
	Row        int    `json:"row"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

type BulkImportResponse struct {
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Results   []BulkRowResult `json:"results"`
}

func validateTimes(checkIn, checkOut *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	hasIn := checkIn != nil && *checkIn != ""
	hasOut := checkOut != nil && *checkOut != ""

	if hasIn {
		if _, err := ParseClock(*checkIn); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be in HH:MM format",
			})
		}
	}

	if hasOut {
		if _, err := ParseClock(*checkOut); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be in HH:MM format",
			})
		}
		if !hasIn {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: ErrCheckOutWithoutCheckIn.Error(),
			})
		}
	}

	return errs
}

func validateStatus(status *string) validator.ValidationErrors {
	if status == nil || *status == "" || Status(*status).IsValid() {
		return nil
	}
	return validator.ValidationErrors{{
		Field:   "status",
		Message: "status must be one of: " + joinStatuses(),
	}}
}

func joinStatuses() string {
	names := make([]string, 0, len(Statuses))
	for _, s := range Statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
