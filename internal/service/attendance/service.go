package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/attendance"
	"github.com/insighthr/insighthr-backend-go/internal/domain/employee"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/database"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/pagination"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// AttendanceServiceImpl runs the kiosk flow and the management CRUD over
// attendance records. Calendar dates and clock times are taken in loc.
type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	resolver       *access.Resolver
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *access.Resolver,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		resolver:       resolver,
		loc:            loc,
		now:            time.Now,
	}
}

// today returns the current calendar date in the operating timezone, as UTC
// midnight, and the wall-clock time as HH:MM.
func (s *AttendanceServiceImpl) today() (time.Time, string) {
	local := s.now().In(s.loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return date, attendance.NewClock(local.Hour(), local.Minute()).String()
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		EmployeeID:   att.EmployeeID,
		EmployeeName: att.EmployeeName,
		Date:         att.DateKey(),
		CheckIn:      att.CheckIn,
		CheckOut:     att.CheckOut,
		Status:       string(att.Status),
		Points360:    att.Points360,
		PaidLeave:    att.PaidLeave,
		Reason:       att.Reason,
		Department:   att.Department,
		Position:     att.Position,
		CreatedAt:    att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    att.UpdatedAt.Format(time.RFC3339),
	}
}

// derive classifies a complete check-in/check-out pair. Stored times that do
// not parse fall back to (work, 0) so a bad row never fails the request.
func derive(ctx context.Context, att attendance.Attendance) (attendance.Status, decimal.Decimal) {
	status, points, err := attendance.ClassifyAndScore(*att.CheckIn, *att.CheckOut)
	if err != nil {
		slog.WarnContext(ctx, "unparsable attendance times, using fallback classification",
			"employee_id", att.EmployeeID,
			"date", att.DateKey(),
			"check_in", *att.CheckIn,
			"check_out", *att.CheckOut,
			"error", err,
		)
		return attendance.StatusWork, decimal.Zero
	}
	return status, points
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, strings.TrimSpace(req.EmployeeID))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return attendance.AttendanceResponse{}, attendance.ErrEmployeeInactive
	}

	date, clock := s.today()

	var result attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.attendanceRepo.GetByKeyForUpdate(ctx, emp.EmployeeID, date)
		switch {
		case err == nil:
			if existing.HasCheckIn() {
				return attendance.ErrAlreadyCheckedIn
			}
			// A manual record without times (e.g. planned leave) is taken over by the kiosk.
			existing.CheckIn = &clock
			existing.CheckOut = nil
			existing.Status = attendance.ClassifyCheckIn(clock)
			existing.Points360 = decimal.Zero
			result, err = s.attendanceRepo.Update(ctx, existing)
			if err != nil {
				return fmt.Errorf("failed to update attendance: %w", err)
			}
			return nil

		case errors.Is(err, attendance.ErrAttendanceNotFound):
			result, err = s.attendanceRepo.Create(ctx, attendance.Attendance{
				EmployeeID: emp.EmployeeID,
				Date:       date,
				CheckIn:    &clock,
				Status:     attendance.ClassifyCheckIn(clock),
				Points360:  decimal.Zero,
				Department: emp.Department,
				Position:   string(emp.Position),
			})
			if err != nil {
				if errors.Is(err, attendance.ErrAttendanceExists) {
					return attendance.ErrAlreadyCheckedIn
				}
				return fmt.Errorf("failed to create attendance: %w", err)
			}
			return nil

		default:
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	result.EmployeeName = &emp.Name
	return mapAttendanceToResponse(result), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, strings.TrimSpace(req.EmployeeID))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	date, clock := s.today()

	var result attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.attendanceRepo.GetByKeyForUpdate(ctx, emp.EmployeeID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNotCheckedIn
			}
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		if !existing.HasCheckIn() {
			return attendance.ErrNotCheckedIn
		}
		if existing.HasCheckOut() {
			return attendance.ErrAlreadyCheckedOut
		}

		existing.CheckOut = &clock
		existing.Status, existing.Points360 = derive(ctx, existing)

		result, err = s.attendanceRepo.Update(ctx, existing)
		if err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	result.EmployeeName = &emp.Name
	return mapAttendanceToResponse(result), nil
}

// KioskStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) KioskStatus(ctx context.Context, employeeID string) (attendance.KioskStatusResponse, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return attendance.KioskStatusResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}

	date, _ := s.today()

	var (
		emp     employee.Employee
		today   attendance.Attendance
		present bool
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		e, err := s.employeeRepo.GetByID(gCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		emp = e
		return nil
	})

	g.Go(func() error {
		att, err := s.attendanceRepo.GetByKey(gCtx, employeeID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		today, present = att, true
		return nil
	})

	if err := g.Wait(); err != nil {
		return attendance.KioskStatusResponse{}, err
	}

	resp := attendance.KioskStatusResponse{
		EmployeeID:   emp.EmployeeID,
		EmployeeName: emp.Name,
		Date:         date.Format(attendance.DateLayout),
	}
	if present {
		resp.HasCheckedIn = today.HasCheckIn()
		resp.HasCheckedOut = today.HasCheckOut()
		resp.CheckIn = today.CheckIn
		resp.CheckOut = today.CheckOut
	}

	switch {
	case !emp.IsActive():
		resp.Message = "Employee is inactive"
	case !resp.HasCheckedIn:
		resp.CanCheckIn = true
		resp.Message = "Ready to check in"
	case !resp.HasCheckedOut:
		resp.CanCheckOut = true
		resp.Message = fmt.Sprintf("Checked in at %s", *resp.CheckIn)
	default:
		resp.Message = "Attendance completed for today"
	}

	return resp, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	scope := s.resolver.ListScope(caller, access.ResourceAttendance)
	if scope.Denied() {
		return attendance.ListAttendanceResponse{}, scope.Err()
	}

	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// A manager always sees their resolved department.
	if !caller.IsAdmin() {
		filter.Department = nil
	}

	records, total, err := s.attendanceRepo.List(ctx, scope, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	records, dropped := access.Visible(scope, records, targetOf)
	if dropped > 0 {
		slog.WarnContext(ctx, "attendance list returned rows outside the caller scope",
			"user_id", caller.UserID, "scope", scope.Kind.String(), "dropped", dropped)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	totalPages, showing := pagination.Summarize(total, filter.Page, filter.Limit)

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, employeeID, date string) (attendance.AttendanceResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, err := parseDate(date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByKey(ctx, employeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if err := s.resolver.CanRead(caller, access.ResourceAttendance, targetOf(att)); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(att), nil
}

// CreateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.create(ctx, caller, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(created), nil
}

func (s *AttendanceServiceImpl) create(ctx context.Context, caller access.Caller, req attendance.CreateAttendanceRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, strings.TrimSpace(req.EmployeeID))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.resolver.CanWrite(caller, access.ResourceAttendance, access.Target{EmployeeID: emp.EmployeeID, Department: emp.Department}); err != nil {
		return attendance.Attendance{}, err
	}

	day, _ := validator.IsValidDate(req.Date)

	att := attendance.Attendance{
		EmployeeID: emp.EmployeeID,
		Date:       day,
		CheckIn:    clockOf(req.CheckIn),
		CheckOut:   clockOf(req.CheckOut),
		PaidLeave:  req.PaidLeave,
		Reason:     nonEmpty(req.Reason),
		Department: emp.Department,
		Position:   string(emp.Position),
		Points360:  decimal.Zero,
	}

	switch {
	case att.HasCheckIn() && att.HasCheckOut():
		att.Status, att.Points360 = derive(ctx, att)
	case req.Status != nil && *req.Status != "":
		att.Status = attendance.Status(*req.Status)
	case att.HasCheckIn():
		att.Status = attendance.ClassifyCheckIn(*att.CheckIn)
	case att.PaidLeave:
		att.Status = attendance.StatusOff
	default:
		att.Status = attendance.StatusWork
	}

	created, err := s.attendanceRepo.Create(ctx, att)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceExists) {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	created.EmployeeName = &emp.Name
	return created, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, _ := validator.IsValidDate(req.Date)

	var result attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		att, err := s.attendanceRepo.GetByKeyForUpdate(ctx, req.EmployeeID, day)
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		if err := s.resolver.CanWrite(caller, access.ResourceAttendance, targetOf(att)); err != nil {
			return err
		}

		timesChanged := req.CheckIn != nil || req.CheckOut != nil
		if req.CheckIn != nil {
			att.CheckIn = clockOf(req.CheckIn)
		}
		if req.CheckOut != nil {
			att.CheckOut = clockOf(req.CheckOut)
		}
		if req.PaidLeave != nil {
			att.PaidLeave = *req.PaidLeave
		}
		if req.Reason != nil {
			att.Reason = nonEmpty(req.Reason)
		}

		if att.HasCheckOut() && !att.HasCheckIn() {
			return validator.ValidationErrors{{Field: "check_out", Message: attendance.ErrCheckOutWithoutCheckIn.Error()}}
		}

		overridden := req.Status != nil && *req.Status != ""

		if att.HasCheckIn() && att.HasCheckOut() {
			status, points := derive(ctx, att)
			att.Points360 = points
			if !overridden {
				att.Status = status
			}
		} else {
			att.Points360 = decimal.Zero
			if !overridden && timesChanged {
				switch {
				case att.HasCheckIn():
					att.Status = attendance.ClassifyCheckIn(*att.CheckIn)
				case att.PaidLeave:
					att.Status = attendance.StatusOff
				}
			}
		}
		if overridden {
			att.Status = attendance.Status(*req.Status)
		}

		result, err = s.attendanceRepo.Update(ctx, att)
		if err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(result), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, employeeID, date string) error {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.resolver.CanDelete(caller, access.ResourceAttendance); err != nil {
		return err
	}

	day, err := parseDate(date)
	if err != nil {
		return err
	}

	if err := s.attendanceRepo.Delete(ctx, employeeID, day); err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	return nil
}

// BulkImport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BulkImport(ctx context.Context, req attendance.BulkImportRequest) (attendance.BulkImportResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return attendance.BulkImportResponse{}, err
	}

	if err := s.resolver.CanBulkImport(caller, access.ResourceAttendance); err != nil {
		return attendance.BulkImportResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.BulkImportResponse{}, err
	}

	resp := attendance.BulkImportResponse{
		Total:   len(req.Rows),
		Results: make([]attendance.BulkRowResult, 0, len(req.Rows)),
	}

	for i, row := range req.Rows {
		result := attendance.BulkRowResult{Row: i + 1, EmployeeID: row.EmployeeID, Date: row.Date}

		if _, err := s.create(ctx, caller, row); err != nil {
			result.Error = rowError(err)
			resp.Failed++
		} else {
			result.Success = true
			resp.Succeeded++
		}

		resp.Results = append(resp.Results, result)
	}

	slog.InfoContext(ctx, "attendance bulk import finished",
		"user_id", caller.UserID,
		"total", resp.Total,
		"succeeded", resp.Succeeded,
		"failed", resp.Failed,
	)

	return resp, nil
}

func targetOf(att attendance.Attendance) access.Target {
	return access.Target{EmployeeID: att.EmployeeID, Department: att.Department}
}

func parseDate(date string) (time.Time, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return day, nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// clockOf normalizes a submitted time to HH:MM. Unparsable values are kept
// as given and classified with the fallback.
func clockOf(s *string) *string {
	v := nonEmpty(s)
	if v == nil {
		return nil
	}
	if c, err := attendance.ParseClock(*v); err == nil {
		normalized := c.String()
		return &normalized
	}
	return v
}

func rowError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Error()
	}
	return err.Error()
}
