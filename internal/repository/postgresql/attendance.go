package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/attendance"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/database"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Every query selects the record columns followed by the employee's current name.
const attendanceColumns = `a.employee_id, a.date, a.check_in, a.check_out, a.status, a.points360,
	a.paid_leave, a.reason, a.department, a.position, a.created_at, a.updated_at`

const attendanceReturning = `employee_id, date, check_in, check_out, status, points360,
	paid_leave, reason, department, position, created_at, updated_at, NULL::text`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut, &att.Status, &att.Points360,
		&att.PaidLeave, &att.Reason, &att.Department, &att.Position, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (
			employee_id, date, check_in, check_out, status, points360,
			paid_leave, reason, department, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING ` + attendanceReturning

	created, err := scanAttendance(q.QueryRow(ctx, query,
		att.EmployeeID, att.Date, att.CheckIn, att.CheckOut, att.Status, att.Points360,
		att.PaidLeave, att.Reason, att.Department, att.Position,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}

	return created, nil
}

// GetByKey implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByKey(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	return r.getByKey(ctx, employeeID, date, "")
}

// GetByKeyForUpdate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByKeyForUpdate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	return r.getByKey(ctx, employeeID, date, "FOR UPDATE OF a")
}

func (r *attendanceRepositoryImpl) getByKey(ctx context.Context, employeeID string, date time.Time, lock string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, e.name
		FROM attendance a
		LEFT JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
		` + lock

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET check_in = $3, check_out = $4, status = $5, points360 = $6,
			paid_leave = $7, reason = $8, updated_at = NOW()
		WHERE employee_id = $1 AND date = $2
		RETURNING ` + attendanceReturning

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		att.EmployeeID, att.Date, att.CheckIn, att.CheckOut, att.Status, att.Points360,
		att.PaidLeave, att.Reason,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	updated.EmployeeName = att.EmployeeName
	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE employee_id = $1 AND date = $2`, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, scope access.Scope, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	scopeSQL, args, argIdx := scopeClause(scope, "a", 1)
	conditions := []string{scopeSQL}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("a.department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count query
	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendance a WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	// Validate sort column
	validSortColumns := map[string]string{
		"date":        "a.date",
		"employee_id": "a.employee_id",
		"check_in":    "a.check_in",
		"status":      "a.status",
		"points360":   "a.points360",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "a.date"
	}

	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s, e.name
		FROM attendance a
		LEFT JOIN employees e ON e.employee_id = a.employee_id
		WHERE %s
		ORDER BY %s %s, a.employee_id ASC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
