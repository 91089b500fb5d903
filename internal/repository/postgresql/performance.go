package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/performance"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/database"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type scoreRepositoryImpl struct {
	db *database.DB
}

func NewScoreRepository(db *database.DB) performance.ScoreRepository {
	return &scoreRepositoryImpl{db: db}
}

const scoreColumns = `score_id, employee_id, period, employee_name, department, position,
	kpi, completed_task, feedback_360, overall_score, calculated_at, created_at, updated_at`

func scanScore(row pgx.Row) (performance.Score, error) {
	var sc performance.Score
	err := row.Scan(
		&sc.ScoreID, &sc.EmployeeID, &sc.Period, &sc.EmployeeName, &sc.Department, &sc.Position,
		&sc.KPI, &sc.CompletedTask, &sc.Feedback360, &sc.OverallScore,
		&sc.CalculatedAt, &sc.CreatedAt, &sc.UpdatedAt,
	)
	return sc, err
}

// Create implements performance.ScoreRepository.
func (r *scoreRepositoryImpl) Create(ctx context.Context, sc performance.Score) (performance.Score, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO performance_scores (
			score_id, employee_id, period, employee_name, department, position,
			kpi, completed_task, feedback_360, overall_score, calculated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + scoreColumns

	created, err := scanScore(q.QueryRow(ctx, query,
		sc.ScoreID, sc.EmployeeID, sc.Period, sc.EmployeeName, sc.Department, sc.Position,
		sc.KPI, sc.CompletedTask, sc.Feedback360, sc.OverallScore, sc.CalculatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return performance.Score{}, performance.ErrScoreExists
		}
		return performance.Score{}, fmt.Errorf("failed to insert performance score: %w", err)
	}

	return created, nil
}

// GetByKey implements performance.ScoreRepository.
func (r *scoreRepositoryImpl) GetByKey(ctx context.Context, employeeID, period string) (performance.Score, error) {
	return r.getByKey(ctx, employeeID, period, "")
}

// GetByKeyForUpdate implements performance.ScoreRepository.
func (r *scoreRepositoryImpl) GetByKeyForUpdate(ctx context.Context, employeeID, period string) (performance.Score, error) {
	return r.getByKey(ctx, employeeID, period, "FOR UPDATE")
}

func (r *scoreRepositoryImpl) getByKey(ctx context.Context, employeeID, period, lock string) (performance.Score, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scoreColumns + ` FROM performance_scores WHERE employee_id = $1 AND period = $2 ` + lock

	sc, err := scanScore(q.QueryRow(ctx, query, employeeID, period))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return performance.Score{}, performance.ErrScoreNotFound
		}
		return performance.Score{}, fmt.Errorf("failed to get performance score: %w", err)
	}

	return sc, nil
}

// Update implements performance.ScoreRepository.
func (r *scoreRepositoryImpl) Update(ctx context.Context, sc performance.Score) (performance.Score, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE performance_scores
		SET kpi = $3, completed_task = $4, feedback_360 = $5, overall_score = $6,
			calculated_at = $7, updated_at = NOW()
		WHERE employee_id = $1 AND period = $2
		RETURNING ` + scoreColumns

	updated, err := scanScore(q.QueryRow(ctx, query,
		sc.EmployeeID, sc.Period, sc.KPI, sc.CompletedTask, sc.Feedback360, sc.OverallScore, sc.CalculatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return performance.Score{}, performance.ErrScoreNotFound
		}
		return performance.Score{}, fmt.Errorf("failed to update performance score: %w", err)
	}

	return updated, nil
}

// Delete implements performance.ScoreRepository.
func (r *scoreRepositoryImpl) Delete(ctx context.Context, employeeID, period string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM performance_scores WHERE employee_id = $1 AND period = $2`, employeeID, period)
	if err != nil {
		return fmt.Errorf("failed to delete performance score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return performance.ErrScoreNotFound
	}

	return nil
}

// List implements performance.ScoreRepository.
func (r *scoreRepositoryImpl) List(ctx context.Context, scope access.Scope, filter performance.ScoreFilter) ([]performance.Score, int64, error) {
	q := GetQuerier(ctx, r.db)

	scopeSQL, args, argIdx := scopeClause(scope, "p", 1)
	conditions := []string{scopeSQL}

	if filter.Period != nil && *filter.Period != "" {
		conditions = append(conditions, fmt.Sprintf("p.period = $%d", argIdx))
		args = append(args, *filter.Period)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("p.department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM performance_scores p WHERE %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count performance scores: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM performance_scores p
		WHERE %s
		ORDER BY p.period DESC, p.employee_id ASC
		LIMIT $%d OFFSET $%d
	`, scoreColumns, whereClause, argIdx, argIdx+1)

	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list performance scores: %w", err)
	}
	defer rows.Close()

	var scores []performance.Score
	for rows.Next() {
		sc, err := scanScore(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan performance score: %w", err)
		}
		scores = append(scores, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return scores, total, nil
}
