package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/insighthr/insighthr-backend-go/internal/domain/kpi"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/database"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type kpiRepositoryImpl struct {
	db *database.DB
}

func NewKPIRepository(db *database.DB) kpi.KPIRepository {
	return &kpiRepositoryImpl{db: db}
}

const kpiColumns = `kpi_id, name, description, data_type, category, is_active, created_by, created_at, updated_at`

func scanKPI(row pgx.Row) (kpi.KPI, error) {
	var k kpi.KPI
	err := row.Scan(
		&k.KPIID, &k.Name, &k.Description, &k.DataType, &k.Category,
		&k.IsActive, &k.CreatedBy, &k.CreatedAt, &k.UpdatedAt,
	)
	return k, err
}

// Create implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) Create(ctx context.Context, k kpi.KPI) (kpi.KPI, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO kpis (kpi_id, name, description, data_type, category, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + kpiColumns

	created, err := scanKPI(q.QueryRow(ctx, query,
		k.KPIID, k.Name, k.Description, k.DataType, k.Category, k.IsActive, k.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return kpi.KPI{}, kpi.ErrKPINameExists
		}
		return kpi.KPI{}, fmt.Errorf("failed to insert KPI: %w", err)
	}

	return created, nil
}

// GetByID implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) GetByID(ctx context.Context, kpiID string) (kpi.KPI, error) {
	q := GetQuerier(ctx, r.db)

	k, err := scanKPI(q.QueryRow(ctx, `SELECT `+kpiColumns+` FROM kpis WHERE kpi_id = $1`, kpiID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.KPI{}, kpi.ErrKPINotFound
		}
		return kpi.KPI{}, fmt.Errorf("failed to get KPI: %w", err)
	}

	return k, nil
}

// Update implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) Update(ctx context.Context, k kpi.KPI) (kpi.KPI, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE kpis
		SET name = $2, description = $3, data_type = $4, category = $5, is_active = $6, updated_at = NOW()
		WHERE kpi_id = $1
		RETURNING ` + kpiColumns

	updated, err := scanKPI(q.QueryRow(ctx, query,
		k.KPIID, k.Name, k.Description, k.DataType, k.Category, k.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.KPI{}, kpi.ErrKPINotFound
		}
		if isUniqueViolation(err) {
			return kpi.KPI{}, kpi.ErrKPINameExists
		}
		return kpi.KPI{}, fmt.Errorf("failed to update KPI: %w", err)
	}

	return updated, nil
}

// Deactivate implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) Deactivate(ctx context.Context, kpiID string) (kpi.KPI, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE kpis SET is_active = FALSE, updated_at = NOW() WHERE kpi_id = $1 RETURNING ` + kpiColumns

	k, err := scanKPI(q.QueryRow(ctx, query, kpiID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.KPI{}, kpi.ErrKPINotFound
		}
		return kpi.KPI{}, fmt.Errorf("failed to deactivate KPI: %w", err)
	}

	return k, nil
}

// List implements kpi.KPIRepository.
func (r *kpiRepositoryImpl) List(ctx context.Context, filter kpi.KPIFilter) ([]kpi.KPI, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	if filter.Category != nil && *filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.DataType != nil && *filter.DataType != "" {
		conditions = append(conditions, fmt.Sprintf("data_type = $%d", argIdx))
		args = append(args, *filter.DataType)
		argIdx++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *filter.IsActive)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM kpis WHERE %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count KPIs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM kpis
		WHERE %s
		ORDER BY category ASC, name ASC
		LIMIT $%d OFFSET $%d
	`, kpiColumns, whereClause, argIdx, argIdx+1)

	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list KPIs: %w", err)
	}
	defer rows.Close()

	var kpis []kpi.KPI
	for rows.Next() {
		k, err := scanKPI(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan KPI: %w", err)
		}
		kpis = append(kpis, k)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return kpis, total, nil
}
