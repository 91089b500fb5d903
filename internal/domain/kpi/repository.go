package kpi

import "context"

type KPIRepository interface {
	Create(ctx context.Context, k KPI) (KPI, error)
	GetByID(ctx context.Context, kpiID string) (KPI, error)
	Update(ctx context.Context, k KPI) (KPI, error)

	// Deactivate flips is_active off and returns the updated row
	Deactivate(ctx context.Context, kpiID string) (KPI, error)
	List(ctx context.Context, filter KPIFilter) ([]KPI, int64, error)
}
