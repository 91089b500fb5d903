package kpi

import "context"

// KPIService manages KPI definitions. Any signed-in user may read them;
// changes are Admin only.
type KPIService interface {
	ListKPIs(ctx context.Context, filter KPIFilter) (ListKPIResponse, error)
	GetKPI(ctx context.Context, kpiID string) (KPIResponse, error)
	CreateKPI(ctx context.Context, req CreateKPIRequest) (KPIResponse, error)
	UpdateKPI(ctx context.Context, req UpdateKPIRequest) (KPIResponse, error)

	// DisableKPI is a soft delete
	DisableKPI(ctx context.Context, kpiID string) (KPIResponse, error)
}
