package kpi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/kpi"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/pagination"
)

// KPIServiceImpl keeps the catalogue of KPI definitions that performance
// reviews are measured against.
type KPIServiceImpl struct {
	kpiRepo  kpi.KPIRepository
	resolver *access.Resolver
}

func NewKPIService(kpiRepo kpi.KPIRepository, resolver *access.Resolver) kpi.KPIService {
	return &KPIServiceImpl{
		kpiRepo:  kpiRepo,
		resolver: resolver,
	}
}

func mapKPIToResponse(k kpi.KPI) kpi.KPIResponse {
	return kpi.KPIResponse{
		KPIID:       k.KPIID,
		Name:        k.Name,
		Description: k.Description,
		DataType:    string(k.DataType),
		Category:    k.Category,
		IsActive:    k.IsActive,
		CreatedBy:   k.CreatedBy,
		CreatedAt:   k.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   k.UpdatedAt.Format(time.RFC3339),
	}
}

// ListKPIs implements kpi.KPIService.
func (s *KPIServiceImpl) ListKPIs(ctx context.Context, filter kpi.KPIFilter) (kpi.ListKPIResponse, error) {
	if _, err := access.CallerFromContext(ctx); err != nil {
		return kpi.ListKPIResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return kpi.ListKPIResponse{}, err
	}

	kpis, total, err := s.kpiRepo.List(ctx, filter)
	if err != nil {
		return kpi.ListKPIResponse{}, fmt.Errorf("failed to list KPIs: %w", err)
	}

	responses := make([]kpi.KPIResponse, 0, len(kpis))
	for _, k := range kpis {
		responses = append(responses, mapKPIToResponse(k))
	}

	totalPages, showing := pagination.Summarize(total, filter.Page, filter.Limit)

	return kpi.ListKPIResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		KPIs:       responses,
	}, nil
}

// GetKPI implements kpi.KPIService.
func (s *KPIServiceImpl) GetKPI(ctx context.Context, kpiID string) (kpi.KPIResponse, error) {
	if _, err := access.CallerFromContext(ctx); err != nil {
		return kpi.KPIResponse{}, err
	}

	if !validID(kpiID) {
		return kpi.KPIResponse{}, kpi.ErrKPINotFound
	}

	k, err := s.kpiRepo.GetByID(ctx, kpiID)
	if err != nil {
		return kpi.KPIResponse{}, fmt.Errorf("failed to get KPI: %w", err)
	}

	return mapKPIToResponse(k), nil
}

// CreateKPI implements kpi.KPIService.
func (s *KPIServiceImpl) CreateKPI(ctx context.Context, req kpi.CreateKPIRequest) (kpi.KPIResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return kpi.KPIResponse{}, err
	}

	if err := s.resolver.CanWrite(caller, access.ResourceKPI, access.Target{}); err != nil {
		return kpi.KPIResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return kpi.KPIResponse{}, err
	}

	kpiID, err := uuid.NewV7()
	if err != nil {
		return kpi.KPIResponse{}, fmt.Errorf("failed to generate KPI ID: %w", err)
	}

	created, err := s.kpiRepo.Create(ctx, kpi.KPI{
		KPIID:       kpiID.String(),
		Name:        req.Name,
		Description: req.Description,
		DataType:    kpi.DataType(req.DataType),
		Category:    req.Category,
		IsActive:    true,
		CreatedBy:   caller.UserID,
	})
	if err != nil {
		if errors.Is(err, kpi.ErrKPINameExists) {
			return kpi.KPIResponse{}, err
		}
		return kpi.KPIResponse{}, fmt.Errorf("failed to create KPI: %w", err)
	}

	slog.InfoContext(ctx, "KPI created", "kpi_id", created.KPIID, "name", created.Name, "by", caller.UserID)

	return mapKPIToResponse(created), nil
}

// UpdateKPI implements kpi.KPIService.
func (s *KPIServiceImpl) UpdateKPI(ctx context.Context, req kpi.UpdateKPIRequest) (kpi.KPIResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return kpi.KPIResponse{}, err
	}

	if err := s.resolver.CanWrite(caller, access.ResourceKPI, access.Target{}); err != nil {
		return kpi.KPIResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return kpi.KPIResponse{}, err
	}

	if !validID(req.KPIID) {
		return kpi.KPIResponse{}, kpi.ErrKPINotFound
	}

	k, err := s.kpiRepo.GetByID(ctx, req.KPIID)
	if err != nil {
		return kpi.KPIResponse{}, fmt.Errorf("failed to get KPI: %w", err)
	}

	if req.Name != nil {
		k.Name = *req.Name
	}
	if req.Description != nil {
		k.Description = *req.Description
	}
	if req.DataType != nil {
		k.DataType = kpi.DataType(*req.DataType)
	}
	if req.Category != nil {
		k.Category = *req.Category
	}
	if req.IsActive != nil {
		k.IsActive = *req.IsActive
	}

	updated, err := s.kpiRepo.Update(ctx, k)
	if err != nil {
		if errors.Is(err, kpi.ErrKPINameExists) {
			return kpi.KPIResponse{}, err
		}
		return kpi.KPIResponse{}, fmt.Errorf("failed to update KPI: %w", err)
	}

	return mapKPIToResponse(updated), nil
}

// DisableKPI implements kpi.KPIService.
func (s *KPIServiceImpl) DisableKPI(ctx context.Context, kpiID string) (kpi.KPIResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return kpi.KPIResponse{}, err
	}

	if err := s.resolver.CanDelete(caller, access.ResourceKPI); err != nil {
		return kpi.KPIResponse{}, err
	}

	if !validID(kpiID) {
		return kpi.KPIResponse{}, kpi.ErrKPINotFound
	}

	disabled, err := s.kpiRepo.Deactivate(ctx, kpiID)
	if err != nil {
		return kpi.KPIResponse{}, fmt.Errorf("failed to disable KPI: %w", err)
	}

	slog.InfoContext(ctx, "KPI disabled", "kpi_id", kpiID, "by", caller.UserID)

	return mapKPIToResponse(disabled), nil
}

// validID keeps malformed path values away from the uuid column.
func validID(kpiID string) bool {
	_, err := uuid.Parse(kpiID)
	return err == nil
}
