package performance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/employee"
	"github.com/insighthr/insighthr-backend-go/internal/domain/performance"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/database"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/pagination"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/validator"
)

// ScoreServiceImpl stores period scores. Name, department and position are
// copied from the employee at creation and never refreshed.
type ScoreServiceImpl struct {
	tx           database.Transactor
	scoreRepo    performance.ScoreRepository
	employeeRepo employee.EmployeeRepository
	resolver     *access.Resolver
	now          func() time.Time
}

func NewScoreService(
	tx database.Transactor,
	scoreRepo performance.ScoreRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *access.Resolver,
) performance.ScoreService {
	return &ScoreServiceImpl{
		tx:           tx,
		scoreRepo:    scoreRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		now:          time.Now,
	}
}

func mapScoreToResponse(s performance.Score) performance.ScoreResponse {
	return performance.ScoreResponse{
		ScoreID:       s.ScoreID,
		EmployeeID:    s.EmployeeID,
		EmployeeName:  s.EmployeeName,
		Department:    s.Department,
		Position:      s.Position,
		Period:        s.Period,
		KPI:           s.KPI,
		CompletedTask: s.CompletedTask,
		Feedback360:   s.Feedback360,
		OverallScore:  s.OverallScore,
		CalculatedAt:  s.CalculatedAt.Format(time.RFC3339),
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
}

// ListScores implements performance.ScoreService.
func (s *ScoreServiceImpl) ListScores(ctx context.Context, filter performance.ScoreFilter) (performance.ListScoreResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return performance.ListScoreResponse{}, err
	}

	scope := s.resolver.ListScope(caller, access.ResourcePerformance)
	if scope.Denied() {
		return performance.ListScoreResponse{}, scope.Err()
	}

	if err := filter.Validate(); err != nil {
		return performance.ListScoreResponse{}, err
	}

	if !caller.IsAdmin() {
		filter.Department = nil
	}

	scores, total, err := s.scoreRepo.List(ctx, scope, filter)
	if err != nil {
		return performance.ListScoreResponse{}, fmt.Errorf("failed to list performance scores: %w", err)
	}

	scores, dropped := access.Visible(scope, scores, targetOf)
	if dropped > 0 {
		slog.WarnContext(ctx, "score list returned rows outside the caller scope",
			"user_id", caller.UserID, "scope", scope.Kind.String(), "dropped", dropped)
	}

	responses := make([]performance.ScoreResponse, 0, len(scores))
	for _, sc := range scores {
		responses = append(responses, mapScoreToResponse(sc))
	}

	totalPages, showing := pagination.Summarize(total, filter.Page, filter.Limit)

	return performance.ListScoreResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Scores:     responses,
	}, nil
}

// GetScore implements performance.ScoreService.
func (s *ScoreServiceImpl) GetScore(ctx context.Context, employeeID, period string) (performance.ScoreResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return performance.ScoreResponse{}, err
	}

	sc, err := s.scoreRepo.GetByKey(ctx, employeeID, period)
	if err != nil {
		return performance.ScoreResponse{}, fmt.Errorf("failed to get performance score: %w", err)
	}

	if err := s.resolver.CanRead(caller, access.ResourcePerformance, targetOf(sc)); err != nil {
		return performance.ScoreResponse{}, err
	}

	return mapScoreToResponse(sc), nil
}

// CreateScore implements performance.ScoreService.
func (s *ScoreServiceImpl) CreateScore(ctx context.Context, req performance.CreateScoreRequest) (performance.ScoreResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return performance.ScoreResponse{}, err
	}

	created, err := s.create(ctx, caller, req)
	if err != nil {
		return performance.ScoreResponse{}, err
	}

	return mapScoreToResponse(created), nil
}

func (s *ScoreServiceImpl) create(ctx context.Context, caller access.Caller, req performance.CreateScoreRequest) (performance.Score, error) {
	if err := req.Validate(); err != nil {
		return performance.Score{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, strings.TrimSpace(req.EmployeeID))
	if err != nil {
		return performance.Score{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.resolver.CanWrite(caller, access.ResourcePerformance, access.Target{EmployeeID: emp.EmployeeID, Department: emp.Department}); err != nil {
		return performance.Score{}, err
	}

	scoreID, err := uuid.NewV7()
	if err != nil {
		return performance.Score{}, fmt.Errorf("failed to generate score ID: %w", err)
	}

	created, err := s.scoreRepo.Create(ctx, performance.Score{
		ScoreID:       scoreID.String(),
		EmployeeID:    emp.EmployeeID,
		Period:        req.Period,
		EmployeeName:  emp.Name,
		Department:    emp.Department,
		Position:      string(emp.Position),
		KPI:           req.KPI,
		CompletedTask: req.CompletedTask,
		Feedback360:   req.Feedback360,
		OverallScore:  performance.Overall(req.KPI, req.CompletedTask, req.Feedback360, req.FinalScore),
		CalculatedAt:  s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, performance.ErrScoreExists) {
			return performance.Score{}, err
		}
		return performance.Score{}, fmt.Errorf("failed to create performance score: %w", err)
	}

	return created, nil
}

// UpdateScore implements performance.ScoreService.
func (s *ScoreServiceImpl) UpdateScore(ctx context.Context, req performance.UpdateScoreRequest) (performance.ScoreResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return performance.ScoreResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return performance.ScoreResponse{}, err
	}

	var result performance.Score
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		sc, err := s.scoreRepo.GetByKeyForUpdate(ctx, req.EmployeeID, req.Period)
		if err != nil {
			return fmt.Errorf("failed to get performance score: %w", err)
		}

		if err := s.resolver.CanWrite(caller, access.ResourcePerformance, targetOf(sc)); err != nil {
			return err
		}

		if req.KPI != nil {
			sc.KPI = *req.KPI
		}
		if req.CompletedTask != nil {
			sc.CompletedTask = *req.CompletedTask
		}
		if req.Feedback360 != nil {
			sc.Feedback360 = *req.Feedback360
		}
		sc.OverallScore = performance.Overall(sc.KPI, sc.CompletedTask, sc.Feedback360, req.FinalScore)
		sc.CalculatedAt = s.now().UTC()

		result, err = s.scoreRepo.Update(ctx, sc)
		if err != nil {
			return fmt.Errorf("failed to update performance score: %w", err)
		}
		return nil
	})
	if err != nil {
		return performance.ScoreResponse{}, err
	}

	return mapScoreToResponse(result), nil
}

// DeleteScore implements performance.ScoreService.
func (s *ScoreServiceImpl) DeleteScore(ctx context.Context, employeeID, period string) error {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.resolver.CanDelete(caller, access.ResourcePerformance); err != nil {
		return err
	}

	if err := s.scoreRepo.Delete(ctx, employeeID, period); err != nil {
		return fmt.Errorf("failed to delete performance score: %w", err)
	}

	return nil
}

// BulkCreate implements performance.ScoreService.
func (s *ScoreServiceImpl) BulkCreate(ctx context.Context, req performance.BulkCreateRequest) (performance.BulkCreateResponse, error) {
	caller, err := access.CallerFromContext(ctx)
	if err != nil {
		return performance.BulkCreateResponse{}, err
	}

	if err := s.resolver.CanBulkImport(caller, access.ResourcePerformance); err != nil {
		return performance.BulkCreateResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return performance.BulkCreateResponse{}, err
	}

	resp := performance.BulkCreateResponse{
		Total:   len(req.Scores),
		Results: make([]performance.BulkRowResult, 0, len(req.Scores)),
	}

	for i, row := range req.Scores {
		result := performance.BulkRowResult{Row: i + 1, EmployeeID: row.EmployeeID, Period: row.Period}

		created, err := s.create(ctx, caller, row)
		if err != nil {
			result.Error = rowError(err)
			resp.Failed++
		} else {
			sr := mapScoreToResponse(created)
			result.Success = true
			result.Score = &sr
			resp.Succeeded++
		}

		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

func targetOf(sc performance.Score) access.Target {
	return access.Target{EmployeeID: sc.EmployeeID, Department: sc.Department}
}

func rowError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Error()
	}
	return err.Error()
}
