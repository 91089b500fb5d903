package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/insighthr/insighthr-backend-go/internal/domain/performance"
	"github.com/insighthr/insighthr-backend-go/internal/handler/http/response"
)

// PerformanceHandler serves /performance-scores.
type PerformanceHandler interface {
	ListScores(w http.ResponseWriter, r *http.Request)
	GetScore(w http.ResponseWriter, r *http.Request)
	CreateScore(w http.ResponseWriter, r *http.Request)
	UpdateScore(w http.ResponseWriter, r *http.Request)
	DeleteScore(w http.ResponseWriter, r *http.Request)
	BulkCreate(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	scoreService performance.ScoreService
}

func NewPerformanceHandler(scoreService performance.ScoreService) PerformanceHandler {
	return &performanceHandlerImpl{scoreService: scoreService}
}

func (h *performanceHandlerImpl) ListScores(w http.ResponseWriter, r *http.Request) {
	filter := performance.ScoreFilter{
		Period:     queryString(r, "period"),
		Department: queryString(r, "department"),
		EmployeeID: queryString(r, "employee_id"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	result, err := h.scoreService.ListScores(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *performanceHandlerImpl) GetScore(w http.ResponseWriter, r *http.Request) {
	result, err := h.scoreService.GetScore(r.Context(), chi.URLParam(r, "employeeId"), chi.URLParam(r, "period"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *performanceHandlerImpl) CreateScore(w http.ResponseWriter, r *http.Request) {
	var req performance.CreateScoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.scoreService.CreateScore(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Performance score created successfully", result)
}

func (h *performanceHandlerImpl) UpdateScore(w http.ResponseWriter, r *http.Request) {
	var req performance.UpdateScoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeId")
	req.Period = chi.URLParam(r, "period")

	result, err := h.scoreService.UpdateScore(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Performance score updated successfully", result)
}

func (h *performanceHandlerImpl) DeleteScore(w http.ResponseWriter, r *http.Request) {
	if err := h.scoreService.DeleteScore(r.Context(), chi.URLParam(r, "employeeId"), chi.URLParam(r, "period")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Performance score deleted successfully", nil)
}

func (h *performanceHandlerImpl) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req performance.BulkCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.scoreService.BulkCreate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk create processed", result)
}
