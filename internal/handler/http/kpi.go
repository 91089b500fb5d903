package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/insighthr/insighthr-backend-go/internal/domain/kpi"
	"github.com/insighthr/insighthr-backend-go/internal/handler/http/response"
)

// KPIHandler serves the KPI definition catalogue. Writes are Admin only,
// which the service enforces.
type KPIHandler interface {
	ListKPIs(w http.ResponseWriter, r *http.Request)
	GetKPI(w http.ResponseWriter, r *http.Request)
	CreateKPI(w http.ResponseWriter, r *http.Request)
	UpdateKPI(w http.ResponseWriter, r *http.Request)
	DisableKPI(w http.ResponseWriter, r *http.Request)
}

type kpiHandlerImpl struct {
	kpiService kpi.KPIService
}

func NewKPIHandler(kpiService kpi.KPIService) KPIHandler {
	return &kpiHandlerImpl{kpiService: kpiService}
}

func (h *kpiHandlerImpl) ListKPIs(w http.ResponseWriter, r *http.Request) {
	filter := kpi.KPIFilter{
		Category: queryString(r, "category"),
		DataType: queryString(r, "data_type"),
		IsActive: queryBool(r, "is_active"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}

	result, err := h.kpiService.ListKPIs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *kpiHandlerImpl) GetKPI(w http.ResponseWriter, r *http.Request) {
	result, err := h.kpiService.GetKPI(r.Context(), chi.URLParam(r, "kpiId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *kpiHandlerImpl) CreateKPI(w http.ResponseWriter, r *http.Request) {
	var req kpi.CreateKPIRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.kpiService.CreateKPI(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "KPI created successfully", result)
}

func (h *kpiHandlerImpl) UpdateKPI(w http.ResponseWriter, r *http.Request) {
	var req kpi.UpdateKPIRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.KPIID = chi.URLParam(r, "kpiId")

	result, err := h.kpiService.UpdateKPI(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI updated successfully", result)
}

// DisableKPI answers DELETE; the definition stays stored with is_active false.
func (h *kpiHandlerImpl) DisableKPI(w http.ResponseWriter, r *http.Request) {
	result, err := h.kpiService.DisableKPI(r.Context(), chi.URLParam(r, "kpiId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI disabled successfully", result)
}
