package performance

import (
	"fmt"

	"github.com/insighthr/insighthr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ScoreResponse struct {
	ScoreID       string          `json:"score_id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	Department    string          `json:"department"`
	Position      string          `json:"position"`
	Period        string          `json:"period"`
	KPI           decimal.Decimal `json:"kpi"`
	CompletedTask decimal.Decimal `json:"completed_task"`
	Feedback360   decimal.Decimal `json:"feedback_360"`
	OverallScore  decimal.Decimal `json:"overall_score"`
	CalculatedAt  string          `json:"calculated_at"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

type ScoreFilter struct {
	Period     *string `json:"period,omitempty"`
	Department *string `json:"department,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ScoreFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validator.ValidatePagination(&f.Page, &f.Limit)...)

	if f.Period != nil && *f.Period != "" && !validator.IsValidPeriod(*f.Period) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must look like 2025-1 or 2025-Q1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListScoreResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Showing    string          `json:"showing"`
	Scores     []ScoreResponse `json:"scores"`
}

type CreateScoreRequest struct {
	EmployeeID    string           `json:"employee_id"`
	Period        string           `json:"period"`
	KPI           decimal.Decimal  `json:"kpi"`
	CompletedTask decimal.Decimal  `json:"completed_task"`
	Feedback360   decimal.Decimal  `json:"feedback_360"`
	FinalScore    *decimal.Decimal `json:"final_score,omitempty"`
}

func (r *CreateScoreRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Period) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period is required",
		})
	} else if !validator.IsValidPeriod(r.Period) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must look like 2025-1 or 2025-Q1",
		})
	}

	errs = append(errs, validateScores(&r.KPI, &r.CompletedTask, &r.Feedback360, r.FinalScore)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateScoreRequest merges the given sub-scores into the stored ones.
type UpdateScoreRequest struct {
	EmployeeID    string           `json:"-"`
	Period        string           `json:"-"`
	KPI           *decimal.Decimal `json:"kpi,omitempty"`
	CompletedTask *decimal.Decimal `json:"completed_task,omitempty"`
	Feedback360   *decimal.Decimal `json:"feedback_360,omitempty"`
	FinalScore    *decimal.Decimal `json:"final_score,omitempty"`
}

func (r *UpdateScoreRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.KPI == nil && r.CompletedTask == nil && r.Feedback360 == nil && r.FinalScore == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one score is required",
		})
	}

	errs = append(errs, validateScores(r.KPI, r.CompletedTask, r.Feedback360, r.FinalScore)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkCreateRequest struct {
	Scores []CreateScoreRequest `json:"scores"`
}

const MaxBulkRows = 1000

func (r *BulkCreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Scores) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "scores",
			Message: "at least one score is required",
		})
	}

	if len(r.Scores) > MaxBulkRows {
		errs = append(errs, validator.ValidationError{
			Field:   "scores",
			Message: fmt.Sprintf("at most %d scores are allowed", MaxBulkRows),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkRowResult struct {
	Row        int            `json:"row"`
	EmployeeID string         `json:"employee_id"`
	Period     string         `json:"period"`
	Success    bool           `json:"success"`
	Score      *ScoreResponse `json:"score,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type BulkCreateResponse struct {
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Results   []BulkRowResult `json:"results"`
}

func validateScores(kpi, completedTask, feedback360, final *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors

	fields := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"kpi", kpi},
		{"completed_task", completedTask},
		{"feedback_360", feedback360},
		{"final_score", final},
	}

	for _, f := range fields {
		if f.value != nil && !InRange(*f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: f.name + " must be between 0 and 100",
			})
		}
	}

	return errs
}
