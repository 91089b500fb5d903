package kpi

import (
	"strings"

	"github.com/insighthr/insighthr-backend-go/internal/pkg/validator"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 1000
)

type KPIResponse struct {
	KPIID       string `json:"kpi_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DataType    string `json:"data_type"`
	Category    string `json:"category"`
	IsActive    bool   `json:"is_active"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type KPIFilter struct {
	Category *string `json:"category,omitempty"`
	DataType *string `json:"data_type,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *KPIFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validator.ValidatePagination(&f.Page, &f.Limit)...)

	if f.DataType != nil && *f.DataType != "" && !DataType(*f.DataType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "data_type",
			Message: "data_type must be one of: " + joinDataTypes(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListKPIResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Showing    string        `json:"showing"`
	KPIs       []KPIResponse `json:"kpis"`
}

type CreateKPIRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DataType    string `json:"data_type"`
	Category    string `json:"category"`
}

func (r *CreateKPIRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)

	errs = append(errs, validateName(r.Name)...)
	errs = append(errs, validateDescription(r.Description)...)

	if validator.IsEmpty(r.DataType) {
		errs = append(errs, validator.ValidationError{
			Field:   "data_type",
			Message: "data_type is required",
		})
	} else if !DataType(r.DataType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "data_type",
			Message: "data_type must be one of: " + joinDataTypes(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateKPIRequest merges the non-nil fields into the stored definition.
type UpdateKPIRequest struct {
	KPIID       string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DataType    *string `json:"data_type,omitempty"`
	Category    *string `json:"category,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateKPIRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Description == nil && r.DataType == nil && r.Category == nil && r.IsActive == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field is required",
		})
	}

	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		errs = append(errs, validateName(*r.Name)...)
	}
	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
		errs = append(errs, validateDescription(*r.Description)...)
	}
	if r.DataType != nil && !DataType(*r.DataType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "data_type",
			Message: "data_type must be one of: " + joinDataTypes(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateName(name string) validator.ValidationErrors {
	if name == "" {
		return validator.ValidationErrors{{Field: "name", Message: "name is required"}}
	}
	if len(name) > maxNameLength {
		return validator.ValidationErrors{{Field: "name", Message: "name must be at most 100 characters"}}
	}
	return nil
}

func validateDescription(description string) validator.ValidationErrors {
	if description == "" {
		return validator.ValidationErrors{{Field: "description", Message: "description is required"}}
	}
	if len(description) > maxDescriptionLength {
		return validator.ValidationErrors{{Field: "description", Message: "description must be at most 1000 characters"}}
	}
	return nil
}

func joinDataTypes() string {
	names := make([]string, len(DataTypes))
	for i, d := range DataTypes {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
