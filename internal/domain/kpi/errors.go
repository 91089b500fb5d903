package kpi

import "errors"

var (
	ErrKPINotFound   = errors.New("KPI not found")
	ErrKPINameExists = errors.New("KPI name already exists")
)
