package kpi

import "time"

// DataType is how values recorded against a KPI are interpreted.
type DataType string

const (
	DataTypeNumber     DataType = "number"
	DataTypePercentage DataType = "percentage"
	DataTypeBoolean    DataType = "boolean"
	DataTypeText       DataType = "text"
)

var DataTypes = []DataType{DataTypeNumber, DataTypePercentage, DataTypeBoolean, DataTypeText}

func (d DataType) IsValid() bool {
	switch d {
	case DataTypeNumber, DataTypePercentage, DataTypeBoolean, DataTypeText:
		return true
	default:
		return false
	}
}

// KPI is a named metric definition. Disabling a KPI keeps the row so past
// scores that reference it stay readable.
type KPI struct {
	KPIID       string
	Name        string
	Description string
	DataType    DataType
	Category    string
	IsActive    bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
