package performance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Score is an employee's result for one period. Department, Position and
// EmployeeName are snapshots taken when the score was created.
type Score struct {
	ScoreID       string
	EmployeeID    string
	Period        string
	EmployeeName  string
	Department    string
	Position      string
	KPI           decimal.Decimal
	CompletedTask decimal.Decimal
	Feedback360   decimal.Decimal
	OverallScore  decimal.Decimal
	CalculatedAt  time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
