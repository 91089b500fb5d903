package performance

import "github.com/shopspring/decimal"

var (
	three    = decimal.NewFromInt(3)
	maxScore = decimal.NewFromInt(100)
)

// Overall returns the arithmetic mean of the three sub-scores, rounded to two
// decimal places, unless override is set.
func Overall(kpi, completedTask, feedback360 decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return override.Round(2)
	}
	return kpi.Add(completedTask).Add(feedback360).Div(three).Round(2)
}

// InRange reports whether d is a valid score between 0 and 100.
func InRange(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(maxScore)
}
