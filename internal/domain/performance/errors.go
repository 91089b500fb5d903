package performance

import "errors"

var (
	ErrScoreNotFound = errors.New("performance score not found")
	ErrScoreExists   = errors.New("performance score already exists for this employee and period")
)
