package performance

import "context"

// ScoreService defines business logic for performance scores
type ScoreService interface {
	// ListScores lists scores visible to the caller (Employee: own scores only)
	ListScores(ctx context.Context, filter ScoreFilter) (ListScoreResponse, error)
	GetScore(ctx context.Context, employeeID, period string) (ScoreResponse, error)

	// CreateScore creates a score (Admin, or Manager of the employee's department)
	CreateScore(ctx context.Context, req CreateScoreRequest) (ScoreResponse, error)

	// UpdateScore merges sub-scores and recomputes the overall score
	UpdateScore(ctx context.Context, req UpdateScoreRequest) (ScoreResponse, error)
	DeleteScore(ctx context.Context, employeeID, period string) error
	BulkCreate(ctx context.Context, req BulkCreateRequest) (BulkCreateResponse, error)
}
