package performance

import (
	"context"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
)

// ScoreRepository stores performance scores keyed by (employeeID, period).
type ScoreRepository interface {
	Create(ctx context.Context, score Score) (Score, error)
	GetByKey(ctx context.Context, employeeID, period string) (Score, error)

	// GetByKeyForUpdate locks the row; it must run inside a transaction
	GetByKeyForUpdate(ctx context.Context, employeeID, period string) (Score, error)
	Update(ctx context.Context, score Score) (Score, error)
	Delete(ctx context.Context, employeeID, period string) error
	List(ctx context.Context, scope access.Scope, filter ScoreFilter) ([]Score, int64, error)
}
