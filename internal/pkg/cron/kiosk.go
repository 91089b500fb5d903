package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/insighthr/insighthr-backend-go/internal/pkg/ratelimit"
)

// RegisterLimiterSweep drops idle per-client buckets of the kiosk rate limiter
func RegisterLimiterSweep(s *Scheduler, limiter *ratelimit.KeyedLimiter, every time.Duration) {
	s.AddJob("sweep_kiosk_limiter", every, func(ctx context.Context) error {
		if removed := limiter.Sweep(); removed > 0 {
			slog.DebugContext(ctx, "Kiosk limiter swept", "removed", removed, "remaining", limiter.Len())
		}
		return nil
	})
}
