package scheduler

import (
	"context"
	"time"
)

type SessionExpirer interface {
	ExpireSessions(ctx context.Context, olderThan time.Time) int
}

// SweepSessions drops sessions nobody touched for maxAge.
func SweepSessions(store SessionExpirer, maxAge time.Duration, now func() time.Time) taskFn {
	return func(ctx context.Context) error {
		store.ExpireSessions(ctx, now().Add(-maxAge))
		return nil
	}
}
