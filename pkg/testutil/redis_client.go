package testutil

import (
	"context"
	"time"
)

type MockRedisClient struct {
	SlidingWindowAddFunc func(ctx context.Context, key, member string, now time.Time, window time.Duration) (int64, error)
}

func (m *MockRedisClient) SlidingWindowAdd(
	ctx context.Context, key, member string, now time.Time, window time.Duration,
) (int64, error) {
	if m.SlidingWindowAddFunc != nil {
		return m.SlidingWindowAddFunc(ctx, key, member, now, window)
	}

	return 0, nil
}
