package abuse

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/rewardengine/internal/common"
	"github.com/questx-lab/rewardengine/pkg/xredis"
)

// Counter records an event of the action performed by identity and returns the
// number of events, the current one included, which happened in the last
// window.
type Counter interface {
	Record(ctx context.Context, identity, action string, now time.Time, window time.Duration) (int, error)
}

type slidingWindow struct {
	mu     sync.Mutex
	window time.Duration
	events []time.Time
	dead   bool
}

// prune drops every event which happened at or before now-window.
func (w *slidingWindow) prune(now time.Time) {
	boundary := now.Add(-w.window)
	i := 0
	for i < len(w.events) && !w.events[i].After(boundary) {
		i++
	}

	w.events = w.events[i:]
}

type memoryCounter struct {
	windows *xsync.MapOf[string, *slidingWindow]
}

// NewMemoryCounter creates a process-local Counter. Its state is lost on
// restart, so every identity starts again with an empty window.
func NewMemoryCounter() *memoryCounter {
	return &memoryCounter{windows: xsync.NewMapOf[*slidingWindow]()}
}

func (c *memoryCounter) Record(
	ctx context.Context, identity, action string, now time.Time, window time.Duration,
) (int, error) {
	key := common.RedisKeyAbuseCounter(identity, action)
	for {
		w, _ := c.windows.LoadOrStore(key, &slidingWindow{window: window})

		w.mu.Lock()
		if w.dead {
			// Swept between loading and locking, load again.
			w.mu.Unlock()
			continue
		}

		w.window = window
		w.prune(now)
		w.events = append(w.events, now)
		count := len(w.events)
		w.mu.Unlock()

		return count, nil
	}
}

// Sweep evicts the windows which have no event left. It returns the number of
// evicted windows.
func (c *memoryCounter) Sweep(now time.Time) int {
	evicted := 0
	c.windows.Range(func(key string, w *slidingWindow) bool {
		w.mu.Lock()
		defer w.mu.Unlock()

		w.prune(now)
		if len(w.events) == 0 {
			w.dead = true
			c.windows.Delete(key)
			evicted++
		}

		return true
	})

	return evicted
}

// Size returns the number of tracked windows.
func (c *memoryCounter) Size() int {
	return c.windows.Size()
}

type redisCounter struct {
	client xredis.Client
}

// NewRedisCounter creates a Counter shared by every instance connecting to the
// same redis server.
func NewRedisCounter(client xredis.Client) *redisCounter {
	return &redisCounter{client: client}
}

func (c *redisCounter) Record(
	ctx context.Context, identity, action string, now time.Time, window time.Duration,
) (int, error) {
	key := common.RedisKeyAbuseCounter(identity, action)
	n, err := c.client.SlidingWindowAdd(ctx, key, uuid.NewString(), now, window)
	if err != nil {
		return 0, err
	}

	return int(n), nil
}
