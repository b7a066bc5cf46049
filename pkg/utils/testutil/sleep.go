package testutil

import (
	"context"
	"sync"
	"time"
)

// SleepRecorder records requested sleeps instead of sleeping.
type SleepRecorder struct {
	mu        sync.Mutex
	durations []time.Duration
}

func (x *SleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.durations = append(x.durations, d)
	return ctx.Err()
}

func (x *SleepRecorder) Durations() []time.Duration {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]time.Duration(nil), x.durations...)
}
