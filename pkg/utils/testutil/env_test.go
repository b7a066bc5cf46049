package testutil_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ghcrawl/pkg/utils/testutil"
)

func TestGetEnvOrSkip(t *testing.T) {
	t.Setenv("GHCRAWL_TEST_ENV", "value")
	gt.V(t, testutil.GetEnvOrSkip(t, "GHCRAWL_TEST_ENV")).Equal("value")
}

func TestGetEnvsOrSkip(t *testing.T) {
	t.Run("values in order", func(t *testing.T) {
		t.Setenv("GHCRAWL_TEST_ENV_A", "a")
		t.Setenv("GHCRAWL_TEST_ENV_B", "b")
		gt.V(t, testutil.GetEnvsOrSkip(t, "GHCRAWL_TEST_ENV_B", "GHCRAWL_TEST_ENV_A")).Equal([]string{"b", "a"})
	})

	t.Run("skip when one is missing", func(t *testing.T) {
		t.Setenv("GHCRAWL_TEST_ENV_A", "a")
		t.Setenv("GHCRAWL_TEST_ENV_MISSING", "")

		var reached, skipped bool
		t.Run("gated", func(t *testing.T) {
			defer func() { skipped = t.Skipped() }()
			testutil.GetEnvsOrSkip(t, "GHCRAWL_TEST_ENV_A", "GHCRAWL_TEST_ENV_MISSING")
			reached = true
		})
		gt.False(t, reached)
		gt.True(t, skipped)
	})
}

func TestSleepRecorder(t *testing.T) {
	t.Run("records durations in order", func(t *testing.T) {
		var rec testutil.SleepRecorder
		ctx := context.Background()

		gt.NoError(t, rec.Sleep(ctx, time.Second))
		gt.NoError(t, rec.Sleep(ctx, time.Minute))
		gt.V(t, rec.Durations()).Equal([]time.Duration{time.Second, time.Minute})
	})

	t.Run("returns context error", func(t *testing.T) {
		var rec testutil.SleepRecorder
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		gt.Error(t, rec.Sleep(ctx, time.Second))
		gt.V(t, len(rec.Durations())).Equal(1)
	})
}
