package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRejectsUnknownTimezone(t *testing.T) {
	_, err := New("Mars/Olympus", discardLogger())
	assert.Error(t, err)
}

func TestAddJobValidatesSpec(t *testing.T) {
	s, err := New("Asia/Kolkata", discardLogger())
	require.NoError(t, err)

	assert.NoError(t, s.AddJob("reviews", "0 0 * * *", func(ctx context.Context) error { return nil }))
	assert.Error(t, s.AddJob("broken", "every day", func(ctx context.Context) error { return nil }))
	assert.Equal(t, 1, s.Entries())
}

func TestJobRunsAndSurvivesFailures(t *testing.T) {
	s, err := New("UTC", discardLogger())
	require.NoError(t, err)

	var runs atomic.Int32
	require.NoError(t, s.AddJob("tick", "@every 1s", func(ctx context.Context) error {
		runs.Add(1)
		if runs.Load() == 1 {
			return errors.New("first run fails")
		}
		panic("second run panics")
	}))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
