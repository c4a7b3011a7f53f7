package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/admin/web-apps/celestai/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs     atomic.Int32
	failures int32
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) NextRun(now time.Time) time.Time {
	return now.Add(5 * time.Millisecond)
}

func (j *countingJob) Run(ctx context.Context) error {
	n := j.runs.Add(1)
	if n <= j.failures {
		return errors.New("transient")
	}
	return nil
}

type fakeSweeper struct {
	removed int64
	err     error
	calls   atomic.Int32
}

func (f *fakeSweeper) Sweep(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	return f.removed, f.err
}

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	job := &countingJob{}

	scheduler := NewScheduler(logger.NewDiscard())
	scheduler.Register(job)
	scheduler.Start(ctx)

	assert.Eventually(t, func() bool { return job.runs.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()
	scheduler.Wait()

	stopped := job.runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, job.runs.Load())
}

func TestScheduler_RetriesFailedJob(t *testing.T) {
	job := &countingJob{failures: 2}
	scheduler := NewScheduler(logger.NewDiscard(), time.Millisecond, time.Millisecond)

	err := scheduler.executeJobWithRetry(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, int32(3), job.runs.Load())
}

func TestScheduler_AllRetriesFail(t *testing.T) {
	job := &countingJob{failures: 10}
	scheduler := NewScheduler(logger.NewDiscard(), time.Millisecond)

	err := scheduler.executeJobWithRetry(context.Background(), job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 attempts failed")
	assert.Equal(t, int32(2), job.runs.Load())
}

func TestScheduler_StartWithoutJobs(t *testing.T) {
	scheduler := NewScheduler(logger.NewDiscard())
	scheduler.Start(context.Background())
	scheduler.Wait()
}

func TestSessionSweeper(t *testing.T) {
	sweeper := &fakeSweeper{removed: 3}
	job := NewSessionSweeper(sweeper, 10*time.Minute, logger.NewDiscard())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, int32(1), sweeper.calls.Load())

	sweeper.err = errors.New("db down")
	assert.Error(t, job.Run(context.Background()))
}

func TestSessionSweeper_NextRun(t *testing.T) {
	job := NewSessionSweeper(&fakeSweeper{}, 10*time.Minute, logger.NewDiscard())

	now := time.Date(2026, 1, 1, 12, 34, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 1, 12, 40, 0, 0, time.UTC), job.NextRun(now))

	onBoundary := time.Date(2026, 1, 1, 12, 40, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 1, 12, 50, 0, 0, time.UTC), job.NextRun(onBoundary))
}
