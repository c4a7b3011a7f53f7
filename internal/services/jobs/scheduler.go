package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/admin/web-apps/celestai/internal/ports/jobs"
)

// Scheduler управляет запуском периодических джоб
type Scheduler struct {
	jobs    []jobs.Job
	retries []time.Duration
	log     *slog.Logger
	wg      sync.WaitGroup
}

// NewScheduler создаёт новый планировщик джоб.
// retries - паузы между повторными попытками упавшей джобы.
func NewScheduler(log *slog.Logger, retries ...time.Duration) *Scheduler {
	return &Scheduler{
		jobs:    make([]jobs.Job, 0),
		retries: retries,
		log:     log,
	}
}

// Register регистрирует джобу в планировщике
func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
	s.log.Debug("job registered", "job_name", job.Name(), "total_jobs", len(s.jobs))
}

// Start запускает все зарегистрированные джобы в отдельных горутинах и сразу возвращается
func (s *Scheduler) Start(ctx context.Context) {
	if len(s.jobs) == 0 {
		s.log.Debug("no jobs registered, scheduler not started")
		return
	}

	s.log.Info("starting job scheduler", "jobs_count", len(s.jobs))

	for _, job := range s.jobs {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runJob(ctx, job)
		}()
	}
}

// Wait ждёт остановки всех джоб после отмены контекста
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// runJob запускает отдельную джобу в цикле до отмены контекста
func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	jobName := job.Name()
	for {
		now := time.Now()
		timer := time.NewTimer(job.NextRun(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("job stopped by context", "job_name", jobName)
			return
		case <-timer.C:
			if err := s.executeJobWithRetry(ctx, job); err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				s.log.Error("job failed after all retries",
					"job_name", jobName,
					"error", err,
				)
			} else {
				s.log.Debug("job executed successfully", "job_name", jobName)
			}
		}
	}
}

// executeJobWithRetry выполняет джобу; при ошибке повторяет с паузами из s.retries
func (s *Scheduler) executeJobWithRetry(ctx context.Context, job jobs.Job) error {
	jobName := job.Name()

	err := job.Run(ctx)
	if err == nil {
		return nil
	}

	attemptErrors := []error{err}
	s.log.Warn("job execution failed",
		"job_name", jobName,
		"attempt", 1,
		"retries_remaining", len(s.retries),
		"error", err,
	)

	for i, retryDelay := range s.retries {
		attemptNum := i + 2
		timer := time.NewTimer(retryDelay)

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := job.Run(ctx); err != nil {
			attemptErrors = append(attemptErrors, err)
			s.log.Warn("job retry failed",
				"job_name", jobName,
				"attempt", attemptNum,
				"retries_remaining", len(s.retries)-i-1,
				"error", err,
			)
			continue
		}
		return nil
	}

	return fmt.Errorf("all %d attempts failed: %w", len(attemptErrors), errors.Join(attemptErrors...))
}
