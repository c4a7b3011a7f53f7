package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/admin/web-apps/celestai/internal/ports/repository"
)

const sessionSweeperName = "session-sweeper"

// SessionSweeper джоба, которая периодически удаляет протухшие сессии дашборда
type SessionSweeper struct {
	sessions repository.ISessionSweeper
	interval time.Duration
	log      *slog.Logger
}

// NewSessionSweeper создаёт джобу чистки сессий с заданным интервалом
func NewSessionSweeper(sessions repository.ISessionSweeper, interval time.Duration, log *slog.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		log:      log,
	}
}

func (j *SessionSweeper) Name() string {
	return sessionSweeperName
}

// NextRun следующий запуск через interval, выровненный по его границе
func (j *SessionSweeper) NextRun(now time.Time) time.Time {
	return now.Truncate(j.interval).Add(j.interval)
}

func (j *SessionSweeper) Run(ctx context.Context) error {
	removed, err := j.sessions.Sweep(ctx)
	if err != nil {
		return err
	}

	if removed > 0 {
		j.log.Info("expired dashboard sessions removed", "count", removed)
	}
	return nil
}
