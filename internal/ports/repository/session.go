package repository

import (
	"context"
	"time"

	"github.com/admin/web-apps/celestai/internal/domain"
)

// ISessionRepo хранилище состояния дашборда по id браузерной сессии.
// TryLock/Unlock - флаг loading: пока он стоит, действия в сессии не выполняются.
type ISessionRepo interface {
	// Get возвращает состояние сессии; для неизвестной сессии - пустое состояние
	Get(ctx context.Context, sessionID string) (*domain.DashboardState, error)
	Save(ctx context.Context, sessionID string, state *domain.DashboardState) error
	// Delete удаляет состояние и флаг loading одной операцией
	Delete(ctx context.Context, sessionID string) error

	TryLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, sessionID string) error
	IsLocked(ctx context.Context, sessionID string) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}

// ISessionSweeper хранилище, которому нужна периодическая чистка протухших сессий.
// Redis удаляет их сам по TTL ключей и этот интерфейс не реализует.
type ISessionSweeper interface {
	// Sweep удаляет протухшие сессии без активного флага loading, возвращает их количество
	Sweep(ctx context.Context) (int64, error)
}
