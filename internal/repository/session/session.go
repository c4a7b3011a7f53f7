package sessionRepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/web-apps/celestai/internal/domain"
	"github.com/admin/web-apps/celestai/internal/ports/persistence"
	ports "github.com/admin/web-apps/celestai/internal/ports/repository"
)

type sessionColumns struct {
	TableName   string
	ID          string
	State       string
	LockedUntil string
	UpdatedAt   string
}

// Repository хранилище сессий дашборда в PostgreSQL (таблица dashboard_sessions)
type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	ttl     time.Duration
	columns sessionColumns
}

// New создаёт новый репозиторий сессий; сессии старше ttl считаются пустыми
func New(db persistence.Persistence, ttl time.Duration, log *slog.Logger) ports.ISessionRepo {
	return &Repository{
		db:  db,
		Log: log,
		ttl: ttl,
		columns: sessionColumns{
			TableName:   "dashboard_sessions",
			ID:          "id",
			State:       "state",
			LockedUntil: "locked_until",
			UpdatedAt:   "updated_at",
		},
	}
}

// Get получает состояние сессии; отсутствующая или протухшая сессия - пустое состояние
func (r *Repository) Get(ctx context.Context, sessionID string) (*domain.DashboardState, error) {
	var raw []byte
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s > NOW() - make_interval(secs => $2)`,
		r.columns.State,
		r.columns.TableName,
		r.columns.ID,
		r.columns.UpdatedAt)

	err := r.db.Get(ctx, &raw, query, sessionID, r.ttl.Seconds())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.DashboardState{}, nil
		}
		r.Log.Error("failed to get dashboard session",
			"error", err,
			"session_id", sessionID)
		return nil, fmt.Errorf("failed to get dashboard session: %w", err)
	}

	var state domain.DashboardState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	return &state, nil
}

// Save сохраняет состояние сессии (upsert), флаг loading не трогает
func (r *Repository) Save(ctx context.Context, sessionID string, state *domain.DashboardState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s) VALUES ($1, $2, NOW())
		ON CONFLICT (%[2]s) DO UPDATE SET %[3]s = EXCLUDED.%[3]s, %[4]s = NOW()`,
		r.columns.TableName,
		r.columns.ID,
		r.columns.State,
		r.columns.UpdatedAt)

	if err := r.db.Exec(ctx, query, sessionID, data); err != nil {
		r.Log.Error("failed to save dashboard session",
			"error", err,
			"session_id", sessionID)
		return fmt.Errorf("failed to save dashboard session: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.columns.TableName, r.columns.ID)
	if err := r.db.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete dashboard session: %w", err)
	}
	return nil
}

// TryLock ставит locked_until, только если флаг не стоит или уже истёк.
// Атомарность обеспечивает условный ON CONFLICT DO UPDATE ... WHERE.
func (r *Repository) TryLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	query := fmt.Sprintf(`INSERT INTO %[1]s (%[2]s, %[3]s) VALUES ($1, NOW() + make_interval(secs => $2))
		ON CONFLICT (%[2]s) DO UPDATE SET %[3]s = EXCLUDED.%[3]s
		WHERE %[1]s.%[3]s IS NULL OR %[1]s.%[3]s <= NOW()`,
		r.columns.TableName,
		r.columns.ID,
		r.columns.LockedUntil)

	rowsAffected, err := r.db.ExecWithResult(ctx, query, sessionID, ttl.Seconds())
	if err != nil {
		r.Log.Error("failed to lock dashboard session",
			"error", err,
			"session_id", sessionID)
		return false, fmt.Errorf("failed to lock dashboard session: %w", err)
	}
	return rowsAffected == 1, nil
}

func (r *Repository) Unlock(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		r.columns.TableName,
		r.columns.LockedUntil,
		r.columns.ID)
	if err := r.db.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to unlock dashboard session: %w", err)
	}
	return nil
}

func (r *Repository) IsLocked(ctx context.Context, sessionID string) (bool, error) {
	var locked bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s > NOW())`,
		r.columns.TableName,
		r.columns.ID,
		r.columns.LockedUntil)
	if err := r.db.Get(ctx, &locked, query, sessionID); err != nil {
		return false, fmt.Errorf("failed to check dashboard session lock: %w", err)
	}
	return locked, nil
}

// Sweep удаляет сессии старше ttl, у которых не стоит флаг loading
func (r *Repository) Sweep(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %[1]s WHERE %[2]s < NOW() - make_interval(secs => $1)
		AND (%[3]s IS NULL OR %[3]s <= NOW())`,
		r.columns.TableName,
		r.columns.UpdatedAt,
		r.columns.LockedUntil)

	removed, err := r.db.ExecWithResult(ctx, query, r.ttl.Seconds())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep dashboard sessions: %w", err)
	}
	return removed, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *Repository) Close() error {
	return r.db.Close()
}
