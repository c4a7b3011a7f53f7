package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/admin/web-apps/celestai/internal/domain"
	"github.com/admin/web-apps/celestai/internal/ports/repository"
	"github.com/redis/go-redis/v9"
)

// SessionStore хранилище сессий дашборда в Redis.
// Состояние лежит JSON-строкой под <prefix>:state:<id>, флаг loading - под <prefix>:lock:<id>.
type SessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore создаёт хранилище сессий поверх redis.Client
func NewSessionStore(client *redis.Client, prefix string, ttl time.Duration) repository.ISessionRepo {
	return &SessionStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *SessionStore) stateKey(sessionID string) string {
	return s.prefix + ":state:" + sessionID
}

func (s *SessionStore) lockKey(sessionID string) string {
	return s.prefix + ":lock:" + sessionID
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.DashboardState, error) {
	val, err := s.client.Get(ctx, s.stateKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return &domain.DashboardState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var state domain.DashboardState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	return &state, nil
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, state *domain.DashboardState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := s.client.Set(ctx, s.stateKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.stateKey(sessionID), s.lockKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// TryLock SET NX с ttl: ставится только если ключа нет
func (s *SessionStore) TryLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.lockKey(sessionID), time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx failed: %w", err)
	}
	return ok, nil
}

func (s *SessionStore) Unlock(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.lockKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *SessionStore) IsLocked(ctx context.Context, sessionID string) (bool, error) {
	count, err := s.client.Exists(ctx, s.lockKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return count > 0, nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close закрывает подключение к Redis
func (s *SessionStore) Close() error {
	return s.client.Close()
}
