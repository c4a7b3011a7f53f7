package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/admin/web-apps/celestai/internal/domain"
	"github.com/admin/web-apps/celestai/internal/ports/repository"
)

type session struct {
	state       domain.DashboardState
	lockedUntil time.Time
	touchedAt   time.Time
}

// SessionStore in-memory реализация хранилища сессий дашборда.
// Подходит для одного инстанса; сессии живут до рестарта или до истечения ttl.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore создаёт новое in-memory хранилище сессий
func NewSessionStore(ttl time.Duration) repository.ISessionRepo {
	return newSessionStore(ttl, time.Now)
}

func newSessionStore(ttl time.Duration, now func() time.Time) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      now,
	}
}

// lookup возвращает живую сессию; протухшие удаляются. Вызывать под mu.
func (s *SessionStore) lookup(sessionID string) (*session, bool) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(sess.touchedAt) > s.ttl {
		delete(s.sessions, sessionID)
		return nil, false
	}
	return sess, true
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.DashboardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(sessionID)
	if !ok {
		return &domain.DashboardState{}, nil
	}

	state := sess.state
	if sess.state.User != nil {
		user := *sess.state.User
		state.User = &user
	}
	return &state, nil
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, state *domain.DashboardState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(sessionID)
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}

	sess.state = *state
	if state.User != nil {
		user := *state.User
		sess.state.User = &user
	}
	sess.touchedAt = s.now()
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// TryLock ставит флаг loading, если он ещё не стоит или истёк
func (s *SessionStore) TryLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.lookup(sessionID)
	if !ok {
		sess = &session{touchedAt: now}
		s.sessions[sessionID] = sess
	}

	if now.Before(sess.lockedUntil) {
		return false, nil
	}

	sess.lockedUntil = now.Add(ttl)
	return true, nil
}

func (s *SessionStore) Unlock(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sessionID]; ok {
		sess.lockedUntil = time.Time{}
	}
	return nil
}

func (s *SessionStore) IsLocked(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(sessionID)
	if !ok {
		return false, nil
	}
	return s.now().Before(sess.lockedUntil), nil
}

// Sweep удаляет протухшие сессии, до которых больше никто не дотронулся
func (s *SessionStore) Sweep(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var removed int64
	for id, sess := range s.sessions {
		if now.Before(sess.lockedUntil) {
			continue
		}
		if s.ttl > 0 && now.Sub(sess.touchedAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return nil
}

func (s *SessionStore) Close() error {
	return nil
}
