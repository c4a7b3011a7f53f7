package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/web-apps/celestai/internal/domain"
	"github.com/admin/web-apps/celestai/internal/ports/repository"
	"github.com/admin/web-apps/celestai/internal/ports/service"
)

// Сообщения, которые видит пользователь
const (
	alertEnterUserID       = "Please enter your User ID"
	alertFetchUserFirst    = "Enter User ID and fetch user first"
	alertEnterQuestion     = "Please enter your question"
	alertEnterBothIDs      = "Please enter both User IDs"
	alertUserNotFound      = "User not found or API error"
	alertChartFailed       = "Error generating chart"
	alertHoroscopeFailed   = "Error fetching horoscope"
	alertAskFailed         = "Error asking astrologer"
	alertInsightFailed     = "Error fetching insights"
	alertCompatibilityFail = "Error checking compatibility"
)

// Service бизнес-логика дашборда: загрузка пользователя и действия над ним.
// Состояние каждой браузерной сессии хранится в Sessions.
type Service struct {
	AstroAPI   service.IAstroAPIService
	Sessions   repository.ISessionRepo
	LoadingTTL time.Duration
	Log        *slog.Logger
	now        func() time.Time
}

// New создаёт новый сервис дашборда
func New(
	astroAPI service.IAstroAPIService,
	sessions repository.ISessionRepo,
	loadingTTL time.Duration,
	log *slog.Logger,
) *Service {
	return &Service{
		AstroAPI:   astroAPI,
		Sessions:   sessions,
		LoadingTTL: loadingTTL,
		Log:        log,
		now:        time.Now,
	}
}

// View текущее состояние сессии для рендера страницы
func (s *Service) View(ctx context.Context, sessionID string) *domain.DashboardView {
	state, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		s.Log.Error("failed to load dashboard session",
			"error", err,
			"session_id", sessionID,
		)
		state = &domain.DashboardState{}
	}

	locked, err := s.Sessions.IsLocked(ctx, sessionID)
	if err != nil {
		s.Log.Warn("failed to check loading flag",
			"error", err,
			"session_id", sessionID,
		)
	}

	return &domain.DashboardView{
		State:   state,
		Loading: locked,
	}
}

// Reset забывает загруженного пользователя и все результаты сессии.
// Сброс берёт флаг loading сам, поэтому не пересекается с идущим действием;
// Delete снимает флаг вместе с состоянием.
func (s *Service) Reset(ctx context.Context, sessionID string) (*domain.DashboardView, error) {
	locked, err := s.Sessions.TryLock(ctx, sessionID, s.LoadingTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to set loading flag: %w", err)
	}
	if !locked {
		view := s.View(ctx, sessionID)
		view.Loading = true
		return view, domain.ErrSessionBusy
	}

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		if unlockErr := s.Sessions.Unlock(context.WithoutCancel(ctx), sessionID); unlockErr != nil {
			s.Log.Error("failed to clear loading flag",
				"error", unlockErr,
				"session_id", sessionID,
			)
		}
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	s.Log.Debug("dashboard session reset", "session_id", sessionID)
	return &domain.DashboardView{State: &domain.DashboardState{}}, nil
}
