package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/admin/web-apps/celestai/internal/domain"
)

// action одно действие дашборда.
// guard проверяет ввод до любых сетевых вызовов, run зовёт бэкенд и
// меняет state только при успехе.
type action struct {
	name    string
	failure string
	input   func(state *domain.DashboardState)
	guard   func(state *domain.DashboardState) error
	run     func(ctx context.Context, state *domain.DashboardState) error
	// onFailure вызывается после неудачного run (кроме guard)
	onFailure func(state *domain.DashboardState)
}

// perform общий сценарий: ввод -> guard -> loading -> вызов -> сохранить -> снять loading.
// Guard отрабатывает до флага, поэтому пустой ввод получает alert даже во время
// другого запроса. Пока флаг loading стоит, само действие инертно и возвращает
// domain.ErrSessionBusy.
func (s *Service) perform(ctx context.Context, sessionID string, a action) (*domain.DashboardView, error) {
	log := s.Log.With("action", a.name, "session_id", sessionID)

	state, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		log.Error("failed to load dashboard session", "error", err)
		return s.failed(ctx, sessionID, a, err)
	}
	if err := a.check(state); err != nil {
		// ввод не сохраняем: без флага можно перезаписать результат идущего запроса
		view := s.View(ctx, sessionID)
		view.State = state
		view.Alert, _ = domain.AlertMessage(err)
		return view, err
	}

	locked, err := s.Sessions.TryLock(ctx, sessionID, s.LoadingTTL)
	if err != nil {
		log.Error("failed to set loading flag", "error", err)
		return s.failed(ctx, sessionID, a, err)
	}
	if !locked {
		log.Debug("action ignored, request in flight")
		view := s.View(ctx, sessionID)
		view.Loading = true
		return view, domain.ErrSessionBusy
	}

	defer func() {
		// флаг снимаем даже если клиент уже отвалился
		if err := s.Sessions.Unlock(context.WithoutCancel(ctx), sessionID); err != nil {
			log.Error("failed to clear loading flag", "error", err)
		}
	}()

	// под флагом перечитываем: пока его брали, сессию могли сбросить
	state, err = s.Sessions.Get(ctx, sessionID)
	if err != nil {
		log.Error("failed to load dashboard session", "error", err)
		return s.failed(ctx, sessionID, a, err)
	}

	result := a.check(state)
	if result == nil {
		if err := a.run(ctx, state); err != nil {
			log.Warn("dashboard action failed", "error", err)
			if a.onFailure != nil {
				a.onFailure(state)
			}
			result = domain.NewAlert(a.failure, err)
		}
	}

	state.UpdatedAt = s.now()
	if err := s.Sessions.Save(ctx, sessionID, state); err != nil {
		log.Error("failed to save dashboard session", "error", err)
		if result == nil {
			result = domain.NewAlert(a.failure, err)
		}
	}

	view := &domain.DashboardView{State: state}
	if msg, ok := domain.AlertMessage(result); ok {
		view.Alert = msg
	}
	return view, result
}

// check применяет ввод формы к state и прогоняет guard
func (a action) check(state *domain.DashboardState) error {
	if a.input != nil {
		a.input(state)
	}
	if a.guard != nil {
		return a.guard(state)
	}
	return nil
}

// failed ответ на ошибку хранилища: показываем то, что сессия хранит сейчас
func (s *Service) failed(ctx context.Context, sessionID string, a action, err error) (*domain.DashboardView, error) {
	view := s.View(ctx, sessionID)
	view.Alert = a.failure
	return view, domain.NewAlert(a.failure, err)
}

func requireUser(state *domain.DashboardState) error {
	if !state.HasUser() {
		return domain.NewAlert(alertFetchUserFirst, domain.ErrMissingInput)
	}
	return nil
}

// FetchUser загружает пользователя по id и сбрасывает все показанные результаты.
// При ошибке пользователь считается не загруженным.
func (s *Service) FetchUser(ctx context.Context, sessionID, userID string) (*domain.DashboardView, error) {
	userID = strings.TrimSpace(userID)

	return s.perform(ctx, sessionID, action{
		name:    "fetch_user",
		failure: alertUserNotFound,
		input: func(state *domain.DashboardState) {
			state.UserIDInput = userID
		},
		guard: func(state *domain.DashboardState) error {
			if userID == "" {
				return domain.NewAlert(alertEnterUserID, domain.ErrMissingInput)
			}
			return nil
		},
		run: func(ctx context.Context, state *domain.DashboardState) error {
			user, err := s.AstroAPI.GetUser(ctx, userID)
			if err != nil {
				return err
			}
			if user == nil || user.ID == "" {
				return fmt.Errorf("get user %s: empty user in response", userID)
			}
			state.User = user
			state.ResetArtifacts()
			return nil
		},
		onFailure: func(state *domain.DashboardState) {
			state.User = nil
		},
	})
}

// GenerateChart получает разметку карты; на странице она вставляется как есть
func (s *Service) GenerateChart(ctx context.Context, sessionID string) (*domain.DashboardView, error) {
	return s.perform(ctx, sessionID, action{
		name:    "generate_chart",
		failure: alertChartFailed,
		guard:   requireUser,
		run: func(ctx context.Context, state *domain.DashboardState) error {
			chart, err := s.AstroAPI.GenerateChart(ctx, state.User.ID)
			if err != nil {
				return err
			}
			state.Chart = chart
			return nil
		},
	})
}

func (s *Service) DailyHoroscope(ctx context.Context, sessionID string) (*domain.DashboardView, error) {
	return s.perform(ctx, sessionID, action{
		name:    "daily_horoscope",
		failure: alertHoroscopeFailed,
		guard:   requireUser,
		run: func(ctx context.Context, state *domain.DashboardState) error {
			text, err := s.AstroAPI.DailyHoroscope(ctx, state.User.ID)
			if err != nil {
				return err
			}
			state.DailyHoroscope = text
			return nil
		},
	})
}

func (s *Service) AskAstrologer(ctx context.Context, sessionID, question string) (*domain.DashboardView, error) {
	return s.perform(ctx, sessionID, action{
		name:    "ask_astrologer",
		failure: alertAskFailed,
		input: func(state *domain.DashboardState) {
			state.Question = question
		},
		guard: func(state *domain.DashboardState) error {
			if err := requireUser(state); err != nil {
				return err
			}
			if strings.TrimSpace(question) == "" {
				return domain.NewAlert(alertEnterQuestion, domain.ErrMissingInput)
			}
			return nil
		},
		run: func(ctx context.Context, state *domain.DashboardState) error {
			answer, err := s.AstroAPI.AskAstrologer(ctx, state.User.ID, question)
			if err != nil {
				return err
			}
			state.Answer = answer
			return nil
		},
	})
}

func (s *Service) PersonalizedInsight(ctx context.Context, sessionID string) (*domain.DashboardView, error) {
	return s.perform(ctx, sessionID, action{
		name:    "personalized_insight",
		failure: alertInsightFailed,
		guard:   requireUser,
		run: func(ctx context.Context, state *domain.DashboardState) error {
			insight, err := s.AstroAPI.PersonalizedInsight(ctx, state.User.ID)
			if err != nil {
				return err
			}
			state.Insight = insight
			return nil
		},
	})
}

// CheckCompatibility запрашивает отчёт о совместимости, разбирает вложенный JSON
// и сохраняет отформатированную сводку
func (s *Service) CheckCompatibility(ctx context.Context, sessionID, partnerID string) (*domain.DashboardView, error) {
	partnerID = strings.TrimSpace(partnerID)

	return s.perform(ctx, sessionID, action{
		name:    "check_compatibility",
		failure: alertCompatibilityFail,
		input: func(state *domain.DashboardState) {
			state.PartnerID = partnerID
		},
		guard: func(state *domain.DashboardState) error {
			if !state.HasUser() || partnerID == "" {
				return domain.NewAlert(alertEnterBothIDs, domain.ErrMissingInput)
			}
			return nil
		},
		run: func(ctx context.Context, state *domain.DashboardState) error {
			raw, err := s.AstroAPI.MatchCompatibility(ctx, state.User.ID, partnerID)
			if err != nil {
				return err
			}

			report, err := domain.ParseMatchReport(raw)
			if err != nil {
				s.Log.Error("failed to parse match report",
					"error", err,
					"user_id", state.User.ID,
					"partner_id", partnerID,
				)
				return fmt.Errorf("parse match report: %w", err)
			}

			state.Compatibility = report.Summary()
			return nil
		},
	})
}
