// Package astrofake - подмена бэкенда CelestAI для тестов usecase и контроллеров.
package astrofake

import (
	"context"
	"sync"

	"github.com/admin/web-apps/celestai/internal/domain"
)

// Call один вызов бэкенда
type Call struct {
	Method string
	Args   []string
}

// API реализует service.IAstroAPIService. Поведение задаётся функциями-полями;
// если функция не задана, метод возвращает пустой результат без ошибки.
type API struct {
	RegisterUserFunc        func(ctx context.Context, birth domain.BirthData) (string, error)
	GetUserFunc             func(ctx context.Context, userID string) (*domain.User, error)
	GenerateChartFunc       func(ctx context.Context, userID string) (string, error)
	DailyHoroscopeFunc      func(ctx context.Context, userID string) (string, error)
	AskAstrologerFunc       func(ctx context.Context, userID, question string) (string, error)
	PersonalizedInsightFunc func(ctx context.Context, userID string) (string, error)
	MatchCompatibilityFunc  func(ctx context.Context, userID, partnerID string) (string, error)

	mu    sync.Mutex
	calls []Call
}

func (a *API) record(method string, args ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, Call{Method: method, Args: args})
}

// Calls возвращает копию всех вызовов
func (a *API) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Call(nil), a.calls...)
}

// CallCount количество вызовов бэкенда
func (a *API) CallCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

func (a *API) RegisterUser(ctx context.Context, birth domain.BirthData) (string, error) {
	a.record("RegisterUser", birth.Name)
	if a.RegisterUserFunc == nil {
		return "", nil
	}
	return a.RegisterUserFunc(ctx, birth)
}

func (a *API) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	a.record("GetUser", userID)
	if a.GetUserFunc == nil {
		return &domain.User{ID: userID}, nil
	}
	return a.GetUserFunc(ctx, userID)
}

func (a *API) GenerateChart(ctx context.Context, userID string) (string, error) {
	a.record("GenerateChart", userID)
	if a.GenerateChartFunc == nil {
		return "", nil
	}
	return a.GenerateChartFunc(ctx, userID)
}

func (a *API) DailyHoroscope(ctx context.Context, userID string) (string, error) {
	a.record("DailyHoroscope", userID)
	if a.DailyHoroscopeFunc == nil {
		return "", nil
	}
	return a.DailyHoroscopeFunc(ctx, userID)
}

func (a *API) AskAstrologer(ctx context.Context, userID, question string) (string, error) {
	a.record("AskAstrologer", userID, question)
	if a.AskAstrologerFunc == nil {
		return "", nil
	}
	return a.AskAstrologerFunc(ctx, userID, question)
}

func (a *API) PersonalizedInsight(ctx context.Context, userID string) (string, error) {
	a.record("PersonalizedInsight", userID)
	if a.PersonalizedInsightFunc == nil {
		return "", nil
	}
	return a.PersonalizedInsightFunc(ctx, userID)
}

func (a *API) MatchCompatibility(ctx context.Context, userID, partnerID string) (string, error) {
	a.record("MatchCompatibility", userID, partnerID)
	if a.MatchCompatibilityFunc == nil {
		return "", nil
	}
	return a.MatchCompatibilityFunc(ctx, userID, partnerID)
}
