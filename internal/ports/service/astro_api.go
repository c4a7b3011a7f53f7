package service

import (
	"context"

	"github.com/admin/web-apps/celestai/internal/domain"
)

// IAstroAPIService интерфейс для работы с бэкендом CelestAI.
// Вся астрологическая логика живёт на бэкенде, здесь только запрос/ответ.
type IAstroAPIService interface {
	RegisterUser(ctx context.Context, birth domain.BirthData) (string, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GenerateChart(ctx context.Context, userID string) (string, error)
	DailyHoroscope(ctx context.Context, userID string) (string, error)
	AskAstrologer(ctx context.Context, userID string, question string) (string, error)
	PersonalizedInsight(ctx context.Context, userID string) (string, error)
	MatchCompatibility(ctx context.Context, userID, partnerID string) (string, error)
}
