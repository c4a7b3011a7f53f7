package astroApi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	astroApiAdapter "github.com/admin/web-apps/celestai/internal/adapters/secondary/astroApi"
	"github.com/admin/web-apps/celestai/internal/domain"
	"github.com/admin/web-apps/celestai/internal/ports/service"
)

// Service реализует IAstroAPIService поверх HTTP клиента бэкенда
type Service struct {
	client *astroApiAdapter.Client
}

// New создаёт новый сервис для работы с бэкендом
func New(client *astroApiAdapter.Client) service.IAstroAPIService {
	return &Service{
		client: client,
	}
}

// RegisterUser отправляет данные о рождении и возвращает id пользователя
func (s *Service) RegisterUser(ctx context.Context, birth domain.BirthData) (string, error) {
	req := astroApiAdapter.RegisterUserRequest{
		Name:     birth.Name,
		Place:    birth.Place,
		Time:     birth.Time,
		Day:      birth.Day,
		Month:    birth.Month,
		Year:     birth.Year,
		Timezone: birth.Timezone,
	}

	resp, err := s.client.RegisterUser(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	if resp.UserID == "" {
		return "", fmt.Errorf("astro API returned empty user_id")
	}

	return resp.UserID, nil
}

// GetUser получает пользователя; 404 превращается в domain.ErrUserNotFound
func (s *Service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	resp, err := s.client.GetUser(ctx, userID)
	if err != nil {
		var statusErr *astroApiAdapter.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("get user %s: %w", userID, domain.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// null или {} в ответе: без id дальнейшие запросы уйдут без идентификатора
	if resp.ID == "" {
		return nil, fmt.Errorf("astro API returned user without id")
	}

	return &domain.User{
		ID:       resp.ID,
		Name:     resp.Name,
		Place:    resp.Place,
		Time:     resp.Time,
		Day:      resp.Day,
		Month:    resp.Month,
		Year:     resp.Year,
		Timezone: resp.Timezone,
	}, nil
}

// GenerateChart возвращает разметку карты без изменений
func (s *Service) GenerateChart(ctx context.Context, userID string) (string, error) {
	chart, err := s.client.GenerateChart(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate chart: %w", err)
	}
	return chart, nil
}

func (s *Service) DailyHoroscope(ctx context.Context, userID string) (string, error) {
	resp, err := s.client.DailyHoroscope(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get daily horoscope: %w", err)
	}
	return resp.DailyHoroscope, nil
}

func (s *Service) AskAstrologer(ctx context.Context, userID string, question string) (string, error) {
	resp, err := s.client.AskAstrologer(ctx, userID, astroApiAdapter.AskRequest{Question: question})
	if err != nil {
		return "", fmt.Errorf("failed to ask astrologer: %w", err)
	}
	return resp.Answer, nil
}

func (s *Service) PersonalizedInsight(ctx context.Context, userID string) (string, error) {
	resp, err := s.client.PersonalizedInsight(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get personalized insight: %w", err)
	}
	return resp.PersonalizedInsight, nil
}

// MatchCompatibility возвращает match_report как есть (строка с JSON внутри)
func (s *Service) MatchCompatibility(ctx context.Context, userID, partnerID string) (string, error) {
	resp, err := s.client.MatchCompatibility(ctx, astroApiAdapter.MatchRequest{
		User1ID: userID,
		User2ID: partnerID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to match compatibility: %w", err)
	}
	return resp.MatchReport, nil
}
