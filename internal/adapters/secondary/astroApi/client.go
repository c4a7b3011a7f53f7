package astroApi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	RegisterUser        = "register_user"
	GetUser             = "get_user"
	GenerateChart       = "generate_chart"
	DailyHoroscope      = "daily_horoscope"
	AskAstrologer       = "ask_astrologer"
	PersonalizedInsight = "personalized_insights"
	MatchCompatibility  = "match_compatibility"
)

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client - клиент для работы с бэкендом CelestAI
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент для работы с бэкендом
func NewClient(cfg *Config, log *slog.Logger) *Client {
	transport := &http.Transport{}

	if cfg.ShouldSkipSSL() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		Log: log,
	}
}

// buildURL собирает полный URL из BaseURL, endpoint и (опционально) id пользователя
func (c *Client) buildURL(endpoint string, userID string) string {
	baseURL := strings.TrimSuffix(c.cfg.BaseURL, "/")
	if userID == "" {
		return baseURL + "/" + endpoint
	}
	return baseURL + "/" + endpoint + "/" + url.PathEscape(userID)
}

// setHeaders устанавливает стандартные заголовки для запросов к API
func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.ApiKey)
	}
}

// do выполняет запрос и возвращает тело ответа; не 2xx - *StatusError
func (c *Client) do(ctx context.Context, method, endpoint, userID string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	reqURL := c.buildURL(endpoint, userID)
	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	c.setHeaders(httpReq, payload != nil)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Ошибка внешнего API - Debug
		c.Log.Debug("astro API returned non-2xx status",
			"endpoint", endpoint,
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(respBody), 200),
		)
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       truncateString(string(respBody), 500),
		}
	}

	return respBody, nil
}

// doJSON выполняет запрос и разбирает JSON ответ в dest
func (c *Client) doJSON(ctx context.Context, method, endpoint, userID string, payload, dest interface{}) error {
	body, err := c.do(ctx, method, endpoint, userID, payload)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.Log.Debug("failed to unmarshal astro API response",
			"endpoint", endpoint,
			"error", err,
			"body_preview", truncateString(string(body), 200),
		)
		return fmt.Errorf("astro API unmarshal failed [endpoint=%s]: %w", endpoint, err)
	}

	return nil
}

// RegisterUser регистрирует пользователя и возвращает его id
func (c *Client) RegisterUser(ctx context.Context, req RegisterUserRequest) (*RegisterUserResponse, error) {
	var resp RegisterUserResponse
	if err := c.doJSON(ctx, http.MethodPost, RegisterUser, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetUser получает пользователя по id
func (c *Client) GetUser(ctx context.Context, userID string) (*UserResponse, error) {
	var resp UserResponse
	if err := c.doJSON(ctx, http.MethodGet, GetUser, userID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateChart возвращает разметку карты (SVG) как есть
func (c *Client) GenerateChart(ctx context.Context, userID string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, GenerateChart, userID, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DailyHoroscope получает гороскоп на день
func (c *Client) DailyHoroscope(ctx context.Context, userID string) (*DailyHoroscopeResponse, error) {
	var resp DailyHoroscopeResponse
	if err := c.doJSON(ctx, http.MethodPost, DailyHoroscope, userID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AskAstrologer задаёт вопрос астрологу
func (c *Client) AskAstrologer(ctx context.Context, userID string, req AskRequest) (*AskResponse, error) {
	var resp AskResponse
	if err := c.doJSON(ctx, http.MethodPost, AskAstrologer, userID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PersonalizedInsight получает персональный разбор по планетам и домам
func (c *Client) PersonalizedInsight(ctx context.Context, userID string) (*InsightResponse, error) {
	var resp InsightResponse
	if err := c.doJSON(ctx, http.MethodPost, PersonalizedInsight, userID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MatchCompatibility запрашивает отчёт о совместимости двух пользователей
func (c *Client) MatchCompatibility(ctx context.Context, req MatchRequest) (*MatchResponse, error) {
	var resp MatchResponse
	if err := c.doJSON(ctx, http.MethodPost, MatchCompatibility, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
