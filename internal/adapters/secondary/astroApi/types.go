package astroApi

import "fmt"

// RegisterUserRequest тело POST /register_user
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Place    string `json:"place"`
	Time     string `json:"time"`
	Day      string `json:"day"`
	Month    string `json:"month"`
	Year     string `json:"year"`
	Timezone string `json:"timezone"`
}

// RegisterUserResponse ответ POST /register_user
type RegisterUserResponse struct {
	Message string `json:"message,omitempty"`
	UserID  string `json:"user_id"`
}

// UserResponse ответ GET /get_user/{id}
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Place    string `json:"place"`
	Time     string `json:"time"`
	Day      string `json:"day"`
	Month    string `json:"month"`
	Year     string `json:"year"`
	Timezone string `json:"timezone"`
}

type DailyHoroscopeResponse struct {
	DailyHoroscope string `json:"daily_horoscope"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type InsightResponse struct {
	PersonalizedInsight string `json:"personalized_insight"`
}

type MatchRequest struct {
	User1ID string `json:"user1_id"`
	User2ID string `json:"user2_id"`
}

// MatchResponse ответ POST /match_compatibility.
// MatchReport - строка, внутри которой ещё один JSON, его разбирает usecase.
type MatchResponse struct {
	MatchReport string `json:"match_report"`
}

// StatusError бэкенд ответил не 2xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("astro API error [status=%d]: %s", e.StatusCode, e.Body)
}
