package domain

import "strings"

// BirthData данные о рождении, которые вводит пользователь при регистрации.
// Все поля - свободный текст, проверяется только непустота.
type BirthData struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Place    string `json:"place" form:"place" binding:"required"`
	Time     string `json:"time" form:"time" binding:"required"`         // HH:MM
	Day      string `json:"day" form:"day" binding:"required"`           // DD
	Month    string `json:"month" form:"month" binding:"required"`       // MM
	Year     string `json:"year" form:"year" binding:"required"`         // YYYY
	Timezone string `json:"timezone" form:"timezone" binding:"required"` // +05:30
}

// Trim убирает пробелы по краям всех полей
func (b BirthData) Trim() BirthData {
	return BirthData{
		Name:     strings.TrimSpace(b.Name),
		Place:    strings.TrimSpace(b.Place),
		Time:     strings.TrimSpace(b.Time),
		Day:      strings.TrimSpace(b.Day),
		Month:    strings.TrimSpace(b.Month),
		Year:     strings.TrimSpace(b.Year),
		Timezone: strings.TrimSpace(b.Timezone),
	}
}

// IsComplete проверяет, что заполнены все семь полей
func (b BirthData) IsComplete() bool {
	t := b.Trim()
	for _, v := range []string{t.Name, t.Place, t.Time, t.Day, t.Month, t.Year, t.Timezone} {
		if v == "" {
			return false
		}
	}
	return true
}

// User пользователь, как его возвращает бэкенд. Для UI неизменяем.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Place    string `json:"place"`
	Time     string `json:"time"`
	Day      string `json:"day"`
	Month    string `json:"month"`
	Year     string `json:"year"`
	Timezone string `json:"timezone"`
}

// BirthDetails строка вида "14/08/1990 at 14:30 (+05:30)"
func (u *User) BirthDetails() string {
	return u.Day + "/" + u.Month + "/" + u.Year + " at " + u.Time + " (" + u.Timezone + ")"
}
