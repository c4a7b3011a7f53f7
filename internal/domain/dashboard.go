package domain

import "time"

// DashboardState состояние дашборда одной браузерной сессии.
// Хранится в session store между запросами, сбрасывается при загрузке нового пользователя.
type DashboardState struct {
	User *User `json:"user,omitempty"`

	// то, что пользователь ввёл в формы
	UserIDInput string `json:"user_id_input,omitempty"`
	PartnerID   string `json:"partner_id,omitempty"`
	Question    string `json:"question,omitempty"`

	// последние успешные результаты действий
	Chart          string `json:"chart,omitempty"`
	DailyHoroscope string `json:"daily_horoscope,omitempty"`
	Answer         string `json:"answer,omitempty"`
	Insight        string `json:"insight,omitempty"`
	Compatibility  string `json:"compatibility,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// HasUser true если пользователь загружен
func (s *DashboardState) HasUser() bool {
	return s != nil && s.User != nil
}

// ResetArtifacts сбрасывает все ранее показанные результаты
func (s *DashboardState) ResetArtifacts() {
	s.Chart = ""
	s.DailyHoroscope = ""
	s.Answer = ""
	s.Insight = ""
	s.Compatibility = ""
}

// DashboardView то, что рендерится на странице дашборда
type DashboardView struct {
	State   *DashboardState
	Loading bool
	Alert   string
}
