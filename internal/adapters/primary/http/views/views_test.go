package views

import (
	"bytes"
	"strings"
	"testing"

	"github.com/admin/web-apps/celestai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, name string, data any) string {
	t.Helper()
	tmpl, err := Parse()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func loadedState() *domain.DashboardState {
	return &domain.DashboardState{
		User: &domain.User{
			ID: "u1", Name: "John Doe", Place: "India", Time: "14:30",
			Day: "14", Month: "08", Year: "1990", Timezone: "+05:30",
		},
		UserIDInput: "u1",
	}
}

func TestRegisterPage_Placeholders(t *testing.T) {
	html := render(t, RegisterPage, RegisterData{})

	for _, placeholder := range []string{
		"Name: John Doe",
		"Country: India",
		"Time of birth: 14:30",
		"Day of birth: 14",
		"Month of birth: 08",
		"Year of birth: 1990",
		"Timezone (UTC): +05:30",
	} {
		assert.Contains(t, html, placeholder)
	}
	assert.NotContains(t, html, "Your ID:")
	assert.NotContains(t, html, `role="alert"`)
}

func TestRegisterPage_UserID(t *testing.T) {
	html := render(t, RegisterPage, RegisterData{UserID: "u1", Alert: "User Registered! ID: u1"})

	assert.Contains(t, html, "Your ID: u1")
	assert.Equal(t, 1, strings.Count(html, `role="alert"`))
}

func TestDashboardPage_NoUser(t *testing.T) {
	html := render(t, DashboardPage, DashboardData{&domain.DashboardView{State: &domain.DashboardState{}}})

	assert.Contains(t, html, "Fetch User")
	assert.NotContains(t, html, "Generate Chart")
	assert.NotContains(t, html, "disabled>")
}

func TestDashboardPage_ChartIsNotEscaped(t *testing.T) {
	state := loadedState()
	state.Chart = `<svg width="400"><circle r="10"/></svg>`

	html := render(t, DashboardPage, DashboardData{&domain.DashboardView{State: state}})

	assert.Contains(t, html, `<svg width="400"><circle r="10"/></svg>`)
	// html/template экранирует "+" в тексте как &#43;
	assert.Contains(t, html, "14/08/1990 at 14:30 (&#43;05:30)")
}

func TestDashboardPage_TextIsEscaped(t *testing.T) {
	state := loadedState()
	state.Answer = "<b>yes</b>"

	html := render(t, DashboardPage, DashboardData{&domain.DashboardView{State: state}})

	assert.NotContains(t, html, "<b>yes</b>")
	assert.Contains(t, html, "&lt;b&gt;yes&lt;/b&gt;")
}

func TestDashboardPage_LoadingDisablesActions(t *testing.T) {
	html := render(t, DashboardPage, DashboardData{&domain.DashboardView{State: loadedState(), Loading: true}})

	assert.Equal(t, 6, strings.Count(html, "disabled>"))
	assert.Contains(t, html, `aria-busy="true"`)
}

func TestDashboardPage_AlertScriptIsEscaped(t *testing.T) {
	html := render(t, DashboardPage, DashboardData{&domain.DashboardView{
		State: &domain.DashboardState{},
		Alert: `</script><script>evil()</script>`,
	}})

	assert.NotContains(t, html, "<script>evil()")
	assert.Equal(t, 1, strings.Count(html, `role="alert"`))
}
