// Package views HTML-страницы регистрации и дашборда.
package views

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/admin/web-apps/celestai/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

// Имена страниц для gin.Context.HTML
const (
	RegisterPage  = "register.html"
	DashboardPage = "dashboard.html"
)

// RegisterData данные страницы регистрации
type RegisterData struct {
	Form   domain.BirthData
	UserID string
	Alert  string
}

// DashboardData данные страницы дашборда
type DashboardData struct {
	*domain.DashboardView
}

// Parse разбирает все встроенные шаблоны
func Parse() (*template.Template, error) {
	tmpl, err := template.New("celestai").
		Funcs(template.FuncMap{"markup": markup}).
		ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// markup разметка карты от бэкенда вставляется без экранирования
func markup(s string) template.HTML {
	return template.HTML(s)
}
