package server

import (
	"html/template"
	"net"
	"net/http"
	"time"

	"log/slog"

	"github.com/admin/web-apps/celestai/internal/adapters/primary/http/middlewares"
	"github.com/gin-gonic/gin"
)

type Config struct {
	Host                    string        `envconfig:"HOST"`
	Port                    string        `envconfig:"PORT" default:"8080"`
	WriteTimeout            time.Duration `envconfig:"WRITE_TIMEOUT" default:"60s"`
	ReadTimeout             time.Duration `envconfig:"READ_TIMEOUT" default:"5s"`
	ReadHeaderTimeout       time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"3s"`
	IdleTimeout             time.Duration `envconfig:"IDLE_TIMEOUT" default:"15s"`
	EnableLoggingMiddleware bool          `envconfig:"ENABLE_LOGGING_MIDDLEWARE" default:"false"`
}

type Controller interface {
	RegisterRoutes(router *gin.Engine)
}

func NewHTTPServer(
	cfg *Config,
	logger *slog.Logger,
	templates *template.Template,
	controllers ...Controller,
) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	server := &http.Server{
		Handler:           NewRouter(cfg, logger, templates, controllers...),
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return server
}

// NewRouter собирает gin engine: middlewares, шаблоны страниц и маршруты контроллеров.
// Режим gin не трогает, тесты выставляют его сами.
func NewRouter(
	cfg *Config,
	logger *slog.Logger,
	templates *template.Template,
	controllers ...Controller,
) *gin.Engine {
	router := gin.New()
	router.Use(middlewares.RecoveryLogger(logger))
	if cfg.EnableLoggingMiddleware {
		router.Use(middlewares.RequestLogger(logger))
	}

	if templates != nil {
		router.SetHTMLTemplate(templates)
	}

	// Регистрируем маршруты всех контроллеров
	for _, controller := range controllers {
		controller.RegisterRoutes(router)
	}

	return router
}
