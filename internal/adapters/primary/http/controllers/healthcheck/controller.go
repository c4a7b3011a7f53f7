package healthcheckController

import (
	"log/slog"
	"net/http"

	"github.com/admin/web-apps/celestai/internal/ports/repository"
	"github.com/gin-gonic/gin"
)

type HealthCheckController struct {
	sessions repository.ISessionRepo
	log      *slog.Logger
}

func New(sessions repository.ISessionRepo, log *slog.Logger) *HealthCheckController {
	return &HealthCheckController{
		sessions: sessions,
		log:      log,
	}
}

func (c *HealthCheckController) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "celestai-web",
	})
}

// ready проверка готовности (пингует хранилище сессий)
func (c *HealthCheckController) ready(ctx *gin.Context) {
	if err := c.sessions.Ping(ctx.Request.Context()); err != nil {
		c.log.Error("Session store not ready", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  "session store unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
