package middlewares

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

const internalErrorPage = `<!DOCTYPE html><html><head><title>CelestAI</title></head>` +
	`<body><h1>Something went wrong</h1><p>Please try again later.</p></body></html>`

func RecoveryLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("PANIC CAUGHT",
					"panic", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"full_path", c.FullPath(),
					"client_ip", c.ClientIP(),
					"session_id", c.GetString(sessionIDKey),
				)

				// Стек отдельной записью, так читать проще
				log.Error("Stack trace:",
					"stack", string(debug.Stack()),
				)

				c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(internalErrorPage))
				c.Abort()
			}
		}()
		c.Next()
	}
}
