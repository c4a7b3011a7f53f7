package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionIDKey = "session_id"

// SessionCookie параметры cookie браузерной сессии
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Session выдаёт браузеру cookie с id сессии и кладёт id в gin.Context.
// Значение cookie, которое не является uuid, заменяется новым.
func Session(cookie SessionCookie, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookie.Name)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.New().String()
			log.Debug("issued new session", "session_id", sessionID)
		}

		// продлеваем cookie на каждом запросе
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     cookie.Name,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			Secure:   cookie.Secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(cookie.TTL / time.Second),
		})

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID id сессии, выставленный middleware Session
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
