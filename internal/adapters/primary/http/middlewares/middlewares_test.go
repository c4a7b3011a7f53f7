package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/admin/web-apps/celestai/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testCookie = SessionCookie{Name: "celestai_session", TTL: time.Hour}

func newSessionRouter() *gin.Engine {
	r := gin.New()
	r.Use(Session(testCookie, logger.NewDiscard()))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})
	return r
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie.Name {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSession_IssuesCookie(t *testing.T) {
	r := newSessionRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookieFrom(t, rec)
	assert.NoError(t, uuid.Validate(cookie.Value))
	assert.Equal(t, cookie.Value, rec.Body.String())
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestSession_KeepsValidCookie(t *testing.T) {
	r := newSessionRouter()
	existing := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: existing})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, existing, rec.Body.String())
	assert.Equal(t, existing, sessionCookieFrom(t, rec).Value)
}

func TestSession_ReplacesForgedCookie(t *testing.T) {
	r := newSessionRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: "lock:someone-else"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.NotEqual(t, "lock:someone-else", rec.Body.String())
	assert.NoError(t, uuid.Validate(rec.Body.String()))
}

func TestRecoveryLogger(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryLogger(logger.NewDiscard()))
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(logger.NewDiscard()))
	r.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
