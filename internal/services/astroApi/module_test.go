package astroApi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	astroApiAdapter "github.com/admin/web-apps/celestai/internal/adapters/secondary/astroApi"
	"github.com/admin/web-apps/celestai/internal/domain"
	"github.com/admin/web-apps/celestai/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := astroApiAdapter.NewClient(&astroApiAdapter.Config{BaseURL: server.URL, Timeout: 5 * time.Second}, logger.NewDiscard())
	return New(client).(*Service)
}

func TestService_GetUserNotFound(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"User not found"}`))
	})

	_, err := svc.GetUser(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestService_GetUserServerErrorIsNotNotFound(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := svc.GetUser(context.Background(), "u1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestService_GetUserMapsFields(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","name":"John Doe","place":"India","time":"14:30","day":"14","month":"08","year":"1990","timezone":"+05:30"}`))
	})

	user, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &domain.User{
		ID: "u1", Name: "John Doe", Place: "India", Time: "14:30",
		Day: "14", Month: "08", Year: "1990", Timezone: "+05:30",
	}, user)
}

func TestService_GetUserWithoutIDIsError(t *testing.T) {
	for _, body := range []string{`null`, `{}`, `{"name":"John Doe"}`} {
		svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		user, err := svc.GetUser(context.Background(), "u1")
		assert.Error(t, err, body)
		assert.Nil(t, user, body)
		assert.False(t, errors.Is(err, domain.ErrUserNotFound), body)
	}
}

func TestService_RegisterUserEmptyID(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok"}`))
	})

	_, err := svc.RegisterUser(context.Background(), domain.BirthData{Name: "John"})
	assert.Error(t, err)
}

func TestService_DailyHoroscope(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/daily_horoscope/u1", r.URL.Path)
		w.Write([]byte(`{"daily_horoscope":"A calm day."}`))
	})

	text, err := svc.DailyHoroscope(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "A calm day.", text)
}
