package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/admin/web-apps/celestai/internal/domain"
	"github.com/admin/web-apps/celestai/internal/pkg/astrofake"
	"github.com/admin/web-apps/celestai/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullBirthData() domain.BirthData {
	return domain.BirthData{
		Name: " John Doe ", Place: "India", Time: "14:30",
		Day: "14", Month: "08", Year: "1990", Timezone: "+05:30",
	}
}

func TestRegister_Success(t *testing.T) {
	var sent domain.BirthData
	api := &astrofake.API{
		RegisterUserFunc: func(ctx context.Context, birth domain.BirthData) (string, error) {
			sent = birth
			return "u1", nil
		},
	}
	svc := New(api, logger.NewDiscard())

	userID, err := svc.Register(context.Background(), fullBirthData())
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "John Doe", sent.Name)
	assert.Equal(t, 1, api.CallCount())
}

func TestRegister_MissingFieldNoBackendCall(t *testing.T) {
	api := &astrofake.API{}
	svc := New(api, logger.NewDiscard())

	birth := fullBirthData()
	birth.Place = ""

	_, err := svc.Register(context.Background(), birth)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingInput))

	msg, ok := domain.AlertMessage(err)
	require.True(t, ok)
	assert.Equal(t, "All fields are required", msg)
	assert.Equal(t, 0, api.CallCount())
}

func TestRegister_BackendFailureIsGenericAlert(t *testing.T) {
	api := &astrofake.API{
		RegisterUserFunc: func(ctx context.Context, birth domain.BirthData) (string, error) {
			return "", errors.New("astro API error [status=500]")
		},
	}
	svc := New(api, logger.NewDiscard())

	_, err := svc.Register(context.Background(), fullBirthData())
	msg, ok := domain.AlertMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Registration failed", msg)
}

func TestSuccessAlert(t *testing.T) {
	assert.Equal(t, "User Registered! ID: u1", SuccessAlert("u1"))
}
