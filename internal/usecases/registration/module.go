package registration

import (
	"context"
	"log/slog"

	"github.com/admin/web-apps/celestai/internal/domain"
	"github.com/admin/web-apps/celestai/internal/ports/service"
)

const (
	alertMissingFields = "All fields are required"
	alertFailed        = "Registration failed"
)

// Service регистрация пользователя по данным о рождении
type Service struct {
	AstroAPI service.IAstroAPIService
	Log      *slog.Logger
}

func New(astroAPI service.IAstroAPIService, log *slog.Logger) *Service {
	return &Service{
		AstroAPI: astroAPI,
		Log:      log,
	}
}

// Register проверяет, что все поля заполнены, и один раз отправляет их в бэкенд.
// Любая ошибка возвращается как *domain.AlertError с общим сообщением.
func (s *Service) Register(ctx context.Context, birth domain.BirthData) (string, error) {
	if !birth.IsComplete() {
		return "", domain.NewAlert(alertMissingFields, domain.ErrMissingInput)
	}

	userID, err := s.AstroAPI.RegisterUser(ctx, birth.Trim())
	if err != nil {
		s.Log.Warn("failed to register user",
			"error", err,
		)
		return "", domain.NewAlert(alertFailed, err)
	}

	s.Log.Info("user registered", "user_id", userID)
	return userID, nil
}

// SuccessAlert сообщение, которое показывается после успешной регистрации
func SuccessAlert(userID string) string {
	return "User Registered! ID: " + userID
}
