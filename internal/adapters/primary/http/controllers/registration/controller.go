package registrationController

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/admin/web-apps/celestai/internal/adapters/primary/http/views"
	"github.com/admin/web-apps/celestai/internal/domain"
	registrationUsecase "github.com/admin/web-apps/celestai/internal/usecases/registration"
	"github.com/gin-gonic/gin"
)

type Controller struct {
	Registration *registrationUsecase.Service
	Log          *slog.Logger
}

func New(
	registration *registrationUsecase.Service,
	log *slog.Logger,
) *Controller {
	return &Controller{
		Registration: registration,
		Log:          log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/", c.form)
	router.POST("/register", c.register)
}

// form пустая форма регистрации
func (c *Controller) form(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, views.RegisterPage, views.RegisterData{})
}

// register отправляет данные о рождении в бэкенд и показывает выданный id
func (c *Controller) register(ctx *gin.Context) {
	var form domain.BirthData
	if err := ctx.ShouldBind(&form); err != nil {
		// пустые поля дальше ловит usecase, форму показываем с тем, что ввели
		c.Log.Debug("registration form is incomplete", "error", err)
	}

	userID, err := c.Registration.Register(ctx.Request.Context(), form)
	if err != nil {
		msg, _ := domain.AlertMessage(err)
		ctx.HTML(statusFor(err), views.RegisterPage, views.RegisterData{
			Form:  form,
			Alert: msg,
		})
		return
	}

	ctx.HTML(http.StatusOK, views.RegisterPage, views.RegisterData{
		UserID: userID,
		Alert:  registrationUsecase.SuccessAlert(userID),
	})
}

func statusFor(err error) int {
	if errors.Is(err, domain.ErrMissingInput) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
