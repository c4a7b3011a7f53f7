package dashboardController

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/admin/web-apps/celestai/internal/adapters/primary/http/middlewares"
	"github.com/admin/web-apps/celestai/internal/adapters/primary/http/views"
	"github.com/admin/web-apps/celestai/internal/domain"
	dashboardUsecase "github.com/admin/web-apps/celestai/internal/usecases/dashboard"
	"github.com/gin-gonic/gin"
)

type Controller struct {
	Dashboard *dashboardUsecase.Service
	Cookie    middlewares.SessionCookie
	Log       *slog.Logger
}

func New(
	dashboard *dashboardUsecase.Service,
	cookie middlewares.SessionCookie,
	log *slog.Logger,
) *Controller {
	return &Controller{
		Dashboard: dashboard,
		Cookie:    cookie,
		Log:       log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	dashboard := router.Group("/dashboard", middlewares.Session(c.Cookie, c.Log))
	{
		dashboard.GET("", c.view)
		dashboard.POST("/user", c.fetchUser)
		dashboard.POST("/chart", c.generateChart)
		dashboard.POST("/daily", c.dailyHoroscope)
		dashboard.POST("/ask", c.askAstrologer)
		dashboard.POST("/insights", c.personalizedInsight)
		dashboard.POST("/compatibility", c.checkCompatibility)
		dashboard.POST("/reset", c.reset)
	}
}

// Формы действий
type (
	fetchUserForm struct {
		UserID string `form:"user_id"`
	}
	askForm struct {
		Question string `form:"question"`
	}
	compatibilityForm struct {
		PartnerID string `form:"partner_id"`
	}
)

func (c *Controller) view(ctx *gin.Context) {
	view := c.Dashboard.View(ctx.Request.Context(), middlewares.SessionID(ctx))
	ctx.HTML(http.StatusOK, views.DashboardPage, views.DashboardData{DashboardView: view})
}

func (c *Controller) fetchUser(ctx *gin.Context) {
	var form fetchUserForm
	if !c.bind(ctx, &form) {
		return
	}
	view, err := c.Dashboard.FetchUser(ctx.Request.Context(), middlewares.SessionID(ctx), form.UserID)
	c.render(ctx, view, err)
}

func (c *Controller) generateChart(ctx *gin.Context) {
	view, err := c.Dashboard.GenerateChart(ctx.Request.Context(), middlewares.SessionID(ctx))
	c.render(ctx, view, err)
}

func (c *Controller) dailyHoroscope(ctx *gin.Context) {
	view, err := c.Dashboard.DailyHoroscope(ctx.Request.Context(), middlewares.SessionID(ctx))
	c.render(ctx, view, err)
}

func (c *Controller) askAstrologer(ctx *gin.Context) {
	var form askForm
	if !c.bind(ctx, &form) {
		return
	}
	view, err := c.Dashboard.AskAstrologer(ctx.Request.Context(), middlewares.SessionID(ctx), form.Question)
	c.render(ctx, view, err)
}

func (c *Controller) personalizedInsight(ctx *gin.Context) {
	view, err := c.Dashboard.PersonalizedInsight(ctx.Request.Context(), middlewares.SessionID(ctx))
	c.render(ctx, view, err)
}

func (c *Controller) checkCompatibility(ctx *gin.Context) {
	var form compatibilityForm
	if !c.bind(ctx, &form) {
		return
	}
	view, err := c.Dashboard.CheckCompatibility(ctx.Request.Context(), middlewares.SessionID(ctx), form.PartnerID)
	c.render(ctx, view, err)
}

func (c *Controller) reset(ctx *gin.Context) {
	view, err := c.Dashboard.Reset(ctx.Request.Context(), middlewares.SessionID(ctx))
	if err != nil && !errors.Is(err, domain.ErrSessionBusy) {
		c.Log.Error("failed to reset dashboard session", "error", err)
		ctx.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.render(ctx, view, err)
}

func (c *Controller) bind(ctx *gin.Context, form any) bool {
	if err := ctx.ShouldBind(form); err != nil {
		c.Log.Warn("failed to bind dashboard form", "error", err, "path", ctx.Request.URL.Path)
		view := c.Dashboard.View(ctx.Request.Context(), middlewares.SessionID(ctx))
		ctx.HTML(http.StatusBadRequest, views.DashboardPage, views.DashboardData{DashboardView: view})
		return false
	}
	return true
}

// render страница дашборда после действия. Алерт есть только в этом ответе,
// в сессии он не хранится.
func (c *Controller) render(ctx *gin.Context, view *domain.DashboardView, err error) {
	ctx.HTML(statusFor(err), views.DashboardPage, views.DashboardData{DashboardView: view})
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
