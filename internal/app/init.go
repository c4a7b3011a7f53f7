package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	server "github.com/admin/web-apps/celestai/internal/adapters/primary/http"
	dashboardController "github.com/admin/web-apps/celestai/internal/adapters/primary/http/controllers/dashboard"
	healthcheckController "github.com/admin/web-apps/celestai/internal/adapters/primary/http/controllers/healthcheck"
	registrationController "github.com/admin/web-apps/celestai/internal/adapters/primary/http/controllers/registration"
	"github.com/admin/web-apps/celestai/internal/adapters/primary/http/middlewares"
	"github.com/admin/web-apps/celestai/internal/adapters/primary/http/views"
	astroApiAdapter "github.com/admin/web-apps/celestai/internal/adapters/secondary/astroApi"
	"github.com/admin/web-apps/celestai/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/web-apps/celestai/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/web-apps/celestai/internal/adapters/secondary/storage/redis"
	"github.com/admin/web-apps/celestai/internal/ports/repository"
	"github.com/admin/web-apps/celestai/internal/ports/service"
	sessionRepo "github.com/admin/web-apps/celestai/internal/repository/session"
	astroApiService "github.com/admin/web-apps/celestai/internal/services/astroApi"
	jobScheduler "github.com/admin/web-apps/celestai/internal/services/jobs"
	dashboardUsecase "github.com/admin/web-apps/celestai/internal/usecases/dashboard"
	registrationUsecase "github.com/admin/web-apps/celestai/internal/usecases/registration"
)

type Dependencies struct {
	HTTPServer   *http.Server
	Sessions     repository.ISessionRepo
	JobScheduler *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	if a.Cfg.AstroAPI == nil || a.Cfg.AstroAPI.BaseURL == "" {
		return nil, fmt.Errorf("astro API base url is required")
	}

	sessions, err := a.initSessionStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init session store: %w", err)
	}

	astroAPI := a.initAstroAPI()

	httpServer, err := a.initHTTP(astroAPI, sessions)
	if err != nil {
		_ = sessions.Close()
		return nil, fmt.Errorf("failed to init http: %w", err)
	}

	return &Dependencies{
		HTTPServer:   httpServer,
		Sessions:     sessions,
		JobScheduler: a.initJobScheduler(sessions),
	}, nil
}

// Повторы упавшей чистки сессий
var sweepRetries = []time.Duration{30 * time.Second, 2 * time.Minute}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(sessions repository.ISessionRepo) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, sweepRetries...)

	// Redis чистит ключи сам, джоба нужна только memory и postgres
	if sweeper, ok := sessions.(repository.ISessionSweeper); ok {
		scheduler.Register(jobScheduler.NewSessionSweeper(sweeper, a.Cfg.Session.SweepInterval, a.Log))
		a.Log.Info("session sweeper job registered", "interval", a.Cfg.Session.SweepInterval)
	}

	return scheduler
}

// initSessionStore выбирает хранилище сессий дашборда по конфигу
func (a *App) initSessionStore(ctx context.Context) (repository.ISessionRepo, error) {
	cfg := a.Cfg.Session

	switch cfg.Store {
	case SessionStoreRedis:
		if a.Cfg.Redis == nil {
			return nil, fmt.Errorf("redis configuration is missing")
		}
		client, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.Log.Info("redis session store connected", "addr", a.Cfg.Redis.Addr())
		return redisAdapter.NewSessionStore(client, a.Cfg.Redis.KeyPrefix, cfg.TTL), nil

	case SessionStorePostgres:
		return a.initPostgres(ctx)

	default:
		a.Log.Warn("in-memory session store enabled, sessions are lost on restart")
		return inmemory.NewSessionStore(cfg.TTL), nil
	}
}

func (a *App) initPostgres(ctx context.Context) (repository.ISessionRepo, error) {
	if a.Cfg.Postgres == nil {
		return nil, fmt.Errorf("postgres configuration is missing")
	}

	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	persistenceLayer := pg.NewDB(db)
	return sessionRepo.New(persistenceLayer, a.Cfg.Session.TTL, a.Log), nil
}

// initAstroAPI клиент бэкенда CelestAI
func (a *App) initAstroAPI() service.IAstroAPIService {
	client := astroApiAdapter.NewClient(a.Cfg.AstroAPI, a.Log)
	a.Log.Info("astro API configured",
		"base_url", a.Cfg.AstroAPI.BaseURL,
		"timeout", a.Cfg.AstroAPI.Timeout,
	)
	return astroApiService.New(client)
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	astroAPI service.IAstroAPIService,
	sessions repository.ISessionRepo,
) (*http.Server, error) {
	templates, err := views.Parse()
	if err != nil {
		return nil, err
	}

	registration := registrationUsecase.New(astroAPI, a.Log)
	dashboard := dashboardUsecase.New(astroAPI, sessions, a.Cfg.Session.LoadingTTL, a.Log)

	cookie := middlewares.SessionCookie{
		Name:   a.Cfg.Session.CookieName,
		TTL:    a.Cfg.Session.TTL,
		Secure: a.Cfg.Session.CookieSecure,
	}

	controllers := []server.Controller{
		healthcheckController.New(sessions, a.Log),
		registrationController.New(registration, a.Log),
		dashboardController.New(dashboard, cookie, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, templates, controllers...), nil
}
