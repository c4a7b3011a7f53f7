package app

import (
	"fmt"
	"time"

	server "github.com/admin/web-apps/celestai/internal/adapters/primary/http"
	astroApi "github.com/admin/web-apps/celestai/internal/adapters/secondary/astroApi"
	"github.com/admin/web-apps/celestai/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/web-apps/celestai/internal/adapters/secondary/storage/redis"
	"github.com/admin/web-apps/celestai/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Log      *logger.Config       `envconfig:"LOG"`
	Server   *server.Config       `envconfig:"APISERVER"`
	AstroAPI *astroApi.Config     `envconfig:"ASTRO_API"`
	Session  *SessionConfig       `envconfig:"SESSION"`
	Redis    *redisAdapter.Config `envconfig:"REDIS"`
	Postgres *pg.Config           `envconfig:"POSTGRES"`
}

// Хранилища состояния дашборда
const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

// SessionConfig конфигурация браузерных сессий дашборда
type SessionConfig struct {
	Store        string        `envconfig:"STORE" default:"memory"` // memory | redis | postgres
	TTL          time.Duration `envconfig:"TTL" default:"24h"`
	CookieName   string        `envconfig:"COOKIE_NAME" default:"celestai_session"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`
	// LoadingTTL сколько живёт флаг loading, если запрос так и не завершился
	LoadingTTL time.Duration `envconfig:"LOADING_TTL" default:"2m"`
	// SweepInterval как часто чистить протухшие сессии (memory и postgres)
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"10m"`
}

func (c *SessionConfig) Validate() error {
	switch c.Store {
	case SessionStoreMemory, SessionStoreRedis, SessionStorePostgres:
	default:
		return fmt.Errorf("invalid session store: %q", c.Store)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	if c.LoadingTTL <= 0 {
		return fmt.Errorf("loading ttl must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive")
	}
	if c.CookieName == "" {
		return fmt.Errorf("cookie name is required")
	}
	return nil
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Session.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}

	return cfg, nil
}
