package astroApi

import "time"

type Config struct {
	BaseURL string        `envconfig:"BASE_URL" required:"true"`
	ApiKey  string        `envconfig:"API_KEY"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s"`
	SkipSSL string        `envconfig:"SKIP_SSL"` // Railway требует строки вместо bool
}

func (c *Config) ShouldSkipSSL() bool {
	return c.SkipSSL == "true" || c.SkipSSL == "1" || c.SkipSSL == "True"
}
