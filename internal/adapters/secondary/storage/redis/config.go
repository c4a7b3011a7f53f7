package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            string        `envconfig:"PORT" default:"6379"`
	Username        string        `envconfig:"USERNAME"`
	Password        string        `envconfig:"PASSWORD"`
	Database        int           `envconfig:"DATABASE" default:"0"`
	KeyPrefix       string        `envconfig:"KEY_PREFIX" default:"celestai:dashboard"`
	MaxRetries      int           `envconfig:"MAX_RETRIES" default:"3"`
	DialTimeout     time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
	PoolSize        int           `envconfig:"POOL_SIZE" default:"10"`
	MinIdleConns    int           `envconfig:"MIN_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"CONN_MAX_IDLE_TIME" default:"5m"`
}

// Addr адрес сервера host:port
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewConnection создаёт новое подключение к Redis и проверяет его
func (c *Config) NewConnection() (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            c.Addr(),
		Username:        c.Username,
		Password:        c.Password,
		DB:              c.Database,
		MaxRetries:      c.MaxRetries,
		DialTimeout:     c.DialTimeout,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		PoolSize:        c.PoolSize,
		MinIdleConns:    c.MinIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		ConnMaxIdleTime: c.ConnMaxIdleTime,
	})

	dialTimeout := c.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}
