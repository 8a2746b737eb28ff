// Package redis builds the go-redis client behind the KV store.
package redis

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config describes the Redis connection. Zero timeouts and pool size fall
// back to the go-redis defaults.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int

	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr returns host:port
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Options maps the config onto go-redis options
func (c Config) Options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

// New creates a Redis client. It does not connect; callers ping through
// kv.RedisStore before serving.
func New(cfg Config) *redis.Client {
	return redis.NewClient(cfg.Options())
}
