package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage backend names
const (
	BackendRedis    = "redis"
	BackendMemory   = "memory"
	BackendKV       = "kv"
	BackendMySQL    = "mysql"
	BackendNone     = "none"
	BackendSnapshot = "snapshot"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Claim    ClaimConfig
	X        XConfig
	Holders  HoldersConfig
	Tracing  TracingConfig
}

type ServerConfig struct {
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	Environment  string        `envconfig:"ENVIRONMENT" default:"development"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig selects a backend per store
type StorageConfig struct {
	KVBackend      string        `envconfig:"KV_BACKEND" default:"redis"`
	LedgerBackend  string        `envconfig:"LEDGER_BACKEND" default:"kv"`
	HoldersBackend string        `envconfig:"HOLDERS_BACKEND" default:"none"`
	SweepInterval  time.Duration `envconfig:"MEMORY_SWEEP_INTERVAL" default:"1m"`
}

// NeedsDatabase reports whether any component is MySQL-backed
func (s StorageConfig) NeedsDatabase() bool {
	return s.LedgerBackend == BackendMySQL || s.HoldersBackend == BackendMySQL
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"3306"`
	User            string        `envconfig:"DB_USER" default:"app"`
	Password        string        `envconfig:"DB_PASSWORD" default:"apppassword"`
	Name            string        `envconfig:"DB_NAME" default:"rally_claim"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

type RedisConfig struct {
	Host         string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port         int           `envconfig:"REDIS_PORT" default:"6379"`
	Password     string        `envconfig:"REDIS_PASSWORD" default:""`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

type ClaimConfig struct {
	NonceTTL time.Duration `envconfig:"NONCE_TTL" default:"5m"`
	// AllowEVM routes 0x wallets to the EIP-191 verifier; false accepts Solana signatures only
	AllowEVM bool `envconfig:"SIGNATURE_ALLOW_EVM" default:"true"`
}

// XConfig holds the X (Twitter) OAuth 1.0a app credentials
type XConfig struct {
	ConsumerKey     string        `envconfig:"X_CONSUMER_KEY" default:""`
	ConsumerSecret  string        `envconfig:"X_CONSUMER_SECRET" default:""`
	APIBaseURL      string        `envconfig:"X_API_BASE_URL" default:"https://api.twitter.com"`
	CallbackURL     string        `envconfig:"X_CALLBACK_URL" default:""`
	AppURL          string        `envconfig:"APP_URL" default:""`
	RequestTokenTTL time.Duration `envconfig:"X_REQUEST_TOKEN_TTL" default:"10m"`
	Timeout         time.Duration `envconfig:"X_HTTP_TIMEOUT" default:"10s"`
}

type HoldersConfig struct {
	SnapshotPath string `envconfig:"HOLDERS_SNAPSHOT_PATH" default:"holders.json"`
}

type TracingConfig struct {
	Enabled      bool    `envconfig:"TRACING_ENABLED" default:"false"`
	ServiceName  string  `envconfig:"TRACING_SERVICE_NAME" default:"rally-claim"`
	SampleRatio  float64 `envconfig:"TRACING_SAMPLE_RATIO" default:"1"`
	OTLPEndpoint string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:""`
	OTLPInsecure bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"false"`
}

// Load reads an optional .env file, then the process environment
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown backend names
func (c *Config) Validate() error {
	checks := []struct {
		name    string
		value   string
		allowed []string
	}{
		{"KV_BACKEND", c.Storage.KVBackend, []string{BackendRedis, BackendMemory}},
		{"LEDGER_BACKEND", c.Storage.LedgerBackend, []string{BackendKV, BackendMySQL}},
		{"HOLDERS_BACKEND", c.Storage.HoldersBackend, []string{BackendNone, BackendSnapshot, BackendMySQL}},
	}
	for _, check := range checks {
		if !slices.Contains(check.allowed, check.value) {
			return fmt.Errorf("invalid %s %q: want one of %s", check.name, check.value, strings.Join(check.allowed, ", "))
		}
	}
	return nil
}
