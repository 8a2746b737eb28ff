package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr = %s", cfg.Server.Addr())
	}
	if cfg.Storage.KVBackend != BackendRedis || cfg.Storage.LedgerBackend != BackendKV || cfg.Storage.HoldersBackend != BackendNone {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Storage.NeedsDatabase() {
		t.Error("default config should not need MySQL")
	}
	if cfg.Claim.NonceTTL != 5*time.Minute || !cfg.Claim.AllowEVM {
		t.Errorf("claim = %+v", cfg.Claim)
	}
	if cfg.Redis.PoolSize != 10 || cfg.Redis.DialTimeout != 5*time.Second || cfg.Redis.ReadTimeout != 3*time.Second {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.X.RequestTokenTTL != 10*time.Minute || cfg.X.APIBaseURL != "https://api.twitter.com" {
		t.Errorf("x = %+v", cfg.X)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "KV_BACKEND=memory\nLEDGER_BACKEND=mysql\nX_CONSUMER_KEY=ck\nAPP_URL=https://rally.test\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"KV_BACKEND", "LEDGER_BACKEND", "X_CONSUMER_KEY", "APP_URL"} {
		k := k
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.KVBackend != BackendMemory || !cfg.Storage.NeedsDatabase() {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.X.ConsumerKey != "ck" || cfg.X.AppURL != "https://rally.test" {
		t.Errorf("x = %+v", cfg.X)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	_ = os.WriteFile(path, []byte("SERVER_PORT=9000\n"), 0o600)
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9100 {
		t.Fatalf("port = %d, want 9100", cfg.Server.Port)
	}
}

func TestInvalidBackend(t *testing.T) {
	t.Setenv("KV_BACKEND", "etcd")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Fatal("unknown backend accepted")
	}
}

func TestTracingFromEnv(t *testing.T) {
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.OTLPEndpoint != "collector:4318" || !cfg.Tracing.OTLPInsecure {
		t.Fatalf("tracing = %+v", cfg.Tracing)
	}
	if cfg.Tracing.ServiceName != "rally-claim" || cfg.Tracing.SampleRatio != 1 {
		t.Fatalf("tracing defaults = %+v", cfg.Tracing)
	}
}
