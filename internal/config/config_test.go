package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"OUTPUT_DIR", "GENERATOR_SEED", "EXPORT_XLSX", "S3_ENDPOINT", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.OutputDir != "." {
		t.Errorf("expected default output dir, got %q", cfg.OutputDir)
	}
	if cfg.Seed != 0 {
		t.Errorf("expected seed 0, got %d", cfg.Seed)
	}
	if cfg.ExportXLSX {
		t.Error("xlsx export should be off by default")
	}
	if cfg.S3Enabled() || cfg.RedisEnabled() {
		t.Error("optional sinks should be disabled by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/tmp/fixtures")
	t.Setenv("GENERATOR_SEED", "42")
	t.Setenv("EXPORT_XLSX", "true")
	t.Setenv("S3_ENDPOINT", "localhost:9000")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()
	if cfg.OutputDir != "/tmp/fixtures" || cfg.Seed != 42 || !cfg.ExportXLSX {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.S3Enabled() || !cfg.RedisEnabled() || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected sink config %+v", cfg)
	}
}
