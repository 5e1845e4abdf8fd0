package config

import (
	"testing"
	"time"
)

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}
	if cfg.AppPort != 8080 {
		t.Errorf("expected default AppPort 8080, got %d", cfg.AppPort)
	}
	if cfg.StoreBackend != "postgres" || cfg.StoreFallbackMemory {
		t.Errorf("unexpected store defaults: %s fallback=%v", cfg.StoreBackend, cfg.StoreFallbackMemory)
	}
	if cfg.ExportRenderTimeout != 60*time.Second {
		t.Errorf("expected render timeout 60s, got %s", cfg.ExportRenderTimeout)
	}
	if cfg.ArtifactBackend != "none" {
		t.Errorf("expected artifact backend none, got %s", cfg.ArtifactBackend)
	}
	if cfg.IsProduction() {
		t.Error("development config reports production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("EXPORT_LAUNCH_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("expected memory backend, got %s", cfg.StoreBackend)
	}
	if cfg.ExportLaunchTimeout != 5*time.Second {
		t.Errorf("expected launch timeout 5s, got %s", cfg.ExportLaunchTimeout)
	}
	origins := cfg.GetCORSAllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", origins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "unknown store", env: map[string]string{"STORE_BACKEND": "sqlite"}, wantErr: true},
		{name: "unknown artifact backend", env: map[string]string{"ARTIFACT_BACKEND": "ftp"}, wantErr: true},
		{name: "s3 without endpoint", env: map[string]string{"ARTIFACT_BACKEND": "s3"}, wantErr: true},
		{name: "s3 complete", env: map[string]string{"ARTIFACT_BACKEND": "s3", "S3_ENDPOINT": "localhost:9000"}},
		{name: "zero rate", env: map[string]string{"EXPORT_RATE_PER_MINUTE": "0"}, wantErr: true},
		{name: "filesystem", env: map[string]string{"ARTIFACT_BACKEND": "fs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "secret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
