package config

import (
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.BackendMode != "local" {
		t.Fatalf("expected local backend by default, got %q", cfg.BackendMode)
	}
	if cfg.Directory.PageSize != 12 {
		t.Fatalf("expected page size 12, got %d", cfg.Directory.PageSize)
	}
	if cfg.SignIn.Window != 15*time.Minute {
		t.Fatalf("expected 15m sign-in window, got %v", cfg.SignIn.Window)
	}
	if cfg.Mongo.URI != "" || cfg.Redis.Addr != "" {
		t.Fatalf("expected stores unconfigured by default")
	}
	if cfg.Federated.Key != "" || cfg.Federated.Issuer != "https://accounts.google.com" {
		t.Fatalf("unexpected federated defaults: %+v", cfg.Federated)
	}
	if cfg.IsProduction() {
		t.Fatalf("default env must not be production")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(envconfig.MapLookuper(map[string]string{
		"BACKEND_MODE":    "remote",
		"MONGO_URI":       "mongodb://db:27017",
		"INQUIRY_WORKERS": "8",
		"SIGNIN_WINDOW":   "1m",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BackendMode != "remote" || cfg.Mongo.URI != "mongodb://db:27017" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Inquiry.Workers != 8 || cfg.SignIn.Window != time.Minute {
		t.Fatalf("unexpected values: workers=%d window=%v", cfg.Inquiry.Workers, cfg.SignIn.Window)
	}
}

func TestLoadFrom_ProductionRequiresSecret(t *testing.T) {
	_, err := LoadFrom(envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if err == nil {
		t.Fatalf("expected error without JWT_SECRET in production")
	}

	cfg, err := LoadFrom(envconfig.MapLookuper(map[string]string{"ENV": "production", "JWT_SECRET": "s3cret"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
}
