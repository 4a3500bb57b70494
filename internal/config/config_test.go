package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "estately_test")
	os.Setenv("AUTH_ISSUER", "https://auth.example.test")
	os.Setenv("AUTH_CLIENT_ID", "estately-web")
	os.Setenv("CORS_ORIGIN", "http://localhost:3000, http://localhost:5173")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.Auth.Issuer == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Server.Port == "" {
		t.Fatalf("expected default server port to be set")
	}
}
