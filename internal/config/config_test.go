package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.APIBaseURL != "http://localhost:56387/" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != "30s" {
		t.Errorf("HTTPTimeout = %q, want %q", cfg.HTTPTimeout, "30s")
	}
	if cfg.DataDir != ".serviflex" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, ".serviflex")
	}
	if cfg.AppVersion != "1.0" {
		t.Errorf("AppVersion = %q, want %q", cfg.AppVersion, "1.0")
	}
	if cfg.AppPlatform != "terminal" {
		t.Errorf("AppPlatform = %q, want %q", cfg.AppPlatform, "terminal")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("API_BASE_URL", "https://api.serviflex.example")
	os.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.serviflex.example/" {
		t.Errorf("APIBaseURL = %q, want trailing slash appended", cfg.APIBaseURL)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", cfg.Timeout())
	}
}

func TestTimeout_InvalidFallsBack(t *testing.T) {
	cfg := &Config{HTTPTimeout: "not-a-duration"}
	if got := cfg.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", got)
	}

	cfg = &Config{HTTPTimeout: "-2s"}
	if got := cfg.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout() with negative = %v, want 30s", got)
	}
}
