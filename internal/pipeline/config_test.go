package pipeline

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_URL", "http://localhost:8080")
	t.Setenv("PIPELINE_API_KEY", "key")
	t.Setenv("RECOMPUTE_SCHEDULE", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("RECOMPUTE_ALL", "")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Schedule != "" {
		t.Errorf("expected run-once by default, got schedule %q", cfg.Schedule)
	}
	if cfg.RequestTimeout != 5*time.Minute {
		t.Errorf("expected 5m timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.All {
		t.Error("expected active SIPs only by default")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RECOMPUTE_SCHEDULE", "30 18 * * 1-5")
	t.Setenv("REQUEST_TIMEOUT", "90s")
	t.Setenv("RECOMPUTE_ALL", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Schedule != "30 18 * * 1-5" {
		t.Errorf("unexpected schedule %q", cfg.Schedule)
	}
	if cfg.RequestTimeout != 90*time.Second {
		t.Errorf("expected 90s, got %v", cfg.RequestTimeout)
	}
	if !cfg.All {
		t.Error("expected all=true")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "missing_url", key: "API_URL", val: ""},
		{name: "missing_key", key: "PIPELINE_API_KEY", val: ""},
		{name: "bad_schedule", key: "RECOMPUTE_SCHEDULE", val: "every day"},
		{name: "bad_timeout", key: "REQUEST_TIMEOUT", val: "soon"},
		{name: "negative_timeout", key: "REQUEST_TIMEOUT", val: "-1s"},
		{name: "bad_all", key: "RECOMPUTE_ALL", val: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.val)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected an error for %s=%q", tt.key, tt.val)
			}
		})
	}
}
