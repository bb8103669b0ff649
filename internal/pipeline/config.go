package pipeline

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds the recompute job configuration.
type Config struct {
	APIURL         string
	PipelineAPIKey string
	// Schedule is a cron expression; empty runs once and exits.
	Schedule       string
	RequestTimeout time.Duration
	// All recomputes every investment rather than only active SIPs.
	All bool
}

// LoadConfig reads configuration from the environment (and .env if present)
// and validates required fields.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		APIURL:         os.Getenv("API_URL"),
		PipelineAPIKey: os.Getenv("PIPELINE_API_KEY"),
		Schedule:       os.Getenv("RECOMPUTE_SCHEDULE"),
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("API_URL is required")
	}
	if cfg.PipelineAPIKey == "" {
		return nil, fmt.Errorf("PIPELINE_API_KEY is required")
	}

	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			return nil, fmt.Errorf("invalid RECOMPUTE_SCHEDULE %q: %w", cfg.Schedule, err)
		}
	}

	// The API may hit the NAV provider for every active SIP.
	cfg.RequestTimeout = 5 * time.Minute
	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", raw, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", d)
		}
		cfg.RequestTimeout = d
	}

	if raw := os.Getenv("RECOMPUTE_ALL"); raw != "" {
		all, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RECOMPUTE_ALL value: %w", err)
		}
		cfg.All = all
	}

	return cfg, nil
}
