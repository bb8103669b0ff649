package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wealthdesk/internal/logger"
	"wealthdesk/internal/pipeline"
)

// Exit codes: 1 for configuration or request failures, 2 when some
// investments could not be recomputed.
func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Sync()
		if errors.Is(err, pipeline.ErrPartialFailure) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "recompute: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := pipeline.LoadConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	client := pipeline.NewClient(cfg.APIURL, cfg.PipelineAPIKey, httpClient)
	runner := pipeline.NewRunner(client, cfg.All, logger.Named("recompute"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Schedule == "" {
		_, err := runner.RunOnce(ctx)
		return err
	}
	return runner.Schedule(ctx, cfg.Schedule)
}
