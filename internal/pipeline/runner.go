package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wealthdesk/internal/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrPartialFailure reports a run in which some investments could not be
// recomputed.
var ErrPartialFailure = errors.New("some investments failed to recompute")

// Recomputer triggers a recompute run.
type Recomputer interface {
	Recompute(ctx context.Context, all bool) (*services.RecomputeReport, error)
}

// Runner executes recompute runs, once or on a cron schedule.
type Runner struct {
	client Recomputer
	all    bool
	log    *zap.SugaredLogger

	mu      sync.Mutex
	running bool
}

// NewRunner creates a Runner.
func NewRunner(client Recomputer, all bool, log *zap.SugaredLogger) *Runner {
	return &Runner{client: client, all: all, log: log}
}

// RunOnce performs a single recompute run. It returns ErrPartialFailure
// when the API reported per-investment failures.
func (r *Runner) RunOnce(ctx context.Context) (*services.RecomputeReport, error) {
	start := time.Now()
	report, err := r.client.Recompute(ctx, r.all)
	if err != nil {
		r.log.Errorw("recompute run failed", "error", err)
		return nil, err
	}

	r.log.Infow("recompute run completed",
		"processed", report.Processed,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped_months", report.SkippedMonths,
		"duration", time.Since(start).String(),
	)
	for _, f := range report.Failures {
		r.log.Warnw("investment recompute failed",
			"investment_id", f.InvestmentID,
			"code", f.Code,
			"message", f.Message,
		)
	}

	if report.Failed > 0 {
		return report, ErrPartialFailure
	}
	return report, nil
}

// Schedule runs recomputes on the cron schedule until ctx is cancelled. A
// tick that fires while the previous run is still going is skipped.
func (r *Runner) Schedule(ctx context.Context, schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if !r.tryStart() {
			r.log.Warnw("previous recompute still running, skipping tick")
			return
		}
		defer r.finish()
		_, _ = r.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	r.log.Infow("recompute scheduler started", "schedule", schedule, "all", r.all)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	r.log.Info("recompute scheduler stopped")
	return nil
}

func (r *Runner) tryStart() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	return true
}

func (r *Runner) finish() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}
