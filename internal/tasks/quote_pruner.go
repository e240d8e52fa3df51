package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cheapflyer/internal/database"
	"cheapflyer/internal/metrics"
)

// QuoteLogPruner deletes quote log entries older than the retention window.
// It implements scheduler.Task.
type QuoteLogPruner struct {
	repo      database.QuoteLogRepository
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewQuoteLogPruner(repo database.QuoteLogRepository, retention, interval time.Duration) *QuoteLogPruner {
	return &QuoteLogPruner{
		repo:      repo,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

func (p *QuoteLogPruner) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cutoff := p.now().Add(-p.retention)
	deleted, err := p.repo.DeleteOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune quote log: %w", err)
	}

	metrics.QuoteLogPruned.Add(float64(deleted))
	if deleted > 0 {
		slog.Info("Pruned quote log", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}

func (p *QuoteLogPruner) Interval() time.Duration {
	return p.interval
}

func (p *QuoteLogPruner) Name() string {
	return "quote_log_pruner"
}
