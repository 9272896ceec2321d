package handlers

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"io.globetrek.app/internal/journal"
	"io.globetrek.app/internal/stats"
)

// StatsWarmer recomputes cached travel stats for recently active users on
// a nightly schedule, so the first dashboard load of the day is served
// from cache.
type StatsWarmer struct {
	journals    *journal.Store
	logger      *zap.SugaredLogger
	cronManager *cron.Cron
}

// NewStatsWarmer creates the warmer and registers its nightly job.
func NewStatsWarmer(journals *journal.Store, logger *zap.SugaredLogger) (*StatsWarmer, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	w := &StatsWarmer{
		journals:    journals,
		logger:      logger,
		cronManager: c,
	}

	// 03:10 UTC, after the bulk of daily writes
	if _, err := c.AddFunc("10 3 * * *", w.warmRecentUsers); err != nil {
		return nil, err
	}

	return w, nil
}

// Start begins the cron scheduler.
func (w *StatsWarmer) Start() {
	w.cronManager.Start()
}

// Stop halts the cron scheduler and waits for a running job to finish.
func (w *StatsWarmer) Stop() {
	ctx := w.cronManager.Stop()
	<-ctx.Done()
}

// warmRecentUsers recomputes stats for every user who created an entry in
// the last 24 hours.
func (w *StatsWarmer) warmRecentUsers() {
	ctx := context.Background()
	since := time.Now().Add(-24 * time.Hour)

	owners, err := w.journals.ActiveOwners(ctx, since)
	if err != nil {
		w.logger.Errorw("stats warmer failed to list active users", "error", err)
		return
	}

	warmed := 0
	for _, uid := range owners {
		entries, err := w.journals.ListByOwner(ctx, uid)
		if err != nil {
			w.logger.Warnw("stats warmer failed to load entries", "user_uid", uid, "error", err)
			continue
		}
		w.journals.CacheStats(ctx, uid, stats.Aggregate(entries))
		warmed++
	}

	w.logger.Infow("stats warmer finished", "users_warmed", warmed, "users_active", len(owners))
}
