package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/store"
)

// HousekeepingService periodically prunes blacklist entries and outstanding
// tokens whose tokens have expired. Neither table is consulted for a token
// past its exp, so the rows are dead weight.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	// Leeway must match the verifier leeway. A row is only pruned once its
	// token can no longer verify, otherwise a revoked token would pass
	// again in the window between exp and exp+Leeway.
	Leeway time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. An interval of 0 or
// less defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// cleanup deletes expired rows. Each deletion is independent so one failure
// does not stop the other.
func (s *HousekeepingService) cleanup(ctx context.Context) (blacklisted, outstanding int64) {
	cutoff := s.Now().UTC().Add(-s.Leeway)

	n, err := s.Store.Blacklist().DeleteExpired(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to prune token blacklist", "error", err)
	} else {
		blacklisted = n
	}

	n, err = s.Store.OutstandingTokens().DeleteExpired(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to prune outstanding tokens", "error", err)
	} else {
		outstanding = n
	}

	s.Logger.Info("housekeeping cleanup completed",
		"blacklist_deleted", blacklisted,
		"outstanding_deleted", outstanding,
	)
	return blacklisted, outstanding
}
