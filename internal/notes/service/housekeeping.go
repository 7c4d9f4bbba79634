package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/notekeep/internal/notes/store"
)

// HousekeepingService periodically clears expired verification codes and
// reset tokens. The auth flows already ignore expired values on lookup;
// this keeps stale single-use credentials from lingering in the table.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop() to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the background worker, blocking until any in-progress
// cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup clears each category independently; a failure in one never stops
// the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Store.Users().DeleteExpiredVerificationCodes(ctx, now); err != nil {
		s.Logger.Error("failed to clear expired verification codes", "error", err)
	}

	if err := s.Store.Users().DeleteExpiredResetTokens(ctx, now); err != nil {
		s.Logger.Error("failed to clear expired reset tokens", "error", err)
	}

	s.Logger.Debug("housekeeping cleanup completed")
}
