package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/metrics"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
)

// StaleRetention is how long spent activation codes are kept before
// housekeeping removes them.
const StaleRetention = 24 * time.Hour

// HousekeepingService periodically removes dead sessions and stale
// activation codes so the tables do not grow without bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Metrics  *metrics.Metrics
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(
	s store.Store,
	logger *slog.Logger,
	interval time.Duration,
	m *metrics.Metrics,
) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    s,
		Logger:   logger,
		Interval: interval,
		Metrics:  m,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs one cleanup immediately and then one per Interval until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", slog.Duration("interval", s.Interval))
}

// Stop blocks until an in-flight cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())
	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// CleanupResult counts what one pass removed.
type CleanupResult struct {
	Sessions        int64
	ActivationCodes int64
}

// Cleanup performs one pass. Each table is handled independently so one
// failure does not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) CleanupResult {
	now := clock(s.Now)
	var res CleanupResult

	n, err := s.Store.Sessions().DeleteExpired(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", slog.Any("error", err))
	} else {
		res.Sessions = n
		s.Metrics.HousekeepingDeleted("user_sessions", n)
	}

	n, err = s.Store.ActivationCodes().DeleteStale(ctx, now.Add(-StaleRetention))
	if err != nil {
		s.Logger.Error("failed to delete stale activation codes", slog.Any("error", err))
	} else {
		res.ActivationCodes = n
		s.Metrics.HousekeepingDeleted("activation_codes", n)
	}

	s.Logger.Info("housekeeping cleanup completed",
		slog.Int64("sessions_deleted", res.Sessions),
		slog.Int64("activation_codes_deleted", res.ActivationCodes),
	)
	return res
}
