package service

import (
	"context"
	"log/slog"
	"time"
)

// HousekeepingService periodically deletes expired one-time tokens and
// long-expired session rows. Session validity never depends on it; expiry is
// checked when a token is presented.
type HousekeepingService struct {
	Tokens   *TokenRegistry
	Sessions *SessionManager
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(tokens *TokenRegistry, sessions *SessionManager, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Tokens:   tokens,
		Sessions: sessions,
		Logger:   logger,
		Interval: interval,
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

// Cleanup runs one pass. Each deletion is independent; a failure in one
// does not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	if n, err := s.Tokens.PurgeExpired(ctx); err != nil {
		s.Logger.Error("failed to delete expired one-time tokens", "error", err)
	} else {
		s.Logger.Debug("deleted expired one-time tokens", "count", n)
	}

	if n, err := s.Sessions.PurgeExpired(ctx); err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
	} else {
		s.Logger.Debug("deleted expired sessions", "count", n)
	}
}
