package refresh

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Scheduler refreshes a provider periodically and on demand.
type Scheduler struct {
	provider *Provider
	interval time.Duration
	trigger  chan struct{}
	logger   *log.Logger
}

// NewScheduler creates a scheduler refreshing p every interval. A
// non-positive interval disables periodic refreshes; Trigger still works.
func NewScheduler(p *Provider, interval time.Duration, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		provider: p,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		logger:   logger,
	}
}

// Trigger requests a refresh without waiting for it. Requests made while
// one is already pending are coalesced.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run refreshes immediately, then on every tick and trigger, until ctx is
// cancelled. It returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Debug("refresh scheduler started", "interval", s.interval)
	s.provider.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("refresh scheduler stopped")
			return ctx.Err()
		case <-tick:
			s.provider.Refresh(ctx)
		case <-s.trigger:
			s.provider.Refresh(ctx)
		}
	}
}
