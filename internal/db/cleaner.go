package db

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EventPurger deletes journal events created before cutoff and reports how
// many were removed.
type EventPurger interface {
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventCleaner enforces the journal retention window.
type EventCleaner struct {
	purger    EventPurger
	interval  time.Duration
	retention time.Duration
	log       *zap.Logger
	now       func() time.Time
}

// NewEventCleaner creates a cleaner removing events older than retention
// every interval. A nil logger is replaced by a no-op one.
func NewEventCleaner(purger EventPurger, interval, retention time.Duration, log *zap.Logger) *EventCleaner {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventCleaner{
		purger:    purger,
		interval:  interval,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

// Sweep runs a single purge and returns the number of removed events.
func (c *EventCleaner) Sweep(ctx context.Context) (int64, error) {
	cutoff := c.now().Add(-c.retention)
	removed, err := c.purger.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		c.log.Error("failed to clean auth events", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, err
	}
	if removed > 0 {
		c.log.Info("cleaned auth events", zap.Int64("removed", removed), zap.Time("cutoff", cutoff))
	}
	return removed, nil
}

// Start sweeps once right away, then every interval until ctx is done.
func (c *EventCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	go func() {
		defer ticker.Stop()
		for {
			if ctx.Err() != nil {
				return
			}
			_, _ = c.Sweep(ctx)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
