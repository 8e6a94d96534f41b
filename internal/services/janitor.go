package services

import (
	"time"

	"github.com/Vineet-Sharma1927/InkSight/internal/session"

	"go.uber.org/zap"
)

// Janitor periodically drops capture sessions that have gone idle. An idle
// session is an abandoned page; its unsaved data is discarded, not
// submitted.
type Janitor struct {
	log      *zap.Logger
	manager  *session.Manager
	interval time.Duration
	done     chan struct{}
}

// NewJanitor builds a janitor over the session manager.
func NewJanitor(log *zap.Logger, manager *session.Manager, interval time.Duration) *Janitor {
	return &Janitor{
		log:      log,
		manager:  manager,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop in a goroutine.
func (j *Janitor) Start() {
	j.log.Info("Starting session janitor...")
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if dropped := j.manager.Sweep(); dropped > 0 {
					j.log.Info("Swept abandoned capture sessions", zap.Int("dropped", dropped))
				}
			case <-j.done:
				return
			}
		}
	}()
}

// Stop ends the sweep loop.
func (j *Janitor) Stop() {
	close(j.done)
}
