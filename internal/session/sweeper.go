package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultSweepInterval is how often stale sessions are swept
	DefaultSweepInterval = 1 * time.Hour
	// DefaultMaxAge is how long an untouched session survives
	DefaultMaxAge = 24 * time.Hour
)

// Sweeper periodically removes stale sessions from a registry
type Sweeper struct {
	registry *Registry
	interval time.Duration
	maxAge   time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewSweeper creates a sweeper for the registry
func NewSweeper(registry *Registry, interval, maxAge time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Sweeper{
		registry: registry,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start begins the periodic sweep. Safe to call more than once.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(sweepCtx)
}

// Stop cancels the sweep loop and waits for it to finish
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	done := s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	<-done
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.registry.SweepStale(s.maxAge); removed > 0 {
				log.Info().
					Int("removed", removed).
					Int("remaining", s.registry.Count()).
					Msg("Swept stale sessions")
			}
		}
	}
}
