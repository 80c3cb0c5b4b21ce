// Package services hosts the pieces that run beside the game loop:
// autosave and shop search.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/kirari-dev/streamtycoon/tycoon/database/repositories"
	"github.com/kirari-dev/streamtycoon/tycoon/logger"
)

// AutosaveService persists the latest game snapshot on an interval. The
// game loop pushes snapshots with Store; the service goroutine only ever
// touches its own copy, so the Game itself needs no locking.
type AutosaveService struct {
	repo     repositories.SaveRepository
	slot     string
	interval time.Duration

	mu     sync.Mutex
	latest any
	dirty  bool
}

func NewAutosaveService(repo repositories.SaveRepository, slot string, interval time.Duration) *AutosaveService {
	if slot == "" {
		slot = repositories.DefaultSlot
	}
	return &AutosaveService{
		repo:     repo,
		slot:     slot,
		interval: interval,
	}
}

// Store hands the service a fresh snapshot to persist on the next cycle.
func (s *AutosaveService) Store(state any) {
	s.mu.Lock()
	s.latest = state
	s.dirty = true
	s.mu.Unlock()
}

// Run writes dirty snapshots until ctx is done, then flushes once more so
// a clean shutdown never loses the last snapshot.
func (s *AutosaveService) Run(ctx context.Context) {
	if s.interval <= 0 {
		<-ctx.Done()
		s.flush(context.Background())
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.flush(context.Background())
			return
		case <-ticker.C:
			s.flush(ctx)
		}
	}
}

// Flush forces an immediate write of any pending snapshot.
func (s *AutosaveService) Flush(ctx context.Context) { s.flush(ctx) }

func (s *AutosaveService) flush(ctx context.Context) {
	s.mu.Lock()
	state, dirty := s.latest, s.dirty
	s.dirty = false
	s.mu.Unlock()

	if !dirty || state == nil {
		return
	}
	if err := s.repo.Save(ctx, s.slot, state); err != nil {
		logger.LogError("autosave failed", err)
		// retry on the next cycle
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return
	}
	logger.LogDB("autosave complete", "slot", s.slot)
}
