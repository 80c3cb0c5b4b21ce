package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kirari-dev/streamtycoon/tycoon/database/models"
	"github.com/kirari-dev/streamtycoon/tycoon/database/repositories"
)

type fakeSaveRepo struct {
	mu     sync.Mutex
	saves  []any
	failAt int // fail the nth Save call, 0 disables
	calls  int
}

func (f *fakeSaveRepo) Save(_ context.Context, _ string, state any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failAt != 0 && f.calls == f.failAt {
		return errors.New("disk full")
	}
	f.saves = append(f.saves, state)
	return nil
}

func (f *fakeSaveRepo) Load(context.Context, string, any) error     { return repositories.ErrNoSave }
func (f *fakeSaveRepo) Info(context.Context, string) (*models.Save, error) {
	return nil, repositories.ErrNoSave
}
func (f *fakeSaveRepo) Exists(context.Context, string) (bool, error) { return false, nil }
func (f *fakeSaveRepo) Delete(context.Context, string) error         { return nil }

func (f *fakeSaveRepo) saved() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]any(nil), f.saves...)
}

func TestAutosaveFlushWritesDirtyState(t *testing.T) {
	repo := &fakeSaveRepo{}
	s := NewAutosaveService(repo, "", time.Hour)

	s.Flush(context.Background())
	if len(repo.saved()) != 0 {
		t.Fatal("flush with nothing stored should not write")
	}

	s.Store("state-1")
	s.Flush(context.Background())
	if got := repo.saved(); len(got) != 1 || got[0] != "state-1" {
		t.Fatalf("saved = %v, want [state-1]", got)
	}

	// clean state does not rewrite
	s.Flush(context.Background())
	if len(repo.saved()) != 1 {
		t.Fatal("flush rewrote a clean state")
	}
}

func TestAutosaveKeepsLatestOnly(t *testing.T) {
	repo := &fakeSaveRepo{}
	s := NewAutosaveService(repo, "", time.Hour)
	s.Store("old")
	s.Store("new")
	s.Flush(context.Background())
	if got := repo.saved(); len(got) != 1 || got[0] != "new" {
		t.Fatalf("saved = %v, want only the newest", got)
	}
}

func TestAutosaveRetriesAfterFailure(t *testing.T) {
	repo := &fakeSaveRepo{failAt: 1}
	s := NewAutosaveService(repo, "", time.Hour)
	s.Store("precious")
	s.Flush(context.Background()) // fails, state stays dirty
	s.Flush(context.Background()) // succeeds
	if got := repo.saved(); len(got) != 1 || got[0] != "precious" {
		t.Fatalf("saved = %v, want the retried state", got)
	}
}

func TestAutosaveRunFlushesOnShutdown(t *testing.T) {
	repo := &fakeSaveRepo{}
	s := NewAutosaveService(repo, "", time.Hour) // interval too long to fire
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	s.Store("final")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if got := repo.saved(); len(got) != 1 || got[0] != "final" {
		t.Fatalf("saved = %v, want the shutdown flush", got)
	}
}
