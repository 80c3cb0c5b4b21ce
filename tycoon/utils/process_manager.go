// Package utils holds small infrastructure helpers shared by the shells.
package utils

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ProcessManager owns the lifecycle of background goroutines (autosave,
// web hub, tick loop) so shutdown can stop them all and wait.
type ProcessManager struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.RWMutex
	processes map[string]context.CancelFunc
}

func NewProcessManager() *ProcessManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &ProcessManager{
		ctx:       ctx,
		cancel:    cancel,
		processes: make(map[string]context.CancelFunc),
	}
}

// Start registers and launches a named background process. Starting a
// name that is already running stops the old instance first.
func (pm *ProcessManager) Start(name string, fn func(ctx context.Context)) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if cancel, exists := pm.processes[name]; exists {
		slog.Warn("Process already running, replacing", slog.String("process", name))
		cancel()
	}

	ctx, cancel := context.WithCancel(pm.ctx)
	pm.processes[name] = cancel

	pm.wg.Add(1)
	go func() {
		defer pm.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Background process panic",
					slog.String("process", name),
					slog.Any("panic", r))
			}
		}()

		slog.Info("Starting background process", slog.String("process", name))
		fn(ctx)
		slog.Info("Background process ended", slog.String("process", name))
	}()
}

// Stop cancels one named process without waiting for it.
func (pm *ProcessManager) Stop(name string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if cancel, exists := pm.processes[name]; exists {
		cancel()
		delete(pm.processes, name)
	}
}

// Shutdown cancels everything and waits up to timeout for goroutines to
// drain.
func (pm *ProcessManager) Shutdown(timeout time.Duration) error {
	pm.cancel()

	done := make(chan struct{})
	go func() {
		pm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("All background processes stopped")
		return nil
	case <-time.After(timeout):
		slog.Warn("Timeout waiting for background processes", slog.Duration("timeout", timeout))
		return context.DeadlineExceeded
	}
}

// Count reports how many processes are registered.
func (pm *ProcessManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.processes)
}
