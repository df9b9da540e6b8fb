package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// counter tracks requests for one key within a fixed window.
type counter struct {
	count   int64
	resetAt time.Time
}

// MemoryStore implements Store using in-memory fixed-window counters.
// It is process-local: each instance enforces its own budget independently.
type MemoryStore struct {
	mu       sync.RWMutex
	counters map[string]*counter

	// Configuration
	cleanupInterval time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger

	// State management
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
	wg      sync.WaitGroup

	// Observability metrics
	countersCreated atomic.Int64
	countersRemoved atomic.Int64
}

// MemoryStoreStats provides observability metrics for monitoring and debugging.
type MemoryStoreStats struct {
	CountersCreated int64 // Total number of window counters created
	CountersRemoved int64 // Total number of expired counters swept
	ActiveCounters  int   // Current number of live counters
	IsRunning       bool  // Whether the sweep goroutine is running
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired counters are swept.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithMemoryStoreShutdownTimeout sets the graceful shutdown timeout.
func WithMemoryStoreShutdownTimeout(timeout time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if timeout > 0 {
			ms.shutdownTimeout = timeout
		}
	}
}

// WithMemoryStoreLogger sets the logger for internal operations.
func WithMemoryStoreLogger(logger *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if logger != nil {
			ms.logger = logger
		}
	}
}

// NewMemoryStore creates a new in-memory store.
// Call Start() to begin the background sweep.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		counters:        make(map[string]*counter),
		cleanupInterval: time.Minute,
		shutdownTimeout: 30 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(ms)
	}

	return ms
}

// Incr increments the counter for key within the current window. A counter
// whose window has passed is treated as absent and replaced, so correctness
// does not depend on the background sweep.
func (ms *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	c, exists := ms.counters[key]

	if !exists || !now.Before(c.resetAt) {
		c = &counter{
			count:   1,
			resetAt: now.Add(window),
		}
		ms.counters[key] = c
		ms.countersCreated.Add(1)
		return c.count, c.resetAt, nil
	}

	c.count++
	return c.count, c.resetAt, nil
}

// Reset removes the counter for key.
func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.counters, key)
	return nil
}

// Start begins the background sweep goroutine. This is a blocking operation
// that runs until the context is cancelled. Use Run() for errgroup pattern
// or call this in a goroutine.
func (ms *MemoryStore) Start(ctx context.Context) error {
	ms.mu.Lock()
	if ms.cancel != nil {
		ms.mu.Unlock()
		return fmt.Errorf("memory store already started")
	}

	if ms.cleanupInterval <= 0 {
		ms.mu.Unlock()
		return fmt.Errorf("cleanup interval must be > 0, got %v (use WithCleanupInterval to configure)", ms.cleanupInterval)
	}

	ms.ctx, ms.cancel = context.WithCancel(ctx)
	ms.mu.Unlock()

	ms.running.Store(true)
	defer ms.running.Store(false)

	ms.logger.InfoContext(ms.ctx, "rate limit counter sweep started",
		slog.Duration("cleanup_interval", ms.cleanupInterval))

	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.ctx.Done():
			ms.logger.InfoContext(context.Background(), "rate limit counter sweep stopping")
			return ms.ctx.Err()
		case <-ticker.C:
			ms.sweepWithWait()
		}
	}
}

// Stop gracefully shuts down the background sweep with a timeout.
// Returns an error if the shutdown timeout is exceeded.
func (ms *MemoryStore) Stop() error {
	ms.mu.Lock()
	if ms.cancel == nil {
		ms.mu.Unlock()
		return fmt.Errorf("memory store not started")
	}

	cancel := ms.cancel
	ms.cancel = nil
	ms.mu.Unlock()

	cancel()

	ctx, ctxCancel := context.WithTimeout(context.Background(), ms.shutdownTimeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		ms.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		ms.logger.InfoContext(context.Background(), "memory store stopped cleanly")
		return nil
	case <-ctx.Done():
		ms.logger.WarnContext(context.Background(), "memory store shutdown timeout exceeded",
			slog.Duration("timeout", ms.shutdownTimeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", ms.shutdownTimeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// Returns a function that starts the sweep, monitors context cancellation,
// and performs graceful shutdown when the context is cancelled.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- ms.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = ms.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// sweepWithWait wraps sweep with WaitGroup tracking for graceful shutdown.
func (ms *MemoryStore) sweepWithWait() {
	ms.mu.RLock()
	if ms.cancel == nil {
		ms.mu.RUnlock()
		return
	}
	ms.wg.Add(1)
	ms.mu.RUnlock()

	defer ms.wg.Done()
	ms.sweep()
}

// sweep removes counters whose window has passed, bounding memory growth.
// Not correctness-critical: Incr treats stale counters as absent regardless.
func (ms *MemoryStore) sweep() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, c := range ms.counters {
		if !now.Before(c.resetAt) {
			delete(ms.counters, key)
			removed++
		}
	}

	if removed > 0 {
		ms.countersRemoved.Add(int64(removed))
	}
}

// Stats returns current memory store statistics for observability.
func (ms *MemoryStore) Stats() MemoryStoreStats {
	ms.mu.RLock()
	isRunning := ms.cancel != nil
	active := len(ms.counters)
	ms.mu.RUnlock()

	return MemoryStoreStats{
		CountersCreated: ms.countersCreated.Load(),
		CountersRemoved: ms.countersRemoved.Load(),
		ActiveCounters:  active,
		IsRunning:       isRunning,
	}
}

// Healthcheck validates that the memory store is operational.
func (ms *MemoryStore) Healthcheck(ctx context.Context) error {
	stats := ms.Stats()

	if ms.cleanupInterval > 0 && !stats.IsRunning {
		return fmt.Errorf("counter sweep is configured but not running")
	}

	return nil
}
