package web

// import_limiter.go implements concurrency control for archive imports.
//
// An import makes one database write per created entity and can run for
// minutes on large archives. The limiter uses a semaphore to cap parallel
// imports; when all slots are occupied, requests wait up to maxWait before
// failing with ErrTooManyImports.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyImports is returned when all import slots are occupied and the
// wait timeout expires. Clients should retry after a short delay.
var ErrTooManyImports = errors.New("too many concurrent imports, please try again later")

const (
	defaultMaxConcurrentImports = 2
	defaultImportMaxWait        = 30 * time.Second
)

// importLimiter restricts how many archive imports run at once.
type importLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

func newImportLimiter(maxConcurrent int, maxWait time.Duration) *importLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentImports
	}
	if maxWait <= 0 {
		maxWait = defaultImportMaxWait
	}
	return &importLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// acquire attempts to take an import slot, waiting up to maxWait. The caller
// must call release exactly once after a successful acquire.
func (l *importLimiter) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyImports
	}
}

func (l *importLimiter) release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.semaphore
}

// activeCount returns the number of imports currently running.
func (l *importLimiter) activeCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

func (l *importLimiter) available() int {
	return cap(l.semaphore) - len(l.semaphore)
}
