// Package otpcache stores live one-time codes, either in process memory or
// in Redis for multi-instance deployments.
package otpcache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tradewire/ibdesk/internal/auth/entity"
	"github.com/tradewire/ibdesk/internal/pkg/clock"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/goroutine"
)

// Memory is a mutex-guarded map of identity to record. Expired records stay
// readable for one extra TTL so verify can answer "expired" instead of
// "not found"; the janitor removes them after that grace window.
type Memory struct {
	mu      sync.Mutex
	records map[string]entity.OtpRecord
	clock   clock.Clocker
	grace   time.Duration
}

// NewMemory builds the in-process store and starts its janitor on the
// goroutine manager. The janitor stops when ctx is canceled.
func NewMemory(ctx context.Context, clk clock.Clocker, grace, sweepEvery time.Duration, routine *goroutine.Manager) *Memory {
	if grace <= 0 {
		grace = 10 * time.Minute
	}
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}

	m := &Memory{
		records: make(map[string]entity.OtpRecord),
		clock:   clk,
		grace:   grace,
	}

	routine.Go(ctx, func(pCtx context.Context) error {
		ticker := time.NewTicker(sweepEvery)
		defer ticker.Stop()

		for {
			select {
			case <-pCtx.Done():
				return nil
			case <-ticker.C:
				if n := m.sweep(); n > 0 {
					slog.DebugContext(pCtx, "swept stale otp records", "count", n)
				}
			}
		}
	})

	return m
}

func (m *Memory) Put(_ context.Context, rec entity.OtpRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[rec.Identity] = rec
	return nil
}

func (m *Memory) Get(_ context.Context, identity string) (*entity.OtpRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[identity]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &rec, nil
}

func (m *Memory) Delete(_ context.Context, identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, identity)
	return nil
}

// sweep removes records that have been expired longer than the grace window
// and returns how many were dropped.
func (m *Memory) sweep() int {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for identity, rec := range m.records {
		if now.After(rec.ExpiresAt.Add(m.grace)) {
			delete(m.records, identity)
			removed++
		}
	}
	return removed
}
