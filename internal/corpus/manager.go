package corpus

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Manager owns the live snapshot. Readers grab the current snapshot
// through an atomic pointer and keep using it for the duration of their
// request; a reload builds the replacement off to the side and swaps the
// pointer, so no reader ever observes a partially rebuilt corpus.
type Manager struct {
	loader   *Loader
	onReload func(context.Context, *Report)

	mu      sync.Mutex // serializes reloads
	current atomic.Pointer[Snapshot]
	report  atomic.Pointer[Report]
}

// NewManager creates a Manager around loader. The corpus is empty until
// the first Reload.
func NewManager(loader *Loader) *Manager {
	return &Manager{loader: loader}
}

// Current returns the live snapshot, or nil before the first successful
// load.
func (m *Manager) Current() *Snapshot {
	return m.current.Load()
}

// LastReport returns the report of the most recent successful load.
func (m *Manager) LastReport() *Report {
	return m.report.Load()
}

// OnReload registers fn to run after every successful reload, no matter
// who triggered it. Set it before the first Reload.
func (m *Manager) OnReload(fn func(context.Context, *Report)) {
	m.onReload = fn
}

// Reload builds a fresh snapshot and swaps it in. On failure the
// previous snapshot stays live. Concurrent Reload calls run one at a
// time.
func (m *Manager) Reload(ctx context.Context) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, report, err := m.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	m.current.Store(snap)
	m.report.Store(report)
	if m.onReload != nil {
		m.onReload(ctx, report)
	}
	return report, nil
}

// Refresh reloads the corpus every interval until ctx is cancelled.
// A failed reload is logged and retried at the next tick; the stale
// snapshot keeps serving in the meantime.
func (m *Manager) Refresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := m.Reload(ctx)
			if err != nil {
				log.Printf("corpus: scheduled reload failed: %v", err)
				continue
			}
			log.Printf("corpus: reloaded %d issues (%d rejected)", report.Accepted, report.Rejected())
		}
	}
}
