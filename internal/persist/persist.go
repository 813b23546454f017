// Package persist keeps a durable copy of a ledger: the full snapshot after
// every mutation, plus an append-only mirror of new audit entries.
package persist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/crucial707/hci-ledger/internal/ledger"
	"github.com/crucial707/hci-ledger/internal/metrics"
	"github.com/crucial707/hci-ledger/internal/models"
	"github.com/crucial707/hci-ledger/internal/repo"
)

// AuditAppender stores audit entries one at a time.
type AuditAppender interface {
	Append(ctx context.Context, e models.AuditEntry) error
}

// Persister writes ledger state to a SnapshotStore. The zero value is not
// usable; a nil *Persister is a no-op.
type Persister struct {
	Store repo.SnapshotStore
	Audit AuditAppender

	mu       sync.Mutex
	mirrored int
}

// New returns a Persister. audit may be nil.
func New(store repo.SnapshotStore, audit AuditAppender) *Persister {
	return &Persister{Store: store, Audit: audit}
}

// Restore hydrates l from the store. A missing snapshot leaves l untouched.
// Audit entries already in the snapshot are treated as mirrored.
func (p *Persister) Restore(ctx context.Context, l *ledger.Ledger) error {
	if p == nil {
		return nil
	}
	data, err := p.Store.Load(ctx)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	if !l.Hydrate(data) {
		slog.Warn("stored snapshot is malformed; starting from an empty ledger")
	}

	p.mu.Lock()
	p.mirrored = len(l.AuditFrom(0))
	p.mu.Unlock()
	return nil
}

// Sync saves the current snapshot and mirrors audit entries appended since
// the last call. Failures are logged and counted, never returned: the
// in-memory ledger stays authoritative.
func (p *Persister) Sync(ctx context.Context, l *ledger.Ledger) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := l.ToJSON()
	if err == nil {
		err = p.Store.Save(ctx, data)
	}
	if err != nil {
		metrics.SnapshotSaveFailures.Inc()
		slog.Error("persist snapshot", "error", err)
	}

	if p.Audit == nil {
		return
	}
	for _, e := range l.AuditFrom(p.mirrored) {
		if err := p.Audit.Append(ctx, e); err != nil {
			slog.Error("mirror audit entry", "entry_id", e.ID, "error", err)
			return
		}
		p.mirrored++
	}
}

// Rewind makes the next Sync mirror the whole audit log again. Call it after
// the ledger was replaced by an import; already-mirrored entries are skipped
// by the appender.
func (p *Persister) Rewind() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.mirrored = 0
	p.mu.Unlock()
}
