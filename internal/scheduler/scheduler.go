package scheduler

import (
	"log/slog"
	"sync"

	"github.com/crucial707/hci-ledger/internal/metrics"
	"github.com/crucial707/hci-ledger/internal/models"
	"github.com/robfig/cron/v3"
)

// OverdueSource reports the checkouts that are past due right now.
type OverdueSource interface {
	Overdue() []models.OverdueCheckout
}

// OverdueSweep publishes the overdue gauge and logs each checkout the first
// time it is seen overdue.
type OverdueSweep struct {
	Source OverdueSource

	mu   sync.Mutex
	seen map[string]bool // checkout ID -> already reported
}

// Run performs one sweep and returns the number of overdue checkouts.
func (s *OverdueSweep) Run() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	overdue := s.Source.Overdue()
	metrics.SetOverdue(len(overdue))

	// returned checkouts drop out of the map
	next := make(map[string]bool, len(overdue))
	for _, co := range overdue {
		if !s.seen[co.ID] {
			slog.Warn("checkout overdue",
				"checkout_id", co.ID,
				"asset_id", co.AssetID,
				"borrowed_by", co.BorrowedBy,
				"due_at", co.DueAt)
		}
		next[co.ID] = true
	}
	s.seen = next
	return len(overdue)
}

// Start runs the sweep once, then on every tick of the cron spec
// (e.g. "@every 5m" or "*/10 * * * *"). flush, when non-nil, runs on the same
// tick so a snapshot that failed to save is retried. Stop the returned cron on
// shutdown.
func Start(spec string, sweep *OverdueSweep, flush func()) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { sweep.Run() }); err != nil {
		return nil, err
	}
	if flush != nil {
		if _, err := c.AddFunc(spec, flush); err != nil {
			return nil, err
		}
	}
	n := sweep.Run()
	slog.Info("overdue sweep scheduled", "cron", spec, "overdue", n)
	c.Start()
	return c, nil
}
