package ledger

import (
	"bytes"
	"encoding/json"

	"github.com/crucial707/hci-ledger/internal/models"
)

// ToJSON serializes every collection. Hydrate(ToJSON()) reproduces the ledger.
func (l *Ledger) ToJSON() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return json.Marshal(l.state)
}

// Hydrate replaces the ledger content with a serialized snapshot.
//
// Blank input is ignored. Input that is not a JSON object empties every
// collection and Hydrate returns false. A key whose value is not a list of
// the expected records yields an empty collection without affecting the others.
func (l *Ledger) Hydrate(serialized []byte) bool {
	if len(bytes.TrimSpace(serialized)) == 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(serialized, &raw); err != nil {
		l.state = emptyState()
		return false
	}
	l.state.Assets = decodeCollection[models.Asset](raw["assets"])
	l.state.Checkouts = decodeCollection[models.Checkout](raw["checkouts"])
	l.state.Reservations = decodeCollection[models.Reservation](raw["reservations"])
	l.state.Maintenance = decodeCollection[models.MaintenanceTask](raw["maintenance"])
	l.state.Procurement = decodeCollection[models.ProcurementRequest](raw["procurement"])
	l.state.AuditLog = decodeCollection[models.AuditEntry](raw["auditLog"])
	return true
}

func decodeCollection[T any](raw json.RawMessage) []T {
	var out []T
	if len(raw) == 0 {
		return []T{}
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []T{}
	}
	return out
}
