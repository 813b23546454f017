package models

import "time"

// AuditAction names the mutation an audit entry records.
type AuditAction string

const (
	ActionAssetAdded           AuditAction = "asset_added"
	ActionAssetCheckedOut      AuditAction = "asset_checked_out"
	ActionAssetCheckedIn       AuditAction = "asset_checked_in"
	ActionAssetReserved        AuditAction = "asset_reserved"
	ActionMaintenanceScheduled AuditAction = "maintenance_scheduled"
	ActionProcurementRequested AuditAction = "procurement_requested"
)

// AuditEntry represents one successful ledger mutation. Entries are append-only.
type AuditEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Action    AuditAction    `json:"action"`
	Details   map[string]any `json:"details"`
}
