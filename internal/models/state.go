package models

// State is the full ledger content and also the snapshot wire shape.
type State struct {
	Assets       []Asset              `json:"assets"`
	Checkouts    []Checkout           `json:"checkouts"`
	Reservations []Reservation        `json:"reservations"`
	Maintenance  []MaintenanceTask    `json:"maintenance"`
	Procurement  []ProcurementRequest `json:"procurement"`
	AuditLog     []AuditEntry         `json:"auditLog"`
}
