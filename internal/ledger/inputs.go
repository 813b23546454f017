package ledger

// AssetInput describes a new asset. Tags wins over TagsCSV when non-nil.
// A nil ConditionScore defaults to 5.
type AssetInput struct {
	AssetID         string
	Category        string
	Model           string
	Location        string
	AssignedProject string
	CostCenter      string
	ConditionScore  *float64
	Tags            []string
	TagsCSV         string
}

// CheckoutInput lends an asset. Zero DurationDays means one day.
type CheckoutInput struct {
	AssetID        string
	BorrowedBy     string
	DurationDays   float64
	ConditionPhoto string
}

// CheckinInput returns an asset. A nil ConditionScore keeps the asset's current score.
type CheckinInput struct {
	AssetID        string
	ConditionScore *float64
	RepairNotes    string
}

// ReservationInput books an asset. StartAt and EndAt are parsed with ParseInstant.
// A nil BufferMinutes uses the ledger default.
type ReservationInput struct {
	AssetID       string
	ReservedBy    string
	StartAt       string
	EndAt         string
	BufferMinutes *float64
}

type MaintenanceInput struct {
	AssetID      string
	ScheduledFor string
	Type         string
	Vendor       string
	Cost         float64
}

type ProcurementInput struct {
	RequestedBy   string
	ItemName      string
	Justification string
	CostCenter    string
}
