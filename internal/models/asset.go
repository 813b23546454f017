package models

// AssetStatus is the two-state lifecycle of an asset.
type AssetStatus string

const (
	StatusAvailable  AssetStatus = "available"
	StatusCheckedOut AssetStatus = "checked_out"
)

// Asset is a shared physical item (tool, instrument, equipment) tracked by the ledger.
type Asset struct {
	AssetID         string      `json:"assetId"`
	Category        string      `json:"category"`
	Model           string      `json:"model"`
	Location        string      `json:"location"`
	AssignedProject string      `json:"assignedProject"`
	CostCenter      string      `json:"costCenter"`
	ConditionScore  float64     `json:"conditionScore"`
	Tags            []string    `json:"tags"`
	Status          AssetStatus `json:"status"`
}
