package models

const MaintenanceScheduled = "scheduled"

type MaintenanceTask struct {
	ID           string  `json:"id"`
	AssetID      string  `json:"assetId"`
	ScheduledFor string  `json:"scheduledFor"`
	Type         string  `json:"type"`
	Vendor       string  `json:"vendor"`
	Cost         float64 `json:"cost"`
	Status       string  `json:"status"`
}
