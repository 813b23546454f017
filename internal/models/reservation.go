package models

import "time"

// Reservation books an asset for a time window. Waitlisted is only emitted when true.
type Reservation struct {
	ID         string    `json:"id"`
	AssetID    string    `json:"assetId"`
	ReservedBy string    `json:"reservedBy"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	Waitlisted bool      `json:"waitlisted,omitempty"`
}
