package models

import "time"

// Checkout is an active loan of an asset. At most one exists per asset.
type Checkout struct {
	ID             string    `json:"id"`
	AssetID        string    `json:"assetId"`
	BorrowedBy     string    `json:"borrowedBy"`
	CheckedOutAt   time.Time `json:"checkedOutAt"`
	DueAt          time.Time `json:"dueAt"`
	ConditionPhoto string    `json:"conditionPhoto"`
}

// OverdueCheckout is the overdue view of a checkout.
type OverdueCheckout struct {
	Checkout
	Overdue bool `json:"overdue"`
}
