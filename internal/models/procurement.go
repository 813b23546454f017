package models

// ProcurementPendingTeamLead is the initial approval stage of a request.
const ProcurementPendingTeamLead = "pending_team_lead"

// ProcurementRequest asks for a new item to be acquired. It does not reference an asset.
type ProcurementRequest struct {
	ID            string `json:"id"`
	RequestedBy   string `json:"requestedBy"`
	ItemName      string `json:"itemName"`
	Justification string `json:"justification"`
	CostCenter    string `json:"costCenter"`
	Status        string `json:"status"`
}
