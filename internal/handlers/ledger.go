package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/crucial707/hci-ledger/internal/ledger"
	"github.com/crucial707/hci-ledger/internal/metrics"
	"github.com/crucial707/hci-ledger/internal/middleware"
	"github.com/crucial707/hci-ledger/internal/models"
	"github.com/crucial707/hci-ledger/internal/persist"
	"github.com/go-chi/chi/v5"
)

// LedgerHandler exposes ledger mutations and queries over HTTP.
type LedgerHandler struct {
	Ledger    *ledger.Ledger
	Persister *persist.Persister // nil disables persistence

	// Now is the reference time for overdue queries; nil means time.Now.
	Now func() time.Time
}

func (h *LedgerHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// committed runs after every successful mutation.
func (h *LedgerHandler) committed(r *http.Request, action models.AuditAction, assetID string) {
	metrics.IncMutation(string(action))
	slog.Info("ledger mutation",
		"action", string(action),
		"asset_id", assetID,
		"actor", middleware.Actor(r.Context()))
	h.Persister.Sync(r.Context(), h.Ledger)
}

//
// ==========================
// Assets
// ==========================
//

func (h *LedgerHandler) AddAsset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AssetID         string      `json:"assetId" validate:"max=128"`
		Category        string      `json:"category" validate:"max=255"`
		Model           string      `json:"model" validate:"max=255"`
		Location        string      `json:"location" validate:"max=255"`
		AssignedProject string      `json:"assignedProject" validate:"max=255"`
		CostCenter      string      `json:"costCenter" validate:"max=64"`
		ConditionScore  numberField `json:"conditionScore"`
		Tags            tagsField   `json:"tags"`
	}
	if !decodeInput(w, r, &input) {
		return
	}

	asset, err := h.Ledger.AddAsset(ledger.AssetInput{
		AssetID:         input.AssetID,
		Category:        input.Category,
		Model:           input.Model,
		Location:        input.Location,
		AssignedProject: input.AssignedProject,
		CostCenter:      input.CostCenter,
		ConditionScore:  input.ConditionScore.Ptr(),
		Tags:            input.Tags.list,
		TagsCSV:         input.Tags.csv,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	h.committed(r, models.ActionAssetAdded, asset.AssetID)
	writeJSON(w, http.StatusCreated, asset)
}

// ListAssets returns assets in insertion order. Query: status, limit, offset.
func (h *LedgerHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 100, 1000)
	status := models.AssetStatus(r.URL.Query().Get("status"))

	assets := []models.Asset{}
	for _, a := range h.Ledger.State().Assets {
		if status == "" || a.Status == status {
			assets = append(assets, a)
		}
	}
	writeJSON(w, http.StatusOK, page(assets, limit, offset))
}

func (h *LedgerHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.Ledger.Asset(chi.URLParam(r, "assetId"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

//
// ==========================
// Checkout / Checkin
// ==========================
//

func (h *LedgerHandler) CheckoutAsset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		BorrowedBy     string      `json:"borrowedBy" validate:"max=255"`
		DurationDays   numberField `json:"durationDays"`
		ConditionPhoto string      `json:"conditionPhoto" validate:"max=2048"`
	}
	if !decodeInput(w, r, &input) {
		return
	}

	checkout, err := h.Ledger.CheckoutAsset(ledger.CheckoutInput{
		AssetID:        chi.URLParam(r, "assetId"),
		BorrowedBy:     input.BorrowedBy,
		DurationDays:   input.DurationDays.Or(1),
		ConditionPhoto: input.ConditionPhoto,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	h.committed(r, models.ActionAssetCheckedOut, checkout.AssetID)
	writeJSON(w, http.StatusCreated, checkout)
}

func (h *LedgerHandler) CheckinAsset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ConditionScore numberField `json:"conditionScore"`
		RepairNotes    string      `json:"repairNotes" validate:"max=2000"`
	}
	if !decodeInput(w, r, &input) {
		return
	}

	asset, err := h.Ledger.CheckinAsset(ledger.CheckinInput{
		AssetID:        chi.URLParam(r, "assetId"),
		ConditionScore: input.ConditionScore.Ptr(),
		RepairNotes:    input.RepairNotes,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	h.committed(r, models.ActionAssetCheckedIn, asset.AssetID)
	writeJSON(w, http.StatusOK, asset)
}

//
// ==========================
// Reservations
// ==========================
//

func (h *LedgerHandler) ReserveAsset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ReservedBy    string      `json:"reservedBy" validate:"max=255"`
		StartAt       string      `json:"startAt"`
		EndAt         string      `json:"endAt"`
		BufferMinutes numberField `json:"bufferMinutes"`
	}
	if !decodeInput(w, r, &input) {
		return
	}

	res, err := h.Ledger.ReserveAsset(ledger.ReservationInput{
		AssetID:       chi.URLParam(r, "assetId"),
		ReservedBy:    input.ReservedBy,
		StartAt:       input.StartAt,
		EndAt:         input.EndAt,
		BufferMinutes: input.BufferMinutes.Ptr(),
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if res.Waitlisted {
		metrics.WaitlistedReservations.Inc()
	}
	h.committed(r, models.ActionAssetReserved, res.AssetID)
	writeJSON(w, http.StatusCreated, res)
}

//
// ==========================
// Maintenance / Procurement
// ==========================
//

func (h *LedgerHandler) AddMaintenanceTask(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ScheduledFor string      `json:"scheduledFor" validate:"max=64"`
		Type         string      `json:"type" validate:"max=255"`
		Vendor       string      `json:"vendor" validate:"max=255"`
		Cost         numberField `json:"cost"`
	}
	if !decodeInput(w, r, &input) {
		return
	}

	task, err := h.Ledger.AddMaintenanceTask(ledger.MaintenanceInput{
		AssetID:      chi.URLParam(r, "assetId"),
		ScheduledFor: input.ScheduledFor,
		Type:         input.Type,
		Vendor:       input.Vendor,
		Cost:         input.Cost.Or(0),
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	h.committed(r, models.ActionMaintenanceScheduled, task.AssetID)
	writeJSON(w, http.StatusCreated, task)
}

func (h *LedgerHandler) CreateProcurementRequest(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RequestedBy   string `json:"requestedBy" validate:"max=255"`
		ItemName      string `json:"itemName" validate:"max=255"`
		Justification string `json:"justification" validate:"max=2000"`
		CostCenter    string `json:"costCenter" validate:"max=64"`
	}
	if !decodeInput(w, r, &input) {
		return
	}

	req, err := h.Ledger.CreateProcurementRequest(ledger.ProcurementInput{
		RequestedBy:   input.RequestedBy,
		ItemName:      input.ItemName,
		Justification: input.Justification,
		CostCenter:    input.CostCenter,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	h.committed(r, models.ActionProcurementRequested, "")
	writeJSON(w, http.StatusCreated, req)
}

//
// ==========================
// Queries
// ==========================
//

// stateView is the dashboard payload: every collection plus the overdue count.
type stateView struct {
	models.State
	OverdueCount int `json:"overdueCount"`
}

func (h *LedgerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateView{
		State:        h.Ledger.State(),
		OverdueCount: len(h.Ledger.OverdueAssets(h.now())),
	})
}

// ListOverdue returns overdue checkouts. Query: now (RFC 3339), defaults to the current time.
func (h *LedgerHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	if raw := r.URL.Query().Get("now"); raw != "" {
		t, err := ledger.ParseInstant(raw)
		if err != nil {
			JSONError(w, "invalid now parameter", http.StatusBadRequest)
			return
		}
		now = t
	}
	writeJSON(w, http.StatusOK, h.Ledger.OverdueAssets(now))
}

// ListAudit returns the newest audit entries first. Query: limit (default 25, max 200).
func (h *LedgerHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 25
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	writeJSON(w, http.StatusOK, h.Ledger.RecentAudit(limit))
}

func pagination(r *http.Request, defLimit, maxLimit int) (limit, offset int) {
	limit = defLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= maxLimit {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}
	return limit, offset
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}
