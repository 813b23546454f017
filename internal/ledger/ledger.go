// Package ledger is the in-memory inventory ledger: assets, checkouts,
// reservations, maintenance, procurement and the audit log that records
// every successful mutation.
//
// All methods are safe for concurrent use. Each call holds the ledger lock
// for its whole body, so a check and the write that follows it are never
// interleaved with another call.
package ledger

import (
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/crucial707/hci-ledger/internal/models"
	"github.com/google/uuid"
)

const (
	// DefaultConditionScore is assigned to assets added without a score.
	DefaultConditionScore = 5.0
	// DefaultReservationBuffer pads both ends of a new reservation when checking conflicts.
	DefaultReservationBuffer = 15 * time.Minute

	day = 24 * time.Hour

	// Largest inputs whose time.Duration does not overflow int64.
	maxDurationDays  = float64(math.MaxInt64 / int64(day))
	maxBufferMinutes = float64(math.MaxInt64 / int64(time.Minute))
)

// Ledger owns every entity collection. Use New to construct one.
type Ledger struct {
	mu            sync.Mutex
	now           func() time.Time
	newID         func(prefix string) string
	defaultBuffer time.Duration
	state         models.State
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator replaces the default "<prefix>_<uuid>" identifiers.
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// WithDefaultBuffer sets the reservation buffer used when a request names none.
func WithDefaultBuffer(d time.Duration) Option {
	return func(l *Ledger) {
		if d >= 0 {
			l.defaultBuffer = d
		}
	}
}

// WithInitialState seeds the ledger. The state is copied.
func WithInitialState(s models.State) Option {
	return func(l *Ledger) { l.state = cloneState(s) }
}

// New returns an empty ledger configured by opts.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		now:           time.Now,
		newID:         defaultID,
		defaultBuffer: DefaultReservationBuffer,
		state:         emptyState(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func defaultID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func (l *Ledger) clock() time.Time {
	return normalizeInstant(l.now())
}

// ========================
// ASSETS
// ========================

// AddAsset stores a new asset with status available.
func (l *Ledger) AddAsset(in AssetInput) (models.Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if in.AssetID == "" || l.indexOf(in.AssetID) >= 0 {
		return models.Asset{}, validationError(msgAssetIDRequired)
	}

	score := DefaultConditionScore
	if in.ConditionScore != nil {
		score = *in.ConditionScore
	}
	tags := ParseTags(in.TagsCSV)
	if in.Tags != nil {
		tags = NormalizeTags(in.Tags)
	}

	asset := models.Asset{
		AssetID:         in.AssetID,
		Category:        in.Category,
		Model:           in.Model,
		Location:        in.Location,
		AssignedProject: in.AssignedProject,
		CostCenter:      in.CostCenter,
		ConditionScore:  score,
		Tags:            tags,
		Status:          models.StatusAvailable,
	}
	l.state.Assets = append(l.state.Assets, asset)
	l.audit(models.ActionAssetAdded, map[string]any{"assetId": asset.AssetID})
	return cloneAsset(asset), nil
}

// Asset returns one asset by id.
func (l *Ledger) Asset(assetID string) (models.Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(assetID)
	if i < 0 {
		return models.Asset{}, notFoundError(msgAssetNotFound)
	}
	return cloneAsset(l.state.Assets[i]), nil
}

func (l *Ledger) indexOf(assetID string) int {
	return slices.IndexFunc(l.state.Assets, func(a models.Asset) bool { return a.AssetID == assetID })
}

// ========================
// CHECKOUT / CHECKIN
// ========================

// CheckoutAsset lends an available asset. A condition photo is mandatory.
func (l *Ledger) CheckoutAsset(in CheckoutInput) (models.Checkout, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(in.AssetID)
	if i < 0 {
		return models.Checkout{}, notFoundError(msgAssetNotFound)
	}
	if l.state.Assets[i].Status == models.StatusCheckedOut {
		return models.Checkout{}, conflictError(msgAlreadyCheckedOut)
	}
	if in.ConditionPhoto == "" {
		return models.Checkout{}, validationError(msgPhotoRequired)
	}
	days := in.DurationDays
	if days == 0 {
		days = 1
	}
	if !(days >= 0 && days <= maxDurationDays) {
		return models.Checkout{}, validationError(msgInvalidDuration)
	}

	now := l.clock()
	co := models.Checkout{
		ID:             l.newID("co"),
		AssetID:        in.AssetID,
		BorrowedBy:     in.BorrowedBy,
		CheckedOutAt:   now,
		DueAt:          normalizeInstant(now.Add(time.Duration(days * float64(day)))),
		ConditionPhoto: in.ConditionPhoto,
	}
	l.state.Checkouts = append(l.state.Checkouts, co)
	l.state.Assets[i].Status = models.StatusCheckedOut
	l.audit(models.ActionAssetCheckedOut, map[string]any{
		"assetId":    co.AssetID,
		"borrowedBy": co.BorrowedBy,
		"dueAt":      co.DueAt.Format(time.RFC3339Nano),
	})
	return co, nil
}

// CheckinAsset returns a checked-out asset and drops its checkout record.
func (l *Ledger) CheckinAsset(in CheckinInput) (models.Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(in.AssetID)
	if i < 0 {
		return models.Asset{}, notFoundError(msgAssetNotFound)
	}
	asset := &l.state.Assets[i]
	if asset.Status != models.StatusCheckedOut {
		return models.Asset{}, conflictError(msgNotCheckedOut)
	}

	asset.Status = models.StatusAvailable
	if in.ConditionScore != nil {
		asset.ConditionScore = *in.ConditionScore
	}
	l.state.Checkouts = slices.DeleteFunc(l.state.Checkouts, func(c models.Checkout) bool {
		return c.AssetID == in.AssetID
	})
	l.audit(models.ActionAssetCheckedIn, map[string]any{
		"assetId":        asset.AssetID,
		"conditionScore": asset.ConditionScore,
		"repairNotes":    in.RepairNotes,
	})
	return cloneAsset(*asset), nil
}

// ========================
// RESERVATIONS
// ========================

// ReserveAsset stores a reservation. When the buffered window collides with any
// earlier reservation for the same asset the new one is kept but waitlisted.
// Earlier reservations are never changed.
func (l *Ledger) ReserveAsset(in ReservationInput) (models.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(in.AssetID) < 0 {
		return models.Reservation{}, notFoundError(msgAssetNotFound)
	}
	start, err := ParseInstant(in.StartAt)
	if err != nil {
		return models.Reservation{}, err
	}
	end, err := ParseInstant(in.EndAt)
	if err != nil {
		return models.Reservation{}, err
	}
	if !start.Before(end) {
		return models.Reservation{}, validationError(msgInvalidRange)
	}
	buffer := l.defaultBuffer
	if in.BufferMinutes != nil {
		if !(*in.BufferMinutes >= 0 && *in.BufferMinutes <= maxBufferMinutes) {
			return models.Reservation{}, validationError(msgInvalidBuffer)
		}
		buffer = time.Duration(*in.BufferMinutes * float64(time.Minute))
	}

	paddedStart, paddedEnd := start.Add(-buffer), end.Add(buffer)
	conflict := slices.ContainsFunc(l.state.Reservations, func(r models.Reservation) bool {
		return r.AssetID == in.AssetID && Overlaps(paddedStart, paddedEnd, r.StartAt, r.EndAt)
	})

	res := models.Reservation{
		ID:         l.newID("res"),
		AssetID:    in.AssetID,
		ReservedBy: in.ReservedBy,
		StartAt:    start,
		EndAt:      end,
		Waitlisted: conflict,
	}
	l.state.Reservations = append(l.state.Reservations, res)
	l.audit(models.ActionAssetReserved, map[string]any{
		"assetId":    res.AssetID,
		"reservedBy": res.ReservedBy,
		"waitlisted": res.Waitlisted,
	})
	return res, nil
}

// ========================
// MAINTENANCE / PROCUREMENT
// ========================

// AddMaintenanceTask schedules work on an existing asset. It does not check
// the window against checkouts or reservations.
func (l *Ledger) AddMaintenanceTask(in MaintenanceInput) (models.MaintenanceTask, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(in.AssetID) < 0 {
		return models.MaintenanceTask{}, notFoundError(msgAssetNotFound)
	}
	task := models.MaintenanceTask{
		ID:           l.newID("mnt"),
		AssetID:      in.AssetID,
		ScheduledFor: in.ScheduledFor,
		Type:         in.Type,
		Vendor:       in.Vendor,
		Cost:         in.Cost,
		Status:       models.MaintenanceScheduled,
	}
	l.state.Maintenance = append(l.state.Maintenance, task)
	l.audit(models.ActionMaintenanceScheduled, map[string]any{
		"assetId":      task.AssetID,
		"scheduledFor": task.ScheduledFor,
		"type":         task.Type,
	})
	return task, nil
}

// CreateProcurementRequest records a request to acquire a new item.
func (l *Ledger) CreateProcurementRequest(in ProcurementInput) (models.ProcurementRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	req := models.ProcurementRequest{
		ID:            l.newID("proc"),
		RequestedBy:   in.RequestedBy,
		ItemName:      in.ItemName,
		Justification: in.Justification,
		CostCenter:    in.CostCenter,
		Status:        models.ProcurementPendingTeamLead,
	}
	l.state.Procurement = append(l.state.Procurement, req)
	l.audit(models.ActionProcurementRequested, map[string]any{
		"requestedBy": req.RequestedBy,
		"itemName":    req.ItemName,
		"costCenter":  req.CostCenter,
	})
	return req, nil
}

// ========================
// QUERIES
// ========================

// OverdueAssets returns the checkouts due strictly before now.
func (l *Ledger) OverdueAssets(now time.Time) []models.OverdueCheckout {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []models.OverdueCheckout{}
	for _, c := range l.state.Checkouts {
		if c.DueAt.Before(now) {
			out = append(out, models.OverdueCheckout{Checkout: c, Overdue: true})
		}
	}
	return out
}

// Overdue is OverdueAssets at the ledger's current time.
func (l *Ledger) Overdue() []models.OverdueCheckout {
	return l.OverdueAssets(l.now())
}

// State returns a copy of every collection.
func (l *Ledger) State() models.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneState(l.state)
}

// RecentAudit returns up to limit audit entries, newest first. limit <= 0 returns all.
func (l *Ledger) RecentAudit(limit int) []models.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	log := l.state.AuditLog
	if limit > 0 && limit < len(log) {
		log = log[len(log)-limit:]
	}
	out := make([]models.AuditEntry, 0, len(log))
	for i := len(log) - 1; i >= 0; i-- {
		out = append(out, cloneEntry(log[i]))
	}
	return out
}

// AuditFrom returns the audit entries at positions offset and later, oldest first.
func (l *Ledger) AuditFrom(offset int) []models.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if offset < 0 {
		offset = 0
	}
	out := []models.AuditEntry{}
	for i := offset; i < len(l.state.AuditLog); i++ {
		out = append(out, cloneEntry(l.state.AuditLog[i]))
	}
	return out
}

// ========================
// AUDIT
// ========================

func (l *Ledger) audit(action models.AuditAction, details map[string]any) {
	l.state.AuditLog = append(l.state.AuditLog, models.AuditEntry{
		ID:        l.newID("audit"),
		Timestamp: l.clock(),
		Action:    action,
		Details:   details,
	})
}

// ========================
// COPIES
// ========================

func emptyState() models.State {
	return models.State{
		Assets:       []models.Asset{},
		Checkouts:    []models.Checkout{},
		Reservations: []models.Reservation{},
		Maintenance:  []models.MaintenanceTask{},
		Procurement:  []models.ProcurementRequest{},
		AuditLog:     []models.AuditEntry{},
	}
}

func cloneState(s models.State) models.State {
	out := models.State{
		Assets:       make([]models.Asset, 0, len(s.Assets)),
		Checkouts:    append([]models.Checkout{}, s.Checkouts...),
		Reservations: append([]models.Reservation{}, s.Reservations...),
		Maintenance:  append([]models.MaintenanceTask{}, s.Maintenance...),
		Procurement:  append([]models.ProcurementRequest{}, s.Procurement...),
		AuditLog:     make([]models.AuditEntry, 0, len(s.AuditLog)),
	}
	for _, a := range s.Assets {
		out.Assets = append(out.Assets, cloneAsset(a))
	}
	for _, e := range s.AuditLog {
		out.AuditLog = append(out.AuditLog, cloneEntry(e))
	}
	return out
}

func cloneAsset(a models.Asset) models.Asset {
	a.Tags = append([]string{}, a.Tags...)
	return a
}

func cloneEntry(e models.AuditEntry) models.AuditEntry {
	if e.Details != nil {
		e.Details = cloneValue(e.Details).(map[string]any)
	}
	return e
}

// cloneValue deep-copies the maps and slices a decoded JSON value can hold.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := maps.Clone(v)
		for k, inner := range out {
			out[k] = cloneValue(inner)
		}
		return out
	case []any:
		out := slices.Clone(v)
		for i, inner := range out {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return v
	}
}
