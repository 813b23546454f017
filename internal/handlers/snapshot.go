package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/crucial707/hci-ledger/internal/middleware"
)

// ExportFilename is the download name of GET /export.
const ExportFilename = "inventory-export.json"

// Export streams the full snapshot as a JSON attachment.
func (h *LedgerHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Ledger.ToJSON()
	if err != nil {
		slog.Error("export snapshot", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.Write(data)
}

// Import replaces the ledger with an uploaded snapshot. Bodies that are not a
// JSON object are refused before they reach the ledger, so a bad upload cannot
// wipe it.
func (h *LedgerHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			JSONError(w, "snapshot too large", http.StatusRequestEntityTooLarge)
			return
		}
		JSONError(w, "failed to read snapshot", http.StatusBadRequest)
		return
	}
	if !isJSONObject(body) {
		JSONError(w, "invalid snapshot", http.StatusBadRequest)
		return
	}

	if !h.Ledger.Hydrate(body) {
		JSONError(w, "invalid snapshot", http.StatusBadRequest)
		return
	}
	h.Persister.Rewind()
	h.Persister.Sync(r.Context(), h.Ledger)

	state := h.Ledger.State()
	slog.Info("ledger imported",
		"actor", middleware.Actor(r.Context()),
		"assets", len(state.Assets),
		"audit_entries", len(state.AuditLog))
	writeJSON(w, http.StatusOK, map[string]int{
		"assets":       len(state.Assets),
		"checkouts":    len(state.Checkouts),
		"reservations": len(state.Reservations),
		"maintenance":  len(state.Maintenance),
		"procurement":  len(state.Procurement),
		"auditLog":     len(state.AuditLog),
	})
}

// isJSONObject reports whether body is one well-formed JSON object.
func isJSONObject(body []byte) bool {
	body = bytes.TrimSpace(body)
	return len(body) > 0 && body[0] == '{' && json.Valid(body)
}
