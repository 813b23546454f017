package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/hci-ledger/internal/ledger"
	"github.com/crucial707/hci-ledger/internal/metrics"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// writeLedgerError maps ledger error kinds to status codes. The ledger message
// is shown to the user verbatim.
func writeLedgerError(w http.ResponseWriter, err error) {
	var kind string
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrValidation):
		kind, status = "validation", http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		kind, status = "not_found", http.StatusNotFound
	case errors.Is(err, ledger.ErrConflict):
		kind, status = "conflict", http.StatusConflict
	}
	if kind == "" {
		slog.Error("ledger operation failed", "error", err)
		JSONError(w, ErrMessageInternal, status)
		return
	}
	metrics.IncRejection(kind)
	JSONError(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
