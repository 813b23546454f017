package handlers

import (
	"net/http"

	"github.com/crucial707/hci-ledger/internal/repo"
)

// AuditHistoryHandler serves the durable audit mirror (Postgres driver only).
type AuditHistoryHandler struct {
	Repo *repo.AuditRepo
}

// ListHistory returns mirrored audit entries, newest first. Query: limit (default 50, max 200), offset.
func (h *AuditHistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 200)

	entries, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
