package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/crucial707/hci-ledger/internal/middleware"
)

// AuthHandler trades the shared API token for a short-lived JWT naming the user.
type AuthHandler struct {
	APIToken string
	Secret   []byte
	TTL      time.Duration
}

func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required,max=64"`
		APIToken string `json:"apiToken" validate:"required"`
	}
	if !decodeInput(w, r, &input) {
		return
	}

	if subtle.ConstantTimeCompare([]byte(input.APIToken), []byte(h.APIToken)) != 1 {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	ttl := h.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, err := middleware.IssueToken(h.Secret, input.Username, ttl)
	if err != nil {
		slog.Error("issue token", "error", err)
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":     token,
		"username":  input.Username,
		"expiresAt": time.Now().Add(ttl).UTC().Format(time.RFC3339),
	})
}
