package maintenance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/hci-ledger/internal/models"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestAddMaintenance(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("jwt"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HCI_LEDGER_TOKEN_FILE", tokenFile)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/assets/PRN-01/maintenance" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer jwt" {
			t.Errorf("Authorization: got %q", got)
		}
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["type"] != "Preventive" || payload["scheduledFor"] != "2026-02-01" || payload["cost"] != "149.90" {
			t.Errorf("unexpected payload: %v", payload)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.MaintenanceTask{
			ID:           "mnt_1",
			AssetID:      "PRN-01",
			ScheduledFor: "2026-02-01",
			Type:         "Preventive",
			Cost:         149.90,
			Status:       models.MaintenanceScheduled,
		})
	}))
	defer srv.Close()
	t.Setenv("HCI_LEDGER_API_URL", srv.URL)

	cmd := addCmd()
	_ = cmd.Flags().Set("date", "2026-02-01")
	_ = cmd.Flags().Set("type", "Preventive")
	_ = cmd.Flags().Set("cost", "149.90")

	var runErr error
	out := captureOutput(t, func() {
		runErr = cmd.RunE(cmd, []string{"PRN-01"})
	})
	if runErr != nil {
		t.Fatalf("RunE: %v", runErr)
	}
	if !strings.Contains(out, "Maintenance mnt_1 scheduled for PRN-01 on 2026-02-01") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestAddMaintenance_UnknownAsset(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	_ = os.WriteFile(tokenFile, []byte("jwt"), 0o600)
	t.Setenv("HCI_LEDGER_TOKEN_FILE", tokenFile)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Asset not found"}`))
	}))
	defer srv.Close()
	t.Setenv("HCI_LEDGER_API_URL", srv.URL)

	cmd := addCmd()
	err := cmd.RunE(cmd, []string{"ghost"})
	if err == nil || !strings.Contains(err.Error(), "status 404: Asset not found") {
		t.Errorf("unexpected error: %v", err)
	}
}
