package procurement

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

func TestRequestProcurement(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("jwt"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HCI_LEDGER_TOKEN_FILE", tokenFile)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/procurement" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["itemName"] != "Laser Cutter" || payload["requestedBy"] != "pat" || payload["costCenter"] != "RND" {
			t.Errorf("unexpected payload: %v", payload)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.ProcurementRequest{
			ID:       "proc_1",
			ItemName: "Laser Cutter",
			Status:   models.ProcurementPendingTeamLead,
		})
	}))
	defer srv.Close()
	t.Setenv("HCI_LEDGER_API_URL", srv.URL)

	cmd := requestCmd()
	_ = cmd.Flags().Set("by", "pat")
	_ = cmd.Flags().Set("item", "Laser Cutter")
	_ = cmd.Flags().Set("why", "Capacity")
	_ = cmd.Flags().Set("cost-center", "RND")

	var runErr error
	out := captureOutput(t, func() {
		runErr = cmd.RunE(cmd, nil)
	})
	if runErr != nil {
		t.Fatalf("RunE: %v", runErr)
	}
	if !strings.Contains(out, "Procurement request proc_1 is pending_team_lead") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestRequestProcurement_RequiresLogin(t *testing.T) {
	t.Setenv("HCI_LEDGER_TOKEN_FILE", filepath.Join(t.TempDir(), "missing"))
	t.Setenv("HCI_LEDGER_API_URL", "http://127.0.0.1:0")

	cmd := requestCmd()
	if err := cmd.RunE(cmd, nil); err == nil || !strings.Contains(err.Error(), "login") {
		t.Errorf("expected not-logged-in error, got %v", err)
	}
}
