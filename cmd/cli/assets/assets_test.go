package assets

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

// captureOutput helps capture stdout during command execution.
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

func TestListAssets_TableOutput(t *testing.T) {
	assets := []models.Asset{
		{AssetID: "PRN-01", Category: "3D Printer", Status: models.StatusAvailable, ConditionScore: 5, Tags: []string{"fdm"}},
		{AssetID: "SCP-02", Category: "Oscilloscope", Status: models.StatusCheckedOut, ConditionScore: 4, Tags: []string{}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(assets)
	}))
	defer srv.Close()

	t.Setenv("HCI_LEDGER_API_URL", srv.URL)

	cmd := listAssetsCmd()

	var runErr error
	out := captureOutput(t, func() {
		runErr = cmd.RunE(cmd, []string{})
	})
	if runErr != nil {
		t.Fatalf("RunE: %v", runErr)
	}

	if !strings.Contains(out, "PRN-01") || !strings.Contains(out, "SCP-02") {
		t.Fatalf("expected asset IDs in output, got: %s", out)
	}
}

func TestListAssets_JSONOutput(t *testing.T) {
	assets := []models.Asset{
		{AssetID: "PRN-01", Status: models.StatusAvailable, Tags: []string{}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "available" {
			t.Errorf("status filter: got %q", got)
		}
		_ = json.NewEncoder(w).Encode(assets)
	}))
	defer srv.Close()

	t.Setenv("HCI_LEDGER_API_URL", srv.URL)

	cmd := listAssetsCmd()
	_ = cmd.Flags().Set("json", "true")
	_ = cmd.Flags().Set("status", "available")

	out := captureOutput(t, func() {
		_ = cmd.RunE(cmd, []string{})
	})

	if !strings.Contains(out, `"assetId": "PRN-01"`) {
		t.Fatalf("expected JSON output, got: %s", out)
	}
}

func TestAddAsset_SendsTokenAndPayload(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("jwt-123\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HCI_LEDGER_TOKEN_FILE", tokenFile)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/assets" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer jwt-123" {
			t.Errorf("Authorization: got %q", got)
		}
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["assetId"] != "PRN-01" || payload["tags"] != "fdm,large" {
			t.Errorf("unexpected payload: %v", payload)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Asset{AssetID: "PRN-01", Status: models.StatusAvailable})
	}))
	defer srv.Close()
	t.Setenv("HCI_LEDGER_API_URL", srv.URL)

	cmd := addAssetCmd()
	_ = cmd.Flags().Set("tags", "fdm,large")

	var runErr error
	out := captureOutput(t, func() {
		runErr = cmd.RunE(cmd, []string{"PRN-01"})
	})
	if runErr != nil {
		t.Fatalf("RunE: %v", runErr)
	}
	if !strings.Contains(out, "Asset PRN-01 added") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestAddAsset_APIError(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	_ = os.WriteFile(tokenFile, []byte("jwt"), 0o600)
	t.Setenv("HCI_LEDGER_TOKEN_FILE", tokenFile)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Asset ID is required and must be unique"}`))
	}))
	defer srv.Close()
	t.Setenv("HCI_LEDGER_API_URL", srv.URL)

	cmd := addAssetCmd()
	err := cmd.RunE(cmd, []string{"PRN-01"})
	if err == nil || !strings.Contains(err.Error(), "must be unique") {
		t.Errorf("expected API error message, got %v", err)
	}
}

func TestAddAsset_RequiresLogin(t *testing.T) {
	t.Setenv("HCI_LEDGER_TOKEN_FILE", filepath.Join(t.TempDir(), "missing"))
	t.Setenv("HCI_LEDGER_API_URL", "http://127.0.0.1:0")

	cmd := addAssetCmd()
	if err := cmd.RunE(cmd, []string{"PRN-01"}); err == nil || !strings.Contains(err.Error(), "login") {
		t.Errorf("expected not-logged-in error, got %v", err)
	}
}
