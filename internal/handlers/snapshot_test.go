package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/hci-ledger/internal/persist"
	"github.com/crucial707/hci-ledger/internal/repo"
)

func TestLedgerHandler_Export(t *testing.T) {
	h := newTestHandler(t)
	addAsset(t, h, map[string]any{"assetId": "A-1"})

	rr := httptest.NewRecorder()
	h.Export(rr, httptest.NewRequest("GET", "/export", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "inventory-export.json") {
		t.Errorf("Content-Disposition: got %q", cd)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := out["auditLog"]; !ok {
		t.Errorf("export missing auditLog: %s", rr.Body)
	}
}

func TestLedgerHandler_Import(t *testing.T) {
	src := newTestHandler(t)
	addAsset(t, src, map[string]any{"assetId": "A-1"})
	addAsset(t, src, map[string]any{"assetId": "A-2"})
	exported := httptest.NewRecorder()
	src.Export(exported, httptest.NewRequest("GET", "/export", nil))

	dst := newTestHandler(t)
	addAsset(t, dst, map[string]any{"assetId": "OLD"})

	rr := httptest.NewRecorder()
	dst.Import(rr, httptest.NewRequest("POST", "/import", strings.NewReader(exported.Body.String())))
	if rr.Code != http.StatusOK {
		t.Fatalf("import status: got %d (%s)", rr.Code, rr.Body)
	}
	var counts map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&counts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if counts["assets"] != 2 || counts["auditLog"] != 2 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if _, err := dst.Ledger.Asset("OLD"); err == nil {
		t.Error("import should replace existing assets")
	}
}

func TestLedgerHandler_Import_RejectsGarbage(t *testing.T) {
	h := newTestHandler(t)
	addAsset(t, h, map[string]any{"assetId": "A-1"})

	rr := httptest.NewRecorder()
	h.Import(rr, httptest.NewRequest("POST", "/import", strings.NewReader("{not json")))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
	if _, err := h.Ledger.Asset("A-1"); err != nil {
		t.Errorf("garbage import touched the ledger: %v", err)
	}
}

func TestLedgerHandler_Import_RejectsNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `"oops"`, `42`, `null`, `   `} {
		t.Run(body, func(t *testing.T) {
			store := repo.NewMemorySnapshotStore()
			h := newTestHandler(t)
			addAsset(t, h, map[string]any{"assetId": "A-1"})
			h.Persister = persist.New(store, nil)

			rr := httptest.NewRecorder()
			h.Import(rr, httptest.NewRequest("POST", "/import", strings.NewReader(body)))
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rr.Code)
			}
			if n := len(h.Ledger.State().Assets); n != 1 {
				t.Errorf("assets after rejected import: got %d, want 1", n)
			}
			if data, _ := store.Load(context.Background()); data != nil {
				t.Errorf("rejected import was persisted: %s", data)
			}
		})
	}
}
