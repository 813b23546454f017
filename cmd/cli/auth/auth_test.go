package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLogin_StoresToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	t.Setenv("HCI_LEDGER_TOKEN_FILE", tokenFile)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not send a bearer token")
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["username"] != "sam" || in["apiToken"] != "shared" {
			t.Errorf("unexpected payload: %v", in)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "jwt-abc", "expiresAt": "2026-01-02T00:00:00Z"})
	}))
	defer srv.Close()
	t.Setenv("HCI_LEDGER_API_URL", srv.URL)

	cmd := loginCmd()
	_ = cmd.Flags().Set("username", "sam")
	_ = cmd.Flags().Set("api-token", "shared")
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("login: %v", err)
	}

	b, err := os.ReadFile(tokenFile)
	if err != nil || string(b) != "jwt-abc" {
		t.Fatalf("stored token: %q, %v", b, err)
	}

	logout := logoutCmd()
	if err := logout.RunE(logout, nil); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := os.Stat(tokenFile); !os.IsNotExist(err) {
		t.Errorf("token file still present: %v", err)
	}
}

func TestLogin_RequiresUsername(t *testing.T) {
	cmd := loginCmd()
	if err := cmd.RunE(cmd, nil); err == nil {
		t.Error("expected error without username")
	}
}
