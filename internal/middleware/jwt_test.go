package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWT(t *testing.T) {
	secret := []byte("test-secret")
	valid, err := IssueToken(secret, "sam", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	expired, err := IssueToken(secret, "sam", -time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	foreign, err := IssueToken([]byte("other-secret"), "sam", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "sam"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"alg none", "Bearer " + none, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor string
			h := JWT(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				actor = Actor(r.Context())
			}))
			req := httptest.NewRequest("POST", "/assets", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Errorf("status: got %d, want %d", rr.Code, tt.status)
			}
			if tt.status == http.StatusOK && actor != "sam" {
				t.Errorf("actor: got %q, want sam", actor)
			}
		})
	}
}

func TestIssueToken_RequiresSubject(t *testing.T) {
	if _, err := IssueToken([]byte("s"), "", time.Hour); err == nil {
		t.Error("expected error for empty subject")
	}
}
