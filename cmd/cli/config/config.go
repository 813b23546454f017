package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenFileName = ".hci_ledger_token"
)

// ErrNotLoggedIn is returned by ReadToken when no token is stored.
var ErrNotLoggedIn = errors.New("not logged in: run 'hci-ledger login' first")

// APIURL returns the base URL for the ledger API.
// It can be overridden with the HCI_LEDGER_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("HCI_LEDGER_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// TokenPath is ~/.hci_ledger_token unless HCI_LEDGER_TOKEN_FILE is set.
func TokenPath() string {
	if v := os.Getenv("HCI_LEDGER_TOKEN_FILE"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return tokenFileName
	}
	return filepath.Join(home, tokenFileName)
}

// SaveToken stores the JWT readable by the current user only.
func SaveToken(token string) error {
	return os.WriteFile(TokenPath(), []byte(token), 0o600)
}

func ReadToken() (string, error) {
	b, err := os.ReadFile(TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// DeleteToken removes the stored token. A missing file is not an error.
func DeleteToken() error {
	err := os.Remove(TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
