package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crucial707/hci-ledger/cmd/cli/config"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// Get fetches path and decodes the JSON response into out.
func Get(path string, out interface{}) error {
	body, err := Raw("GET", path, nil, false)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// Post sends payload as JSON with the stored token and decodes the answer into out (may be nil).
func Post(path string, payload, out interface{}) error {
	return post(path, payload, out, true)
}

// PostAnonymous is Post without the stored token, for login.
func PostAnonymous(path string, payload, out interface{}) error {
	return post(path, payload, out, false)
}

func post(path string, payload, out interface{}, authenticated bool) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body, err := Raw("POST", path, data, authenticated)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// Raw performs a request and returns the response body. With authenticated
// set it fails early when no token is stored.
func Raw(method, path string, body []byte, authenticated bool) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, config.APIURL()+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		token, err := config.ReadToken()
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(respBody)}
	}
	return respBody, nil
}

func errorMessage(body []byte) string {
	var out struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Error == "" {
		return string(bytes.TrimSpace(body))
	}
	if len(out.Fields) > 0 {
		return fmt.Sprintf("%s %v", out.Error, out.Fields)
	}
	return out.Error
}
