package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/crucial707/hci-ledger/internal/ledger"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeInput reads a JSON body into dst and runs struct validation. It writes
// the error response itself and reports whether the handler may continue.
func decodeInput(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var lerr *ledger.Error
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &lerr):
			writeLedgerError(w, lerr)
		case errors.As(err, &tooLarge):
			JSONError(w, "request body too large", http.StatusRequestEntityTooLarge)
		default:
			JSONError(w, "invalid JSON", http.StatusBadRequest)
		}
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			JSONError(w, err.Error(), http.StatusBadRequest)
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return false
	}
	return true
}

// numberField accepts a JSON number, a numeric string or a blank string.
// Blank and null leave it unset.
type numberField struct {
	value float64
	set   bool
}

func (n *numberField) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	v, err := ledger.ParseNumber(raw, 0)
	if err != nil {
		return err
	}
	n.value, n.set = v, true
	return nil
}

// Ptr returns nil when the field was not supplied.
func (n numberField) Ptr() *float64 {
	if !n.set {
		return nil
	}
	v := n.value
	return &v
}

// Or returns the value, or fallback when the field was not supplied.
func (n numberField) Or(fallback float64) float64 {
	if !n.set {
		return fallback
	}
	return n.value
}

// tagsField accepts either a comma-separated string or a list of strings.
type tagsField struct {
	list []string
	csv  string
}

func (t *tagsField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case len(b) > 0 && b[0] == '"':
		return json.Unmarshal(b, &t.csv)
	default:
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		t.list = list
		if t.list == nil {
			t.list = []string{}
		}
		return nil
	}
}
