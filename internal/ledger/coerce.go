package ledger

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseNumber converts free-form numeric input. Blank input yields fallback;
// anything that is not a finite number is a validation error.
func ParseNumber(raw string, fallback float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, validationError("Invalid number: " + raw)
	}
	return n, nil
}

// ParseTags splits a comma-separated list, trimming entries and dropping blanks.
func ParseTags(csv string) []string {
	return NormalizeTags(strings.Split(csv, ","))
}

// NormalizeTags trims every tag and drops the empty ones. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// instantLayouts are tried in order by ParseInstant.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseInstant parses an RFC 3339 timestamp, a local-less datetime (read as UTC)
// or a bare date. The result is UTC with millisecond precision.
func ParseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return normalizeInstant(t), nil
		}
	}
	return time.Time{}, validationError(msgInvalidRange)
}

func normalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
