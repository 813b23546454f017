package middleware

import "net/http"

// DefaultMaxBodyBytes caps request bodies at 1 MiB. Snapshot imports use
// a larger limit set on their route.
const DefaultMaxBodyBytes = 1 << 20

// MaxBytes limits the request body size; oversize bodies fail to decode and
// the handler answers 400 or 413.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
