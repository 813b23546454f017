package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crucial707/hci-ledger/internal/config"
	"github.com/crucial707/hci-ledger/internal/handlers"
	"github.com/crucial707/hci-ledger/internal/ledger"
	"github.com/crucial707/hci-ledger/internal/middleware"
	"github.com/crucial707/hci-ledger/internal/persist"
	"github.com/crucial707/hci-ledger/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxImportBytes caps snapshot uploads on POST /import.
const maxImportBytes = 32 << 20

// newRouter wires every route. auditRepo may be nil when the store has no
// durable audit mirror; GET /audit/history is then not mounted.
func newRouter(l *ledger.Ledger, p *persist.Persister, auditRepo *repo.AuditRepo, cfg config.Config) http.Handler {
	secret := []byte(cfg.JWTSecret)

	ledgerHandler := &handlers.LedgerHandler{Ledger: l, Persister: p}
	authHandler := &handlers.AuthHandler{
		APIToken: cfg.APIToken,
		Secret:   secret,
		TTL:      time.Duration(cfg.JWTExpireHours) * time.Hour,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != ""))
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.With(middleware.TokenRateLimiter().Middleware, middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).
		Post("/auth/token", authHandler.IssueToken)

	// Reads are open.
	r.Get("/state", ledgerHandler.GetState)
	r.Get("/assets", ledgerHandler.ListAssets)
	r.Get("/assets/{assetId}", ledgerHandler.GetAsset)
	r.Get("/overdue", ledgerHandler.ListOverdue)
	r.Get("/audit", ledgerHandler.ListAudit)
	r.Get("/export", ledgerHandler.Export)
	if auditRepo != nil {
		history := &handlers.AuditHistoryHandler{Repo: auditRepo}
		r.Get("/audit/history", history.ListHistory)
	}

	// Mutations need a token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWT(secret))
		r.Use(middleware.PerMinute(cfg.RateLimitPerMinute).Middleware)

		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
			r.Post("/assets", ledgerHandler.AddAsset)
			r.Post("/assets/{assetId}/checkout", ledgerHandler.CheckoutAsset)
			r.Post("/assets/{assetId}/checkin", ledgerHandler.CheckinAsset)
			r.Post("/assets/{assetId}/reservations", ledgerHandler.ReserveAsset)
			r.Post("/assets/{assetId}/maintenance", ledgerHandler.AddMaintenanceTask)
			r.Post("/procurement", ledgerHandler.CreateProcurementRequest)
		})

		r.With(middleware.MaxBytes(maxImportBytes)).Post("/import", ledgerHandler.Import)
	})

	return r
}
