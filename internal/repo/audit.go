package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/crucial707/hci-ledger/internal/models"
)

// AuditRepo mirrors ledger audit entries into the audit_log table.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo returns a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Append stores one entry. Entries already present are left alone.
func (r *AuditRepo) Append(ctx context.Context, e models.AuditEntry) error {
	details := []byte("{}")
	if e.Details != nil {
		var err error
		if details, err = json.Marshal(e.Details); err != nil {
			return fmt.Errorf("encode audit details: %w", err)
		}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (entry_id, action, details, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (entry_id) DO NOTHING`,
		e.ID, string(e.Action), string(details), e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit entry %s: %w", e.ID, err)
	}
	return nil
}

// List returns mirrored audit entries, newest first.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT entry_id, action, details, created_at FROM audit_log ORDER BY created_at DESC, seq DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var (
			e       models.AuditEntry
			action  string
			details []byte
		)
		if err := rows.Scan(&e.ID, &action, &details, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Action = models.AuditAction(action)
		if err := json.Unmarshal(details, &e.Details); err != nil {
			return nil, fmt.Errorf("decode audit details %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
