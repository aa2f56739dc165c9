package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ganot/nirapod/internal/repository"
	"github.com/ganot/nirapod/internal/viewstate"
)

// Gateway implements viewstate.Gateway over the panel_records table.
// Each record is stored as a JSON document under its panel name.
type Gateway[T viewstate.Entity[T]] struct {
	db    *DB
	panel string
}

// NewGateway creates a gateway for one panel.
func NewGateway[T viewstate.Entity[T]](db *DB, panel string) *Gateway[T] {
	return &Gateway[T]{db: db, panel: panel}
}

// FetchAll returns the panel's records in insertion order
func (g *Gateway[T]) FetchAll(ctx context.Context) ([]T, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT payload FROM panel_records WHERE panel = ? ORDER BY position, created_at`,
		g.panel)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", g.panel, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", g.panel, err)
		}
		var rec T
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", g.panel, repository.ErrInvalidInput)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", g.panel, err)
	}
	return records, nil
}

// Create appends a record after the panel's last position
func (g *Gateway[T]) Create(ctx context.Context, rec T) (T, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("failed to encode %s: %w", g.panel, repository.ErrInvalidInput)
	}
	now := time.Now()

	query := `
		INSERT INTO panel_records (panel, id, position, payload, created_at, modified_at)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1, ?, ?, ?
		FROM panel_records WHERE panel = ?
	`
	_, err = g.db.ExecContext(ctx, query, g.panel, rec.EntityID(), string(payload), now, now, g.panel)
	if err != nil {
		if isUniqueViolation(err) {
			return rec, repository.ErrDuplicate
		}
		return rec, fmt.Errorf("failed to create %s: %w", g.panel, err)
	}
	return rec, nil
}

// Patch overwrites the stored document, keeping its position
func (g *Gateway[T]) Patch(ctx context.Context, id string, rec T) (T, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("failed to encode %s: %w", g.panel, repository.ErrInvalidInput)
	}

	result, err := g.db.ExecContext(ctx,
		`UPDATE panel_records SET payload = ?, modified_at = ? WHERE panel = ? AND id = ?`,
		string(payload), time.Now(), g.panel, id)
	if err != nil {
		return rec, fmt.Errorf("failed to update %s: %w", g.panel, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return rec, repository.ErrNotFound
	}
	return rec, nil
}

// Delete removes a record
func (g *Gateway[T]) Delete(ctx context.Context, id string) error {
	result, err := g.db.ExecContext(ctx,
		`DELETE FROM panel_records WHERE panel = ? AND id = ?`, g.panel, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", g.panel, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
