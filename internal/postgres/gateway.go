package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ganot/nirapod/internal/repository"
	"github.com/ganot/nirapod/internal/viewstate"
)

// Gateway implements viewstate.Gateway over the panel_records table.
type Gateway[T viewstate.Entity[T]] struct {
	db    *DB
	panel string
}

// NewGateway creates a gateway for one panel.
func NewGateway[T viewstate.Entity[T]](db *DB, panel string) *Gateway[T] {
	return &Gateway[T]{db: db, panel: panel}
}

func (g *Gateway[T]) FetchAll(ctx context.Context) ([]T, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT payload FROM panel_records WHERE panel = $1 ORDER BY position, created_at`, g.panel)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", g.panel, err)
	}
	defer func() { _ = rows.Close() }()

	records := []T{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", g.panel, err)
		}
		var rec T
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", g.panel, repository.ErrInvalidInput)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", g.panel, err)
	}
	return records, nil
}

func (g *Gateway[T]) Create(ctx context.Context, rec T) (T, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("encode %s: %w", g.panel, repository.ErrInvalidInput)
	}
	now := time.Now().UTC()
	_, err = g.db.ExecContext(ctx, `
		INSERT INTO panel_records (panel, id, position, payload, created_at, modified_at)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1, $3, $4, $4
		FROM panel_records WHERE panel = $1`,
		g.panel, rec.EntityID(), string(payload), now)
	if err != nil {
		if isUniqueViolation(err) {
			return rec, repository.ErrDuplicate
		}
		return rec, fmt.Errorf("insert %s: %w", g.panel, err)
	}
	return rec, nil
}

func (g *Gateway[T]) Patch(ctx context.Context, id string, rec T) (T, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("encode %s: %w", g.panel, repository.ErrInvalidInput)
	}
	res, err := g.db.ExecContext(ctx,
		`UPDATE panel_records SET payload = $1, modified_at = $2 WHERE panel = $3 AND id = $4`,
		string(payload), time.Now().UTC(), g.panel, id)
	if err != nil {
		return rec, fmt.Errorf("update %s: %w", g.panel, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return rec, repository.ErrNotFound
	}
	return rec, nil
}

func (g *Gateway[T]) Delete(ctx context.Context, id string) error {
	res, err := g.db.ExecContext(ctx,
		`DELETE FROM panel_records WHERE panel = $1 AND id = $2`, g.panel, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", g.panel, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
