package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/nirapod/internal/domain/activity"
)

// ActivityRepository implements activity.Repository for Postgres.
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO activity_log (panel, record_id, activity_type, summary, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		entry.Panel, entry.RecordID, string(entry.ActivityType), entry.Summary, entry.Details, createdAt.UTC(),
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	entry.CreatedAt = createdAt
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	query := `SELECT id, panel, record_id, activity_type, summary, details, created_at FROM activity_log`
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if opts.Panel != "" {
		conditions = append(conditions, "panel = "+arg(opts.Panel))
	}
	if opts.RecordID != nil {
		conditions = append(conditions, "record_id = "+arg(*opts.RecordID))
	}
	if opts.ActivityType != nil {
		conditions = append(conditions, "activity_type = "+arg(string(*opts.ActivityType)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if opts.Limit > 0 {
		query += " LIMIT " + arg(opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET " + arg(opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []activity.ActivityEntry{}
	for rows.Next() {
		var entry activity.ActivityEntry
		var recordID, details sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Panel, &recordID, &entry.ActivityType, &entry.Summary, &details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if recordID.Valid {
			entry.RecordID = &recordID.String
		}
		entry.Details = details.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return entries, nil
}
