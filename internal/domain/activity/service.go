package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/nirapod/internal/viewstate"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.ActivityType == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// Record logs a panel event without failing the caller.
func (s *Service) Record(ctx context.Context, panel string, recordID string, typ ActivityType, summary string) {
	if s == nil {
		return
	}
	entry := &ActivityEntry{Panel: panel, ActivityType: typ, Summary: summary}
	if recordID != "" {
		entry.RecordID = &recordID
	}
	if err := s.LogActivity(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("activity not recorded", "panel", panel, "type", typ, "error", err)
	}
}

// Observer adapts controller change notifications into activity entries.
func (s *Service) Observer() viewstate.Observer {
	return func(ctx context.Context, change viewstate.Change) {
		s.Record(ctx, change.Panel, change.ID, changeType(change.Kind), change.Summary)
	}
}

// GetRecentActivity lists activity entries with filtering.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	return s.repo.List(ctx, opts)
}

func changeType(kind viewstate.ChangeKind) ActivityType {
	switch kind {
	case viewstate.ChangeCreated:
		return TypeRecordCreated
	case viewstate.ChangeDeleted:
		return TypeRecordDeleted
	default:
		return TypeRecordUpdated
	}
}
