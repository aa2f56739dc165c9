package notification

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ganot/nirapod/internal/domain/alert"
	"github.com/ganot/nirapod/internal/viewstate"
)

const (
	Panel = "notifications"

	SOSTitle   = "SOS Alert Sent"
	SOSMessage = "Emergency services have been notified."
)

// Options configures the notification center.
type Options struct {
	Logger  *slog.Logger
	Metrics viewstate.Recorder
	Retry   viewstate.RetryPolicy
	Events  viewstate.EventCounter
	Now     func() time.Time
	IDFunc  func() string
}

// Service is the notification center.
type Service struct {
	mu     sync.Mutex
	notes  *viewstate.Controller[Notification]
	events viewstate.EventCounter
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates the notification center. gateway may be nil.
func NewService(gateway viewstate.Gateway[Notification], opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		notes: viewstate.NewController(viewstate.Config[Notification]{
			Panel:  Panel,
			Schema: Schema,
			Fields: PushFields(),
			Template: func() Notification {
				return Notification{Type: TypeInfo, Timestamp: now()}
			},
			Gateway:  gateway,
			Retry:    opts.Retry,
			Metrics:  opts.Metrics,
			Logger:   logger,
			Describe: func(n Notification) string { return n.Title },
			IDFunc:   opts.IDFunc,
		}),
		events: opts.Events,
		now:    now,
		logger: logger,
	}
}

// Load fetches notifications.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Load(ctx)
}

// Seed fills an empty store.
func (s *Service) Seed(ctx context.Context, notes []Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.notes.Seed(ctx, notes)
	return err
}

// List returns notifications matching filter, newest first. Entries with the
// same timestamp list the most recently added first.
func (s *Service) List(filter Filter) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := viewstate.Criteria{SortBy: "timestamp", Descending: true}
	c = c.With("type", string(filter.Type))
	if filter.UnreadOnly {
		c = c.With("read", "false")
	}
	records := slices.Clone(s.notes.List())
	slices.Reverse(records)
	return viewstate.Apply(records, Schema, c)
}

// Unread counts notifications not yet read.
func (s *Service) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Count("read")["false"]
}

// Get returns one notification.
func (s *Service) Get(id string) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes.Get(id)
	if !ok {
		return Notification{}, ErrNotificationNotFound
	}
	return n, nil
}

// Push adds an unread notification stamped with the current time.
func (s *Service) Push(ctx context.Context, req PushRequest) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := map[string]string{"title": req.Title, "message": req.Message}
	if req.Type != "" {
		values["type"] = string(req.Type)
	}
	n, err := s.notes.Create(ctx, values)
	if err != nil {
		return Notification{}, fmt.Errorf("pushing notification: %w", err)
	}
	s.pushed(n)
	return n, nil
}

// AlertSent announces a delivered SOS alert.
func (s *Service) AlertSent(ctx context.Context, a alert.Alert) {
	at := a.FinishedAt
	if at.IsZero() {
		at = s.now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.notes.Add(ctx, Notification{Title: SOSTitle, Message: SOSMessage, Type: TypeAlert, Timestamp: at})
	if err != nil {
		s.logger.Warn("sos notification not stored", "alert", a.ID, "error", err)
		return
	}
	s.pushed(n)
}

// MarkRead marks one notification as read.
func (s *Service) MarkRead(ctx context.Context, id string) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok, err := s.notes.Update(ctx, id, func(n Notification) Notification {
		n.Read = true
		return n
	})
	if err != nil {
		return Notification{}, fmt.Errorf("marking notification read: %w", err)
	}
	if !ok {
		return Notification{}, ErrNotificationNotFound
	}
	return n, nil
}

// MarkAllRead marks every unread notification as read and reports how many changed.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for _, n := range s.notes.List() {
		if n.Read {
			continue
		}
		if _, _, err := s.notes.Update(ctx, n.ID, func(n Notification) Notification {
			n.Read = true
			return n
		}); err != nil {
			return changed, fmt.Errorf("marking notifications read: %w", err)
		}
		changed++
	}
	return changed, nil
}

// Delete removes one notification.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.notes.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotificationNotFound
	}
	return nil
}

// ClearAll removes every notification and reports how many were removed.
func (s *Service) ClearAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleared := 0
	for _, n := range s.notes.List() {
		if _, err := s.notes.Remove(ctx, n.ID); err != nil {
			return cleared, fmt.Errorf("clearing notifications: %w", err)
		}
		cleared++
	}
	s.logger.Info("notifications cleared", "count", cleared)
	return cleared, nil
}

func (s *Service) pushed(n Notification) {
	s.logger.Info("notification pushed", "id", n.ID, "type", n.Type)
	if s.events != nil {
		s.events.Event("notification_pushed")
	}
}
