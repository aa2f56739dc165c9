package incident

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/viewstate"
)

const (
	Panel         = "incidents"
	AnonymousUser = "Anonymous"
)

// Options configures the incident panel.
type Options struct {
	Logger   *slog.Logger
	Metrics  viewstate.Recorder
	Retry    viewstate.RetryPolicy
	Activity activity.Recorder
	Events   viewstate.EventCounter
	Now      func() time.Time
	IDFunc   func() string
}

// Service handles incident reports.
type Service struct {
	mu        sync.Mutex
	incidents *viewstate.Controller[Incident]
	activity  activity.Recorder
	events    viewstate.EventCounter
	logger    *slog.Logger
}

// NewService creates the incident panel. gateway may be nil.
func NewService(gateway viewstate.Gateway[Incident], opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		incidents: viewstate.NewController(viewstate.Config[Incident]{
			Panel:  Panel,
			Schema: Schema,
			Fields: ReportFields(),
			Template: func() Incident {
				t := now()
				return Incident{
					Status:     StatusActive,
					Date:       t.Format(time.DateOnly),
					Time:       t.Format("15:04"),
					ReportedBy: AnonymousUser,
					ReportedAt: t,
				}
			},
			Gateway:  gateway,
			Retry:    opts.Retry,
			Metrics:  opts.Metrics,
			Logger:   logger,
			Describe: func(i Incident) string { return string(i.Type) + ": " + i.Description },
			IDFunc:   opts.IDFunc,
		}),
		activity: opts.Activity,
		events:   opts.Events,
		logger:   logger,
	}
}

// Load fetches incidents.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incidents.Load(ctx)
}

// Seed fills an empty store.
func (s *Service) Seed(ctx context.Context, incidents []Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.incidents.Seed(ctx, incidents)
	return err
}

// List returns incidents matching filter, newest first.
func (s *Service) List(filter Filter) []Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := viewstate.Criteria{Query: filter.Query, SortBy: "reported", Descending: true}
	c = c.With("type", string(filter.Type))
	c = c.With("status", string(filter.Status))
	return s.incidents.Filter(c)
}

// StatusCounts tallies incidents per status.
func (s *Service) StatusCounts() map[Status]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[Status]int{}
	for k, n := range s.incidents.Count("status") {
		out[Status(k)] = n
	}
	return out
}

// Get returns one incident.
func (s *Service) Get(id string) (Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.incidents.Get(id)
	if !ok {
		return Incident{}, ErrIncidentNotFound
	}
	return i, nil
}

// Report files a new incident. Date and time default to now.
func (s *Service) Report(ctx context.Context, req ReportRequest) (Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inc, err := s.incidents.Create(ctx, req.values())
	if err != nil {
		return Incident{}, fmt.Errorf("reporting incident: %w", err)
	}
	s.reported(ctx, inc)
	return inc, nil
}

// UpdateStatus moves an incident through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status, note *string) (Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.incidents.Get(id)
	if !ok {
		return Incident{}, ErrIncidentNotFound
	}
	if err := ValidateTransition(cur.Status, to, note); err != nil {
		return Incident{}, err
	}
	inc, err := s.incidents.Replace(ctx, id, withStatus(cur, to, note))
	if errors.Is(err, viewstate.ErrNotFound) {
		return Incident{}, ErrIncidentNotFound
	}
	if err != nil {
		return Incident{}, fmt.Errorf("updating incident status: %w", err)
	}
	s.logger.Info("incident status changed", "id", id, "from", cur.Status, "to", to)
	if s.activity != nil {
		s.activity.Record(ctx, Panel, id, activity.TypeIncidentStatus, fmt.Sprintf("%s → %s", cur.Status, to))
	}
	return inc, nil
}

// Delete removes an incident.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.incidents.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrIncidentNotFound
	}
	return nil
}

func (s *Service) reported(ctx context.Context, inc Incident) {
	s.logger.Info("incident reported", "id", inc.ID, "type", inc.Type)
	if s.activity != nil {
		s.activity.Record(ctx, Panel, inc.ID, activity.TypeIncidentReported, string(inc.Type))
	}
	if s.events != nil {
		s.events.Event("incident_reported")
	}
}

func withStatus(i Incident, to Status, note *string) Incident {
	i.Status = to
	switch {
	case to == StatusResolved && note != nil:
		i.ResolutionNote = *note
	case to == StatusActive:
		i.ResolutionNote = ""
	}
	return i
}

func (r ReportRequest) values() map[string]string {
	v := map[string]string{
		"type":        string(r.Type),
		"description": r.Description,
	}
	if r.Date != "" {
		v["date"] = r.Date
	}
	if r.Time != "" {
		v["time"] = r.Time
	}
	if r.ReportedBy != "" {
		v["reported_by"] = r.ReportedBy
	}
	if r.Latitude != nil {
		v["latitude"] = strconv.FormatFloat(*r.Latitude, 'f', -1, 64)
	}
	if r.Longitude != nil {
		v["longitude"] = strconv.FormatFloat(*r.Longitude, 'f', -1, 64)
	}
	return v
}
