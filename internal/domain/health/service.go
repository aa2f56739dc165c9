package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/viewstate"
)

const (
	PanelProviders   = "providers"
	PanelMedications = "medications"
)

// Options configures the health panel.
type Options struct {
	Logger   *slog.Logger
	Metrics  viewstate.Recorder
	Retry    viewstate.RetryPolicy
	Activity activity.Recorder
	IDFunc   func() string
}

// Service handles the healthcare directory and the medication schedule.
type Service struct {
	mu          sync.Mutex
	providers   *viewstate.Controller[Provider]
	medications *viewstate.Controller[Medication]
	activity    activity.Recorder
	logger      *slog.Logger
}

// NewService creates the health panel. Either gateway may be nil.
func NewService(providers viewstate.Gateway[Provider], medications viewstate.Gateway[Medication], opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		providers: viewstate.NewController(viewstate.Config[Provider]{
			Panel:    PanelProviders,
			Schema:   ProviderSchema,
			Gateway:  providers,
			Retry:    opts.Retry,
			Metrics:  opts.Metrics,
			Logger:   logger,
			Describe: func(p Provider) string { return p.Name },
		}),
		medications: viewstate.NewController(viewstate.Config[Medication]{
			Panel:    PanelMedications,
			Schema:   MedicationSchema,
			Fields:   MedicationFields(),
			Template: func() Medication { return Medication{Status: DoseUpcoming} },
			Gateway:  medications,
			Retry:    opts.Retry,
			Metrics:  opts.Metrics,
			Logger:   logger,
			Describe: func(m Medication) string { return m.Name },
			IDFunc:   opts.IDFunc,
		}),
		activity: opts.Activity,
		logger:   logger,
	}
}

// Load fetches providers and medications.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.providers.Load(ctx); err != nil {
		return err
	}
	return s.medications.Load(ctx)
}

// Seed fills whichever store is empty.
func (s *Service) Seed(ctx context.Context, providers []Provider, medications []Medication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.providers.Seed(ctx, providers); err != nil {
		return err
	}
	_, err := s.medications.Seed(ctx, medications)
	return err
}

// ListProviders returns providers matching filter.
func (s *Service) ListProviders(filter ProviderFilter) []Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := viewstate.Criteria{Query: filter.Query, SortBy: filter.SortBy, Descending: filter.Descending}
	c = c.With("type", string(filter.Type))
	return s.providers.Filter(c)
}

// ProviderCounts tallies providers per type for the directory chips.
func (s *Service) ProviderCounts() map[ProviderType]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[ProviderType]int{}
	for k, n := range s.providers.Count("type") {
		out[ProviderType(k)] = n
	}
	return out
}

// GetProvider returns one provider.
func (s *Service) GetProvider(id string) (Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.providers.Get(id)
	if !ok {
		return Provider{}, ErrProviderNotFound
	}
	return p, nil
}

// Schedule returns today's medications in time order.
func (s *Service) Schedule() Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule()
}

// GetMedication returns one medication.
func (s *Service) GetMedication(id string) (Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.medications.Get(id)
	if !ok {
		return Medication{}, ErrMedicationNotFound
	}
	return m, nil
}

// AddMedication validates and schedules a new medication as upcoming.
func (s *Service) AddMedication(ctx context.Context, req MedicationRequest) (Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.medications.Create(ctx, map[string]string{
		"name":         req.Name,
		"time":         req.Time,
		"dosage":       req.Dosage,
		"instructions": req.Instructions,
	})
	if err != nil {
		return Medication{}, fmt.Errorf("adding medication: %w", err)
	}
	s.logger.Info("medication added", "id", m.ID, "time", m.Time)
	return m, nil
}

// MarkTaken records an upcoming dose as taken.
func (s *Service) MarkTaken(ctx context.Context, id string) (Medication, error) {
	return s.transition(ctx, id, DoseTaken, activity.TypeMedicationTaken)
}

// Skip records an upcoming dose as missed.
func (s *Service) Skip(ctx context.Context, id string) (Medication, error) {
	return s.transition(ctx, id, DoseMissed, activity.TypeMedicationMissed)
}

// ResetSchedule starts a new day: every dose is upcoming again.
func (s *Service) ResetSchedule(ctx context.Context) (Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.medications.List() {
		if m.Status == DoseUpcoming {
			continue
		}
		if _, _, err := s.medications.Update(ctx, m.ID, func(m Medication) Medication {
			m.Status = DoseUpcoming
			return m
		}); err != nil {
			return s.schedule(), fmt.Errorf("resetting schedule: %w", err)
		}
	}
	return s.schedule(), nil
}

// DeleteMedication removes a medication from the schedule.
func (s *Service) DeleteMedication(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.medications.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrMedicationNotFound
	}
	return nil
}

func (s *Service) transition(ctx context.Context, id string, to DoseStatus, typ activity.ActivityType) (Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.medications.Get(id)
	if !ok {
		return Medication{}, ErrMedicationNotFound
	}
	if cur.Status != DoseUpcoming {
		return Medication{}, fmt.Errorf("%w: %s is %s", ErrInvalidTransition, cur.Name, cur.Status)
	}
	cur.Status = to
	m, err := s.medications.Replace(ctx, id, cur)
	if err != nil {
		return Medication{}, fmt.Errorf("updating dose: %w", err)
	}
	s.logger.Info("dose recorded", "id", id, "status", to)
	if s.activity != nil {
		s.activity.Record(ctx, PanelMedications, id, typ, m.Name+" at "+m.Time)
	}
	return m, nil
}

func (s *Service) schedule() Schedule {
	meds := s.medications.Filter(viewstate.Criteria{SortBy: "time"})
	out := Schedule{Medications: meds}
	for _, m := range meds {
		switch m.Status {
		case DoseUpcoming:
			out.Due++
		case DoseTaken:
			out.Taken++
		case DoseMissed:
			out.Missed++
		}
	}
	return out
}
