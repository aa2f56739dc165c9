package profile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/viewstate"
)

const (
	Panel = "profile"
	// ID is the key of the single stored profile.
	ID = "me"
)

// Options configures the profile panel.
type Options struct {
	Logger   *slog.Logger
	Metrics  viewstate.Recorder
	Retry    viewstate.RetryPolicy
	Activity activity.Recorder
}

// Service holds the user's profile. Fields are edited one at a time:
// StartEdit opens a field, SaveEdit commits it and CancelEdit drops it.
type Service struct {
	mu       sync.Mutex
	profiles *viewstate.Controller[Profile]
	editing  string
	activity activity.Recorder
	logger   *slog.Logger
}

// NewService creates the profile panel. gateway may be nil.
func NewService(gateway viewstate.Gateway[Profile], opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		profiles: viewstate.NewController(viewstate.Config[Profile]{
			Panel:    Panel,
			Fields:   Fields(),
			Gateway:  gateway,
			Retry:    opts.Retry,
			Metrics:  opts.Metrics,
			Logger:   logger,
			Describe: func(p Profile) string { return p.Name },
		}),
		activity: opts.Activity,
		logger:   logger,
	}
}

// Load fetches the stored profile.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles.Load(ctx)
}

// Seed stores p when no profile exists yet.
func (s *Service) Seed(ctx context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = ID
	_, err := s.profiles.Seed(ctx, []Profile{p})
	return err
}

// Get returns the profile.
func (s *Service) Get() (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles.Get(ID)
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return p, nil
}

// StartEdit opens field for editing and returns its current value. Starting
// the field already being edited is a no-op; starting another one fails with
// viewstate.ErrDraftOpen until the open edit is saved or cancelled.
func (s *Service) StartEdit(field string) (EditState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !editable(field) {
		return EditState{}, fmt.Errorf("%w: %s", viewstate.ErrUnknownField, field)
	}
	if s.editing == field {
		return s.editState(), nil
	}
	if s.editing != "" {
		return EditState{}, viewstate.ErrDraftOpen
	}
	if _, ok := s.profiles.Get(ID); !ok {
		return EditState{}, ErrProfileNotFound
	}
	if _, err := s.profiles.Select(ID); err != nil {
		return EditState{}, err
	}
	if err := s.profiles.BeginEdit(); err != nil {
		return EditState{}, err
	}
	s.editing = field
	return s.editState(), nil
}

// Editing reports the open edit. Field is empty when nothing is being edited.
func (s *Service) Editing() EditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editState()
}

// SaveEdit writes value into the open field and stores the profile. A value
// that fails validation leaves the edit open.
func (s *Service) SaveEdit(ctx context.Context, value string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == "" {
		return Profile{}, viewstate.ErrNoDraft
	}
	field := s.editing
	if err := s.profiles.SetField(field, value); err != nil {
		return Profile{}, err
	}
	draft, _, err := s.profiles.Form().Submission()
	if err != nil {
		return Profile{}, fmt.Errorf("saving %s: %w", field, err)
	}
	// Only the edited field is written; preferences changed meanwhile are kept.
	set := fieldNamed(field)
	p, ok, err := s.profiles.Update(ctx, ID, func(p Profile) Profile {
		return set.Set(p, set.Get(draft))
	})
	if err != nil {
		return Profile{}, fmt.Errorf("saving %s: %w", field, err)
	}
	if !ok {
		s.cancel()
		return Profile{}, ErrProfileNotFound
	}
	s.cancel()
	s.logger.Info("profile field saved", "field", field)
	if s.activity != nil {
		s.activity.Record(ctx, Panel, ID, activity.TypeRecordUpdated, "Updated "+field)
	}
	return p, nil
}

// CancelEdit drops the open edit, if any.
func (s *Service) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
}

// SetSecurity changes security preferences.
func (s *Service) SetSecurity(ctx context.Context, update SecurityUpdate) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.profiles.Get(ID)
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	sec, err := update.apply(cur.Security)
	if err != nil {
		return Profile{}, err
	}
	cur.Security = sec
	p, err := s.profiles.Replace(ctx, ID, cur)
	if err != nil {
		return Profile{}, fmt.Errorf("updating security preferences: %w", err)
	}
	if s.activity != nil {
		s.activity.Record(ctx, Panel, ID, activity.TypeRecordUpdated, "Updated security preferences")
	}
	return p, nil
}

func (s *Service) cancel() {
	if s.editing == "" {
		return
	}
	s.profiles.Discard()
	_, _ = s.profiles.CloseDetail()
	s.editing = ""
}

func (s *Service) editState() EditState {
	if s.editing == "" {
		return EditState{}
	}
	return EditState{Field: s.editing, Value: s.profiles.Form().Value(s.editing)}
}

func editable(field string) bool {
	return fieldNamed(field).Name != ""
}

func fieldNamed(name string) viewstate.Field[Profile] {
	for _, f := range Fields() {
		if f.Name == name {
			return f
		}
	}
	return viewstate.Field[Profile]{}
}
