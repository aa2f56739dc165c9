package wellness

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/viewstate"
)

const (
	PanelMeditations = "meditations"
	PanelCrisis      = "crisis"

	completionKey = "meditation"
	defaultVolume = 80
)

// MeditationSchema searches title and description.
var MeditationSchema = viewstate.Schema[Meditation]{
	Searchable: func(m Meditation) []string { return []string{m.Title, m.Description} },
	Fields: map[string]func(Meditation) string{
		"category": func(m Meditation) string { return m.Category },
		"level":    func(m Meditation) string { return m.Level },
		"featured": func(m Meditation) string { return strconv.FormatBool(m.Featured) },
	},
	Sorts: map[string]func(a, b Meditation) int{
		"title": func(a, b Meditation) int { return cmp.Compare(a.Title, b.Title) },
	},
}

// CrisisSchema searches name, description and phone.
var CrisisSchema = viewstate.Schema[CrisisResource]{
	Searchable: func(c CrisisResource) []string { return []string{c.Name, c.Description, c.Phone} },
	Fields: map[string]func(CrisisResource) string{
		"category":  func(c CrisisResource) string { return c.Category },
		"available": func(c CrisisResource) string { return c.Available },
	},
}

// Options configures the wellness panel.
type Options struct {
	Logger   *slog.Logger
	Metrics  viewstate.Recorder
	Retry    viewstate.RetryPolicy
	Activity activity.Recorder
	Now      func() time.Time
}

// Service handles meditations, crisis resources and the meditation player.
type Service struct {
	mu          sync.Mutex
	meditations *viewstate.Controller[Meditation]
	crisis      *viewstate.Controller[CrisisResource]
	sections    *viewstate.Tabs[Section]
	sched       *viewstate.Scheduler
	activity    activity.Recorder
	now         func() time.Time
	logger      *slog.Logger

	player player
}

type player struct {
	state      PlayerState
	track      Meditation
	length     time.Duration
	elapsed    time.Duration
	resumedAt  time.Time
	volume     int
	muted      bool
	generation int
}

// NewService creates the wellness panel. Either gateway may be nil.
func NewService(meditationGW viewstate.Gateway[Meditation], crisisGW viewstate.Gateway[CrisisResource], opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		meditations: viewstate.NewController(viewstate.Config[Meditation]{
			Panel:    PanelMeditations,
			Schema:   MeditationSchema,
			Gateway:  meditationGW,
			Retry:    opts.Retry,
			Metrics:  opts.Metrics,
			Logger:   logger,
			Describe: func(m Meditation) string { return m.Title },
		}),
		crisis: viewstate.NewController(viewstate.Config[CrisisResource]{
			Panel:    PanelCrisis,
			Schema:   CrisisSchema,
			Gateway:  crisisGW,
			Retry:    opts.Retry,
			Metrics:  opts.Metrics,
			Logger:   logger,
			Describe: func(c CrisisResource) string { return c.Name },
		}),
		sections: viewstate.NewTabs(SectionCrisis, SectionMeditation),
		sched:    viewstate.NewScheduler(),
		activity: opts.Activity,
		now:      now,
		logger:   logger,
		player:   player{state: PlayerIdle, volume: defaultVolume},
	}
}

// Load fetches meditations and crisis resources.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.meditations.Load(ctx); err != nil {
		return err
	}
	return s.crisis.Load(ctx)
}

// Seed fills empty stores.
func (s *Service) Seed(ctx context.Context, meditations []Meditation, crisis []CrisisResource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.meditations.Seed(ctx, meditations); err != nil {
		return err
	}
	_, err := s.crisis.Seed(ctx, crisis)
	return err
}

// Section returns the active tab.
func (s *Service) Section() Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections.Current()
}

// SetSection switches tabs.
func (s *Service) SetSection(sec Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections.Go(sec)
}

// ListMeditations returns meditations matching filter.
func (s *Service) ListMeditations(filter MeditationFilter) []Meditation {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := viewstate.Criteria{Query: filter.Query}
	c = c.With("category", filter.Category)
	c = c.With("level", filter.Level)
	if filter.FeaturedOnly {
		c = c.With("featured", "true")
	}
	return s.meditations.Filter(c)
}

// GetMeditation returns one meditation.
func (s *Service) GetMeditation(id string) (Meditation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meditations.Get(id)
	if !ok {
		return Meditation{}, ErrMeditationNotFound
	}
	return m, nil
}

// ListCrisis returns crisis resources matching filter.
func (s *Service) ListCrisis(filter CrisisFilter) []CrisisResource {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := viewstate.Criteria{Query: filter.Query}.With("category", filter.Category)
	return s.crisis.Filter(c)
}

// GetCrisis returns one crisis resource.
func (s *Service) GetCrisis(id string) (CrisisResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crisis.Get(id)
	if !ok {
		return CrisisResource{}, ErrCrisisNotFound
	}
	return c, nil
}

// Play starts a meditation from the beginning, replacing whatever was playing.
// The session completes on its own once the track duration has elapsed.
func (s *Service) Play(ctx context.Context, id string) (PlayerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meditations.Get(id)
	if !ok {
		return PlayerStatus{}, ErrMeditationNotFound
	}
	length, err := ParseDuration(m.Duration)
	if err != nil {
		return PlayerStatus{}, fmt.Errorf("playing %s: %w", m.Title, err)
	}
	s.sched.Cancel(completionKey)
	s.player.generation++
	s.player.state = PlayerPlaying
	s.player.track = m
	s.player.length = length
	s.player.elapsed = 0
	s.player.resumedAt = s.now()
	s.schedule(ctx, length)
	if _, err := s.meditations.Select(id); err != nil {
		s.logger.Debug("meditation not selected", "id", id, "error", err)
	}
	s.logger.Info("meditation started", "id", id, "length", length)
	return s.status(), nil
}

// Pause holds the current position.
func (s *Service) Pause() (PlayerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player.state != PlayerPlaying {
		return s.status(), ErrNotPlaying
	}
	s.sched.Cancel(completionKey)
	s.player.elapsed = s.elapsed()
	s.player.state = PlayerPaused
	return s.status(), nil
}

// Resume continues a paused meditation.
func (s *Service) Resume(ctx context.Context) (PlayerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player.state != PlayerPaused {
		return s.status(), ErrNotPaused
	}
	s.player.state = PlayerPlaying
	s.player.resumedAt = s.now()
	s.schedule(ctx, s.player.length-s.player.elapsed)
	return s.status(), nil
}

// Stop resets the player.
func (s *Service) Stop() PlayerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel(completionKey)
	s.player.generation++
	s.player = player{state: PlayerIdle, volume: s.player.volume, muted: s.player.muted, generation: s.player.generation}
	if s.meditations.State().Mode == viewstate.ModeViewing {
		s.meditations.CloseDetail()
	}
	return s.status()
}

// Status returns a snapshot of the player.
func (s *Service) Status() PlayerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

// SetVolume sets the volume in [0, 100]. Zero mutes.
func (s *Service) SetVolume(v int) PlayerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.volume = min(max(v, 0), 100)
	s.player.muted = s.player.volume == 0
	return s.status()
}

// ToggleMute mutes or unmutes without losing the volume.
func (s *Service) ToggleMute() PlayerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.muted = !s.player.muted
	return s.status()
}

// Close cancels a pending completion.
func (s *Service) Close() {
	s.sched.Close()
}

func (s *Service) schedule(ctx context.Context, remaining time.Duration) {
	gen := s.player.generation
	ctx = context.WithoutCancel(ctx)
	s.sched.After(completionKey, max(remaining, 0), func() { s.complete(ctx, gen) })
}

func (s *Service) complete(ctx context.Context, gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player.generation != gen || s.player.state != PlayerPlaying {
		return
	}
	s.player.state = PlayerCompleted
	s.player.elapsed = s.player.length
	s.logger.Info("meditation completed", "id", s.player.track.ID)
	if s.activity != nil {
		s.activity.Record(ctx, PanelMeditations, s.player.track.ID, activity.TypeMeditationSession, s.player.track.Title)
	}
}

func (s *Service) elapsed() time.Duration {
	e := s.player.elapsed
	if s.player.state == PlayerPlaying {
		e += s.now().Sub(s.player.resumedAt)
	}
	return min(max(e, 0), s.player.length)
}

func (s *Service) status() PlayerStatus {
	st := PlayerStatus{
		State:  s.player.state,
		Volume: s.player.volume,
		Muted:  s.player.muted,
	}
	if s.player.state == PlayerIdle {
		return st
	}
	st.MeditationID = s.player.track.ID
	st.Title = s.player.track.Title
	st.Elapsed = s.elapsed()
	st.Remaining = s.player.length - st.Elapsed
	return st
}
