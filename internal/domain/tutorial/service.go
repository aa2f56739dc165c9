package tutorial

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ganot/nirapod/internal/viewstate"
)

const Panel = "tutorials"

// Schema searches title, description, instructor and tags.
var Schema = viewstate.Schema[Tutorial]{
	Searchable: func(t Tutorial) []string {
		return append([]string{t.Title, t.Description, t.Instructor}, t.Tags...)
	},
	Fields: map[string]func(Tutorial) string{
		"level":    func(t Tutorial) string { return t.Level },
		"category": func(t Tutorial) string { return t.Category },
	},
	Sorts: map[string]func(a, b Tutorial) int{
		"views":  func(a, b Tutorial) int { return cmp.Compare(a.Views, b.Views) },
		"rating": func(a, b Tutorial) int { return cmp.Compare(a.Rating, b.Rating) },
	},
}

// Options configures the tutorials panel.
type Options struct {
	Logger  *slog.Logger
	Metrics viewstate.Recorder
	Retry   viewstate.RetryPolicy
}

// Service handles video tutorials and their quizzes.
type Service struct {
	mu        sync.Mutex
	tutorials *viewstate.Controller[Tutorial]
	tabs      *viewstate.Tabs[Tab]
	logger    *slog.Logger
}

// NewService creates the tutorials panel. gateway may be nil.
func NewService(gateway viewstate.Gateway[Tutorial], opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		tutorials: viewstate.NewController(viewstate.Config[Tutorial]{
			Panel:    Panel,
			Schema:   Schema,
			Gateway:  gateway,
			Retry:    opts.Retry,
			Metrics:  opts.Metrics,
			Logger:   logger,
			Describe: func(t Tutorial) string { return t.Title },
		}),
		tabs:   viewstate.NewTabs(TabOverview, TabQuizzes, TabPractice, TabMaterials),
		logger: logger,
	}
	s.tabs.Guard(TabQuizzes, func() bool {
		t, ok := s.tutorials.Detail()
		return ok && len(t.Quiz) > 0
	})
	s.tabs.Guard(TabPractice, func() bool {
		t, ok := s.tutorials.Detail()
		return ok && len(t.Scenarios) > 0
	})
	return s
}

// Load fetches tutorials.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tutorials.Load(ctx)
}

// Seed fills an empty store.
func (s *Service) Seed(ctx context.Context, tutorials []Tutorial) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.tutorials.Seed(ctx, tutorials)
	return err
}

// List returns tutorials matching filter.
func (s *Service) List(filter Filter) []Tutorial {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := viewstate.Criteria{Query: filter.Query}
	c = c.With("level", filter.Level)
	c = c.With("category", filter.Category)
	return s.tutorials.Filter(c)
}

// Get returns one tutorial.
func (s *Service) Get(id string) (Tutorial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tutorials.Get(id)
	if !ok {
		return Tutorial{}, ErrTutorialNotFound
	}
	return t, nil
}

// Open shows a tutorial on its overview tab and counts the view.
func (s *Service) Open(ctx context.Context, id string) (Tutorial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok, err := s.tutorials.Update(ctx, id, func(t Tutorial) Tutorial {
		t.Views++
		return t
	})
	if err != nil {
		return Tutorial{}, fmt.Errorf("opening tutorial: %w", err)
	}
	if !ok {
		return Tutorial{}, ErrTutorialNotFound
	}
	if _, err := s.tutorials.Select(id); err != nil {
		return Tutorial{}, err
	}
	_ = s.tabs.Go(TabOverview)
	return t, nil
}

// Tab returns the active detail tab.
func (s *Service) Tab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tabs.Current()
}

// SetTab switches the detail tab of the open tutorial.
func (s *Service) SetTab(tab Tab) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tutorials.Detail(); !ok {
		return ErrNoTutorialOpen
	}
	return s.tabs.Go(tab)
}

// TabEnabled reports whether tab has content for the open tutorial.
func (s *Service) TabEnabled(tab Tab) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tabs.Enabled(tab)
}

// Grade scores a quiz attempt for a tutorial.
func (s *Service) Grade(id string, answers map[string]int) (Grade, error) {
	s.mu.Lock()
	t, ok := s.tutorials.Get(id)
	s.mu.Unlock()
	if !ok {
		return Grade{}, ErrTutorialNotFound
	}
	g, err := GradeQuiz(t.Quiz, answers)
	if err != nil {
		return Grade{}, err
	}
	s.logger.Debug("quiz graded", "tutorial", id, "score", g.Score, "total", g.Total)
	return g, nil
}

// QuizMarkers places the tutorial's questions on its timeline.
func (s *Service) QuizMarkers(id string) ([]Marker, error) {
	s.mu.Lock()
	t, ok := s.tutorials.Get(id)
	s.mu.Unlock()
	if !ok {
		return nil, ErrTutorialNotFound
	}
	return Markers(t.Quiz, t.Duration)
}
