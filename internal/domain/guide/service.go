package guide

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ganot/nirapod/internal/viewstate"
)

const Panel = "guides"

// Schema searches title, description, author and category.
var Schema = viewstate.Schema[Guide]{
	Searchable: func(g Guide) []string { return []string{g.Title, g.Description, g.Author, g.Category} },
	Fields: map[string]func(Guide) string{
		"category":   func(g Guide) string { return g.Category },
		"difficulty": func(g Guide) string { return string(g.Difficulty) },
	},
	Sorts: map[string]func(a, b Guide) int{
		"views": func(a, b Guide) int { return cmp.Compare(a.Views, b.Views) },
		"likes": func(a, b Guide) int { return cmp.Compare(a.Likes, b.Likes) },
		"title": func(a, b Guide) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) },
	},
}

// DifficultyPalette maps difficulty to its badge.
var DifficultyPalette = viewstate.NewPalette(
	viewstate.Presentation{Label: "Unrated", Color: "gray"},
	map[Difficulty]viewstate.Presentation{
		Beginner:     {Label: "Beginner", Color: "green"},
		Intermediate: {Label: "Intermediate", Color: "yellow"},
		Advanced:     {Label: "Advanced", Color: "red"},
	},
)

// Options configures the guides panel.
type Options struct {
	Logger  *slog.Logger
	Metrics viewstate.Recorder
	Retry   viewstate.RetryPolicy
}

// Service handles the guide library and the guide being read.
type Service struct {
	mu     sync.Mutex
	guides *viewstate.Controller[Guide]
	cursor *viewstate.Cursor
	liked  map[string]bool
	logger *slog.Logger
}

// NewService creates the guides panel. gateway may be nil.
func NewService(gateway viewstate.Gateway[Guide], opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		guides: viewstate.NewController(viewstate.Config[Guide]{
			Panel:    Panel,
			Schema:   Schema,
			Gateway:  gateway,
			Retry:    opts.Retry,
			Metrics:  opts.Metrics,
			Logger:   logger,
			Describe: func(g Guide) string { return g.Title },
		}),
		liked:  map[string]bool{},
		logger: logger,
	}
}

// Load fetches the guides.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guides.Load(ctx)
}

// Seed fills an empty library.
func (s *Service) Seed(ctx context.Context, guides []Guide) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.guides.Seed(ctx, guides)
	return err
}

// List returns guides matching filter.
func (s *Service) List(filter Filter) []Guide {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := viewstate.Criteria{Query: filter.Query, SortBy: filter.SortBy, Descending: filter.Descending}
	c = c.With("category", filter.Category)
	c = c.With("difficulty", string(filter.Difficulty))
	return s.guides.Filter(c)
}

// CategoryCounts tallies guides per category.
func (s *Service) CategoryCounts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guides.Count("category")
}

// Open selects a guide for reading, counts the view and starts on its first section.
func (s *Service) Open(ctx context.Context, id string) (Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok, err := s.guides.Update(ctx, id, func(g Guide) Guide {
		g.Views++
		return g
	})
	if err != nil {
		return Reading{}, fmt.Errorf("opening guide: %w", err)
	}
	if !ok {
		return Reading{}, ErrGuideNotFound
	}
	if _, err := s.guides.Select(id); err != nil {
		return Reading{}, err
	}
	s.cursor = viewstate.NewCursor(len(g.Sections))
	return s.reading(g), nil
}

// Close returns to the guide list.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guides.CloseDetail()
	s.cursor = nil
}

// Current returns the open guide at its current section.
func (s *Service) Current() (Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.open()
	if err != nil {
		return Reading{}, err
	}
	return s.reading(g), nil
}

// NextSection moves forward, stopping at the last section.
func (s *Service) NextSection() (Reading, error) {
	return s.step(1)
}

// PrevSection moves back, stopping at the first section.
func (s *Service) PrevSection() (Reading, error) {
	return s.step(-1)
}

// GoToSection jumps to section i, clamped to the guide.
func (s *Service) GoToSection(i int) (Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.open()
	if err != nil {
		return Reading{}, err
	}
	s.cursor.Move(i - s.cursor.Pos())
	return s.reading(g), nil
}

func (s *Service) step(delta int) (Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.open()
	if err != nil {
		return Reading{}, err
	}
	s.cursor.Move(delta)
	return s.reading(g), nil
}

// ToggleLike likes or unlikes a guide.
func (s *Service) ToggleLike(ctx context.Context, id string) (Guide, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	liked := !s.liked[id]
	g, ok, err := s.guides.Update(ctx, id, func(g Guide) Guide {
		if liked {
			g.Likes++
		} else {
			g.Likes = max(g.Likes-1, 0)
		}
		return g
	})
	if err != nil {
		return Guide{}, false, fmt.Errorf("liking guide: %w", err)
	}
	if !ok {
		return Guide{}, false, ErrGuideNotFound
	}
	s.liked[id] = liked
	return g, liked, nil
}

func (s *Service) open() (Guide, error) {
	g, ok := s.guides.Detail()
	if !ok || s.cursor == nil {
		return Guide{}, ErrNoGuideOpen
	}
	s.cursor.Resize(len(g.Sections))
	return g, nil
}

func (s *Service) reading(g Guide) Reading {
	r := Reading{
		Guide: g,
		Index: s.cursor.Pos(),
		Total: s.cursor.Len(),
		First: s.cursor.First(),
		Last:  s.cursor.Last(),
		Liked: s.liked[g.ID],
	}
	if r.Total > 0 {
		r.Section = g.Sections[r.Index]
	}
	return r
}
