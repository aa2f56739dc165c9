package resource

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/viewstate"
)

const Panel = "resources"

// Options configures the resource library.
type Options struct {
	Logger   *slog.Logger
	Metrics  viewstate.Recorder
	Retry    viewstate.RetryPolicy
	Activity activity.Recorder
}

// Service handles the safety resource library.
type Service struct {
	mu       sync.Mutex
	library  *viewstate.Controller[Resource]
	activity activity.Recorder
	logger   *slog.Logger
}

// NewService creates the library. gateway may be nil.
func NewService(gateway viewstate.Gateway[Resource], opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		library: viewstate.NewController(viewstate.Config[Resource]{
			Panel:    Panel,
			Schema:   Schema,
			Gateway:  gateway,
			Retry:    opts.Retry,
			Metrics:  opts.Metrics,
			Logger:   logger,
			Describe: func(r Resource) string { return r.Title },
		}),
		activity: opts.Activity,
		logger:   logger,
	}
}

// Load fetches the library.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.library.Load(ctx)
}

// Seed fills an empty library.
func (s *Service) Seed(ctx context.Context, items []Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.library.Seed(ctx, items)
	return err
}

// List returns resources matching filter.
func (s *Service) List(filter Filter) []Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := viewstate.Criteria{Query: filter.Query, SortBy: filter.SortBy, Descending: filter.Descending}
	c = c.With("category", filter.Category)
	c = c.With("file_type", string(filter.FileType))
	if filter.FeaturedOnly {
		c = c.With("featured", "true")
	}
	return s.library.Filter(c)
}

// Featured returns featured resources.
func (s *Service) Featured() []Resource {
	return s.List(Filter{FeaturedOnly: true})
}

// Get returns one resource.
func (s *Service) Get(id string) (Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.library.Get(id)
	if !ok {
		return Resource{}, ErrResourceNotFound
	}
	return r, nil
}

// Categories returns every known category with its item count, followed by
// any category that only appears in the data.
func (s *Service) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := s.library.Count("category")
	out := make([]Category, 0, len(Categories))
	seen := map[string]bool{}
	for _, name := range Categories {
		out = append(out, category(name, counts[name]))
		seen[name] = true
	}
	for _, r := range s.library.List() {
		if !seen[r.Category] {
			out = append(out, category(r.Category, counts[r.Category]))
			seen[r.Category] = true
		}
	}
	return out
}

func category(name string, n int) Category {
	p := CategoryPalette.Lookup(name)
	return Category{Name: name, Color: p.Color, Icon: p.Icon, Count: n}
}

// RecordDownload bumps the download counter of a resource.
func (s *Service) RecordDownload(ctx context.Context, id string) (Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok, err := s.library.Update(ctx, id, func(r Resource) Resource {
		r.Downloads++
		return r
	})
	if err != nil {
		return Resource{}, fmt.Errorf("recording download: %w", err)
	}
	if !ok {
		return Resource{}, ErrResourceNotFound
	}
	if s.activity != nil {
		s.activity.Record(ctx, Panel, id, activity.TypeResourceDownload, r.Title)
	}
	return r, nil
}
