package contact

import (
	"log/slog"

	"github.com/ganot/nirapod/internal/viewstate"
)

// Options configures the contacts panel.
type Options struct {
	Logger   *slog.Logger
	Metrics  viewstate.Recorder
	Retry    viewstate.RetryPolicy
	Activity viewstate.Observer
	IDFunc   func() string
}

// ContactFilter narrows a contact listing.
type ContactFilter struct {
	Query         string
	Type          ContactType
	FavoritesOnly bool
	SortBy        string
	Descending    bool
}

func (f ContactFilter) criteria() viewstate.Criteria {
	c := viewstate.Criteria{Query: f.Query, SortBy: f.SortBy, Descending: f.Descending}
	c = c.With("type", string(f.Type))
	if f.FavoritesOnly {
		c = c.With("favorite", "true")
	}
	return c
}
