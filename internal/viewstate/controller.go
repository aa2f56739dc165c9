package viewstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Config configures a Controller.
type Config[T Entity[T]] struct {
	Panel    string
	Schema   Schema[T]
	Fields   []Field[T]
	Template func() T
	// Gateway may be nil for panels that never leave memory.
	Gateway Gateway[T]
	Retry   RetryPolicy
	Metrics Recorder
	Logger  *slog.Logger
	// Describe renders a one-line summary for change notifications.
	Describe func(T) string
	IDFunc   func() string
}

// Controller is the view-state of one panel: store, filter criteria,
// selection, and form draft. It is not safe for concurrent use.
type Controller[T Entity[T]] struct {
	panel    string
	store    *Store[T]
	schema   Schema[T]
	nav      *Navigator
	form     *Form[T]
	gateway  Gateway[T]
	retry    RetryPolicy
	metrics  Recorder
	logger   *slog.Logger
	describe func(T) string

	criteria  Criteria
	observers []Observer
	onRemove  []func(context.Context, string) error
}

// NewController builds a controller from cfg.
func NewController[T Entity[T]](cfg Config[T]) *Controller[T] {
	retry := cfg.Retry
	if retry == (RetryPolicy{}) {
		retry = DefaultRetryPolicy()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	describe := cfg.Describe
	if describe == nil {
		describe = func(rec T) string { return rec.EntityID() }
	}
	var opts []StoreOption
	if cfg.IDFunc != nil {
		opts = append(opts, WithIDGenerator(cfg.IDFunc))
	}
	return &Controller[T]{
		panel:    cfg.Panel,
		store:    NewStore[T](opts...),
		schema:   cfg.Schema,
		nav:      NewNavigator(),
		form:     NewForm(cfg.Template, cfg.Fields...),
		gateway:  cfg.Gateway,
		retry:    retry,
		metrics:  cfg.Metrics,
		logger:   logger.With("panel", cfg.Panel),
		describe: describe,
	}
}

// Panel returns the panel name.
func (c *Controller[T]) Panel() string { return c.panel }

// Observe registers fn for committed changes.
func (c *Controller[T]) Observe(fn Observer) {
	c.observers = append(c.observers, fn)
}

// OnRemove registers a cascade run after a record is removed.
func (c *Controller[T]) OnRemove(fn func(ctx context.Context, id string) error) {
	c.onRemove = append(c.onRemove, fn)
}

// Load replaces the store with the gateway contents, retrying with backoff.
func (c *Controller[T]) Load(ctx context.Context) error {
	if c.gateway == nil {
		return nil
	}
	var records []T
	err := c.timed("load", func() error {
		return Retry(ctx, c.retry, func(ctx context.Context) error {
			var err error
			records, err = c.gateway.FetchAll(ctx)
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("loading %s: %w", c.panel, err)
	}
	c.store.Reset(records)
	c.logger.Debug("panel loaded", "records", len(records))
	return nil
}

// Seed adds records when the store is empty. It reports whether seeding ran.
func (c *Controller[T]) Seed(ctx context.Context, records []T) (bool, error) {
	if c.store.Len() > 0 {
		return false, nil
	}
	for _, rec := range records {
		if _, err := c.add(ctx, rec, false); err != nil {
			return true, fmt.Errorf("seeding %s: %w", c.panel, err)
		}
	}
	return true, nil
}

// List returns every record in store order.
func (c *Controller[T]) List() []T { return c.store.List() }

// Get returns the record with the given id.
func (c *Controller[T]) Get(id string) (T, bool) { return c.store.Get(id) }

// Len returns the number of records.
func (c *Controller[T]) Len() int { return c.store.Len() }

// Criteria returns the current filter state.
func (c *Controller[T]) Criteria() Criteria { return c.criteria }

// SetCriteria replaces the filter state.
func (c *Controller[T]) SetCriteria(criteria Criteria) { c.criteria = criteria }

// SetQuery sets the free-text query.
func (c *Controller[T]) SetQuery(q string) { c.criteria.Query = q }

// SetSelector sets a categorical selector; an empty value clears it.
func (c *Controller[T]) SetSelector(field, value string) {
	c.criteria = c.criteria.With(field, value)
}

// SetSort sets the sort key and direction.
func (c *Controller[T]) SetSort(key string, descending bool) {
	c.criteria.SortBy = key
	c.criteria.Descending = descending
}

// ClearFilters resets the criteria.
func (c *Controller[T]) ClearFilters() { c.criteria = Criteria{} }

// Visible returns the records matching the current criteria.
func (c *Controller[T]) Visible() []T {
	return Apply(c.store.List(), c.schema, c.criteria)
}

// Filter applies criteria without touching the panel's own filter state.
func (c *Controller[T]) Filter(criteria Criteria) []T {
	return Apply(c.store.List(), c.schema, criteria)
}

// Count tallies records per value of a selector field.
func (c *Controller[T]) Count(field string) map[string]int {
	return Count(c.store.List(), c.schema, field)
}

// State returns the selection and view mode.
func (c *Controller[T]) State() State { return c.nav.State() }

// Select moves to the detail view of id. The id need not exist.
func (c *Controller[T]) Select(id string) (State, error) { return c.nav.Select(id) }

// CloseDetail returns to the list.
func (c *Controller[T]) CloseDetail() (State, error) { return c.nav.Close() }

// Detail returns the selected record. A selection that is not in the store
// yields the zero record and false.
func (c *Controller[T]) Detail() (T, bool) {
	st := c.nav.State()
	if st.SelectedID == "" {
		var zero T
		return zero, false
	}
	return c.store.Get(st.SelectedID)
}

// Form exposes the draft buffer for rendering.
func (c *Controller[T]) Form() *Form[T] { return c.form }

// BeginCreate opens an empty draft.
func (c *Controller[T]) BeginCreate() error {
	if err := c.form.OpenCreate(); err != nil {
		return err
	}
	if _, err := c.nav.Create(); err != nil {
		c.form.Discard()
		return err
	}
	return nil
}

// BeginEdit opens a draft of the selected record.
func (c *Controller[T]) BeginEdit() error {
	st := c.nav.State()
	if st.Mode != ModeViewing {
		return ErrInvalidTransition
	}
	rec, ok := c.store.Get(st.SelectedID)
	if !ok {
		return ErrNotFound
	}
	if err := c.form.OpenEdit(st.SelectedID, rec); err != nil {
		return err
	}
	if _, err := c.nav.Edit(); err != nil {
		c.form.Discard()
		return err
	}
	return nil
}

// SetField writes into the open draft.
func (c *Controller[T]) SetField(name, value string) error {
	return c.form.Set(name, value)
}

// Commit validates the draft and writes it to the store and gateway.
// On failure the store is unchanged and the draft stays open.
func (c *Controller[T]) Commit(ctx context.Context) (T, error) {
	rec, id, err := c.form.Submission()
	if err != nil {
		var zero T
		return zero, err
	}
	var saved T
	if id == "" {
		saved, err = c.Add(ctx, rec)
	} else {
		saved, err = c.Replace(ctx, id, rec)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	c.form.Discard()
	if mode := c.nav.State().Mode; mode == ModeCreating || mode == ModeEditing {
		_, _ = c.nav.Save()
	}
	return saved, nil
}

// Discard drops the draft and leaves the form view.
func (c *Controller[T]) Discard() {
	c.form.Discard()
	if mode := c.nav.State().Mode; mode == ModeCreating || mode == ModeEditing {
		_, _ = c.nav.Cancel()
	}
}

// Create runs a full create-draft cycle from field values.
func (c *Controller[T]) Create(ctx context.Context, values map[string]string) (T, error) {
	var zero T
	if err := c.form.OpenCreate(); err != nil {
		return zero, err
	}
	defer c.form.Discard()
	if err := c.fill(values); err != nil {
		return zero, err
	}
	rec, _, err := c.form.Submission()
	if err != nil {
		return zero, err
	}
	return c.Add(ctx, rec)
}

// Edit runs a full edit-draft cycle, changing only the given fields.
func (c *Controller[T]) Edit(ctx context.Context, id string, values map[string]string) (T, error) {
	var zero T
	rec, ok := c.store.Get(id)
	if !ok {
		return zero, ErrNotFound
	}
	if err := c.form.OpenEdit(id, rec); err != nil {
		return zero, err
	}
	defer c.form.Discard()
	if err := c.fill(values); err != nil {
		return zero, err
	}
	draft, _, err := c.form.Submission()
	if err != nil {
		return zero, err
	}
	return c.Replace(ctx, id, draft)
}

// Add stores rec and creates it through the gateway, rolling back on failure.
func (c *Controller[T]) Add(ctx context.Context, rec T) (T, error) {
	return c.add(ctx, rec, true)
}

// Update patches the record in place. An absent id is a no-op reporting false.
func (c *Controller[T]) Update(ctx context.Context, id string, patch func(T) T) (T, bool, error) {
	prev, ok := c.store.Get(id)
	if !ok {
		var zero T
		return zero, false, nil
	}
	next, _ := c.store.Update(id, patch)
	if c.gateway != nil {
		var saved T
		err := c.timed("patch", func() error {
			return WithTimeout(ctx, c.retry.Timeout, func(ctx context.Context) error {
				var err error
				saved, err = c.gateway.Patch(ctx, id, next)
				return err
			})
		})
		if err != nil {
			c.store.Replace(id, prev)
			c.logger.Warn("patch rolled back", "id", id, "error", err)
			var zero T
			return zero, true, fmt.Errorf("updating %s %s: %w", c.panel, id, err)
		}
		next, _ = c.store.Update(id, func(T) T { return saved })
	}
	c.notify(ctx, ChangeUpdated, next)
	return next, true, nil
}

// Replace swaps the stored record for rec, failing with ErrNotFound when absent.
func (c *Controller[T]) Replace(ctx context.Context, id string, rec T) (T, error) {
	saved, ok, err := c.Update(ctx, id, func(T) T { return rec })
	if err != nil {
		return saved, err
	}
	if !ok {
		return saved, ErrNotFound
	}
	return saved, nil
}

// Remove deletes the record, rolling back on gateway failure, then runs the
// registered cascades. It reports false for an absent id.
func (c *Controller[T]) Remove(ctx context.Context, id string) (bool, error) {
	rec, pos, ok := c.store.Remove(id)
	if !ok {
		return false, nil
	}
	if c.gateway != nil {
		err := c.timed("delete", func() error {
			return WithTimeout(ctx, c.retry.Timeout, func(ctx context.Context) error {
				return c.gateway.Delete(ctx, id)
			})
		})
		if err != nil {
			c.store.Insert(pos, rec)
			c.logger.Warn("delete rolled back", "id", id, "error", err)
			return false, fmt.Errorf("deleting %s %s: %w", c.panel, id, err)
		}
	}

	if c.form.IsOpen() && c.form.EditingID() == id {
		c.form.Discard()
	}
	if c.nav.State().SelectedID == id {
		c.nav.Reset()
	}

	var errs []error
	for _, cascade := range c.onRemove {
		if err := cascade(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	c.notify(ctx, ChangeDeleted, rec)
	if err := errors.Join(errs...); err != nil {
		return true, fmt.Errorf("cascading %s delete: %w", c.panel, err)
	}
	return true, nil
}

func (c *Controller[T]) add(ctx context.Context, rec T, notify bool) (T, error) {
	var zero T
	stored, err := c.store.Add(rec)
	if err != nil {
		return zero, err
	}
	if c.gateway != nil {
		var saved T
		err := c.timed("create", func() error {
			return WithTimeout(ctx, c.retry.Timeout, func(ctx context.Context) error {
				var err error
				saved, err = c.gateway.Create(ctx, stored)
				return err
			})
		})
		if err != nil {
			c.store.Remove(stored.EntityID())
			c.logger.Warn("create rolled back", "id", stored.EntityID(), "error", err)
			return zero, fmt.Errorf("creating %s: %w", c.panel, err)
		}
		stored, _ = c.store.Update(stored.EntityID(), func(T) T { return saved })
	}
	if notify {
		c.notify(ctx, ChangeCreated, stored)
	}
	return stored, nil
}

func (c *Controller[T]) fill(values map[string]string) error {
	for name := range values {
		if _, ok := c.form.field(name); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	for _, field := range c.form.Fields() {
		if v, ok := values[field.Name]; ok {
			if err := c.form.Set(field.Name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Controller[T]) notify(ctx context.Context, kind ChangeKind, rec T) {
	change := Change{Panel: c.panel, Kind: kind, ID: rec.EntityID(), Summary: c.describe(rec)}
	for _, fn := range c.observers {
		fn(ctx, change)
	}
}

func (c *Controller[T]) timed(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	if c.metrics != nil {
		c.metrics.Observe(c.panel, op, err == nil, time.Since(start))
	}
	return err
}
