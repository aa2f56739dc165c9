package rideshare

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/viewstate"
)

const Panel = "rides"

// Options configures the tracker.
type Options struct {
	Logger   *slog.Logger
	Metrics  viewstate.Recorder
	Retry    viewstate.RetryPolicy
	Activity activity.Recorder
	Events   viewstate.EventCounter
	Now      func() time.Time
	IDFunc   func() string
}

// Tracker follows one ride at a time and keeps the trip history.
type Tracker struct {
	mu       sync.Mutex
	form     *viewstate.Form[Ride]
	tabs     *viewstate.Tabs[Tab]
	trips    *viewstate.Controller[Trip]
	current  *Ride
	activity activity.Recorder
	events   viewstate.EventCounter
	now      func() time.Time
	logger   *slog.Logger
}

// NewTracker creates a tracker with no current ride. gateway may be nil.
func NewTracker(gateway viewstate.Gateway[Trip], opts Options) *Tracker {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	t := &Tracker{
		form: viewstate.NewForm(newRide, RideFields()...),
		tabs: viewstate.NewTabs(TabNewRide, TabCurrentRide, TabHistory),
		trips: viewstate.NewController(viewstate.Config[Trip]{
			Panel:   Panel,
			Schema:  TripSchema,
			Gateway: gateway,
			Retry:   opts.Retry,
			Metrics: opts.Metrics,
			Logger:  logger,
			Describe: func(t Trip) string {
				return fmt.Sprintf("%s to %s", t.DriverName, t.Destination)
			},
			IDFunc: opts.IDFunc,
		}),
		activity: opts.Activity,
		events:   opts.Events,
		now:      now,
		logger:   logger,
	}
	t.tabs.Guard(TabCurrentRide, func() bool { return t.current != nil })
	return t
}

// Load fetches the trip history.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.trips.Load(ctx)
}

// Seed fills an empty history.
func (t *Tracker) Seed(ctx context.Context, trips []Trip) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.trips.Seed(ctx, trips)
	return err
}

// Tab returns the active tab.
func (t *Tracker) Tab() Tab {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tabs.Current()
}

// SetTab switches tabs. The current-ride tab is reachable without a ride and
// then shows its empty state.
func (t *Tracker) SetTab(tab Tab) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tabs.Go(tab)
}

// TabEnabled reports whether tab has content.
func (t *Tracker) TabEnabled(tab Tab) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tabs.Enabled(tab)
}

// SetRideField writes into the new-ride draft, opening it if needed.
func (t *Tracker) SetRideField(name, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.form.IsOpen() {
		if err := t.form.OpenCreate(); err != nil {
			return err
		}
	}
	return t.form.Set(name, value)
}

// RideDraft returns the draft and whether it can be submitted.
func (t *Tracker) RideDraft() (Ride, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.form.IsOpen() {
		return newRide(), false
	}
	draft, _ := t.form.Draft()
	return draft, t.form.CanSubmit()
}

// DiscardRide clears the new-ride draft.
func (t *Tracker) DiscardRide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.form.Discard()
}

// SubmitRide starts tracking the drafted ride.
func (t *Tracker) SubmitRide(ctx context.Context) (Ride, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.submit(ctx)
}

// StartRide fills a fresh form from values and submits it. A draft being
// built with SetRideField is left alone and the call fails with
// viewstate.ErrDraftOpen.
func (t *Tracker) StartRide(ctx context.Context, values map[string]string) (Ride, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current != nil {
		return Ride{}, ErrRideInProgress
	}
	if err := t.form.OpenCreate(); err != nil {
		return Ride{}, err
	}
	defer t.form.Discard()
	for name, v := range values {
		if err := t.form.Set(name, v); err != nil {
			return Ride{}, fmt.Errorf("%w: %s", err, name)
		}
	}
	return t.submit(ctx)
}

func (t *Tracker) submit(ctx context.Context) (Ride, error) {
	if t.current != nil {
		return Ride{}, ErrRideInProgress
	}
	ride, _, err := t.form.Submission()
	if err != nil {
		return Ride{}, err
	}
	ride.StartedAt = t.now()
	ride.SharingLocation = true
	t.current = &ride
	t.form.Discard()
	_ = t.tabs.Go(TabCurrentRide)

	t.logger.Info("ride started", "company", ride.Company, "destination", ride.Destination)
	t.record(ctx, "", activity.TypeRideStarted, fmt.Sprintf("Ride with %s to %s", ride.DriverName, ride.Destination))
	t.count("ride_started")
	return ride, nil
}

// CurrentRide returns the tracked ride.
func (t *Tracker) CurrentRide() (Ride, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Ride{}, false
	}
	return *t.current, true
}

// ToggleSharing flips location sharing for the current ride.
func (t *Tracker) ToggleSharing() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return false, ErrNoCurrentRide
	}
	t.current.SharingLocation = !t.current.SharingLocation
	return t.current.SharingLocation, nil
}

// EndRide moves the current ride into the history as completed.
func (t *Tracker) EndRide(ctx context.Context) (Trip, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finish(ctx, TripCompleted)
}

// CancelRide moves the current ride into the history as cancelled.
func (t *Tracker) CancelRide(ctx context.Context) (Trip, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finish(ctx, TripCancelled)
}

func (t *Tracker) finish(ctx context.Context, status TripStatus) (Trip, error) {
	if t.current == nil {
		return Trip{}, ErrNoCurrentRide
	}
	ride := *t.current
	trip, err := t.trips.Add(ctx, Trip{
		Date:            ride.StartedAt.Format(time.DateOnly),
		Time:            ride.StartedAt.Format("15:04"),
		DriverName:      ride.DriverName,
		VehicleNumber:   ride.VehicleNumber,
		VehicleModel:    ride.VehicleModel,
		PickupLocation:  ride.PickupLocation,
		Destination:     ride.Destination,
		DurationMinutes: DurationMinutes(ride.StartedAt, t.now()),
		Status:          status,
		Company:         ride.Company,
		StartedAt:       ride.StartedAt,
	})
	if err != nil {
		return Trip{}, fmt.Errorf("saving trip: %w", err)
	}
	t.current = nil
	_ = t.tabs.Go(TabHistory)

	typ, kind := activity.TypeRideEnded, "ride_ended"
	if status == TripCancelled {
		typ, kind = activity.TypeRideCancelled, "ride_cancelled"
	}
	t.logger.Info("ride finished", "id", trip.ID, "status", status, "minutes", trip.DurationMinutes)
	t.record(ctx, trip.ID, typ, fmt.Sprintf("Ride with %s, %d min", trip.DriverName, trip.DurationMinutes))
	t.count(kind)
	return trip, nil
}

// History returns trips matching filter, newest first.
func (t *Tracker) History(filter HistoryFilter) []Trip {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := viewstate.Criteria{Query: filter.Query, SortBy: "started", Descending: true}
	c = c.With("company", string(filter.Company))
	c = c.With("status", string(filter.Status))
	return t.trips.Filter(c)
}

// GetTrip returns one trip.
func (t *Tracker) GetTrip(id string) (Trip, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	trip, ok := t.trips.Get(id)
	if !ok {
		return Trip{}, ErrTripNotFound
	}
	return trip, nil
}

// DeleteTrip removes a trip from the history.
func (t *Tracker) DeleteTrip(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	removed, err := t.trips.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrTripNotFound
	}
	return nil
}

// DurationMinutes is the elapsed time rounded to whole minutes, never negative.
func DurationMinutes(start, end time.Time) int {
	if start.IsZero() || end.Before(start) {
		return 0
	}
	return int(math.Round(end.Sub(start).Minutes()))
}

func (t *Tracker) record(ctx context.Context, id string, typ activity.ActivityType, summary string) {
	if t.activity != nil {
		t.activity.Record(ctx, Panel, id, typ, summary)
	}
}

func (t *Tracker) count(kind string) {
	if t.events != nil {
		t.events.Event(kind)
	}
}
