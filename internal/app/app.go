// Package app assembles the panels on top of the configured storage backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ganot/nirapod/internal/config"
	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/domain/alert"
	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/ganot/nirapod/internal/domain/guide"
	"github.com/ganot/nirapod/internal/domain/health"
	"github.com/ganot/nirapod/internal/domain/incident"
	"github.com/ganot/nirapod/internal/domain/notification"
	"github.com/ganot/nirapod/internal/domain/profile"
	"github.com/ganot/nirapod/internal/domain/resource"
	"github.com/ganot/nirapod/internal/domain/rideshare"
	"github.com/ganot/nirapod/internal/domain/tutorial"
	"github.com/ganot/nirapod/internal/domain/wellness"
	"github.com/ganot/nirapod/internal/metrics"
	"github.com/ganot/nirapod/internal/postgres"
	"github.com/ganot/nirapod/internal/sampledata"
	"github.com/ganot/nirapod/internal/sqlite"
	"github.com/ganot/nirapod/internal/viewstate"
)

// App holds every panel service. Services are safe for concurrent use.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Recorder

	Activity      *activity.Service
	Contacts      *contact.Service
	Alerts        *alert.Dispatcher
	Notifications *notification.Service
	Rides         *rideshare.Tracker
	Resources     *resource.Service
	Guides        *guide.Service
	Wellness      *wellness.Service
	Incidents     *incident.Service
	Tutorials     *tutorial.Service
	Profile       *profile.Service
	Health        *health.Service

	store *storage
	now   func() time.Time
}

// Options overrides the clock and id generation, mainly for tests.
type Options struct {
	Now    func() time.Time
	IDFunc func() string
}

// New opens storage, runs migrations, builds the panels and loads them.
// Empty panels are seeded with sample data when cfg.Sample.Seed is set.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store, err := openStorage(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	retry := viewstate.DefaultRetryPolicy()
	if cfg.Retry.Attempts > 0 {
		retry.Attempts = cfg.Retry.Attempts
	}

	rec := metrics.NewRecorder()
	activitySvc := activity.NewService(store.activityRepository(), logger.With("panel", "activity"))

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  rec,
		Activity: activitySvc,
		store:    store,
		now:      opts.Now,
	}
	if a.now == nil {
		a.now = time.Now
	}

	a.Contacts = contact.NewService(
		gateway[contact.Contact](store, contact.PanelContacts),
		gateway[contact.Group](store, contact.PanelGroups),
		contact.Options{
			Logger:   logger.With("panel", contact.PanelContacts),
			Metrics:  rec,
			Retry:    retry,
			Activity: activitySvc.Observer(),
			IDFunc:   opts.IDFunc,
		},
	)
	a.Notifications = notification.NewService(gateway[notification.Notification](store, notification.Panel), notification.Options{
		Logger:  logger.With("panel", notification.Panel),
		Metrics: rec,
		Retry:   retry,
		Events:  rec,
		Now:     opts.Now,
		IDFunc:  opts.IDFunc,
	})
	a.Alerts = alert.NewDispatcher(a.Contacts, alert.Options{
		Delay:    cfg.Timing.AlertDelay,
		Logger:   logger.With("panel", alert.Panel),
		Activity: activitySvc,
		Events:   rec,
		Now:      opts.Now,
		OnSent:   a.Notifications.AlertSent,
	})
	a.Rides = rideshare.NewTracker(gateway[rideshare.Trip](store, rideshare.Panel), rideshare.Options{
		Logger:   logger.With("panel", rideshare.Panel),
		Metrics:  rec,
		Retry:    retry,
		Activity: activitySvc,
		Events:   rec,
		Now:      opts.Now,
		IDFunc:   opts.IDFunc,
	})
	a.Resources = resource.NewService(gateway[resource.Resource](store, resource.Panel), resource.Options{
		Logger:   logger.With("panel", resource.Panel),
		Metrics:  rec,
		Retry:    retry,
		Activity: activitySvc,
	})
	a.Guides = guide.NewService(gateway[guide.Guide](store, guide.Panel), guide.Options{
		Logger:  logger.With("panel", guide.Panel),
		Metrics: rec,
		Retry:   retry,
	})
	a.Wellness = wellness.NewService(
		gateway[wellness.Meditation](store, wellness.PanelMeditations),
		gateway[wellness.CrisisResource](store, wellness.PanelCrisis),
		wellness.Options{
			Logger:   logger.With("panel", wellness.PanelMeditations),
			Metrics:  rec,
			Retry:    retry,
			Activity: activitySvc,
			Now:      opts.Now,
		},
	)
	a.Incidents = incident.NewService(gateway[incident.Incident](store, incident.Panel), incident.Options{
		Logger:   logger.With("panel", incident.Panel),
		Metrics:  rec,
		Retry:    retry,
		Activity: activitySvc,
		Events:   rec,
		Now:      opts.Now,
		IDFunc:   opts.IDFunc,
	})
	a.Tutorials = tutorial.NewService(gateway[tutorial.Tutorial](store, tutorial.Panel), tutorial.Options{
		Logger:  logger.With("panel", tutorial.Panel),
		Metrics: rec,
		Retry:   retry,
	})
	a.Profile = profile.NewService(gateway[profile.Profile](store, profile.Panel), profile.Options{
		Logger:   logger.With("panel", profile.Panel),
		Metrics:  rec,
		Retry:    retry,
		Activity: activitySvc,
	})
	a.Health = health.NewService(
		gateway[health.Provider](store, health.PanelProviders),
		gateway[health.Medication](store, health.PanelMedications),
		health.Options{
			Logger:   logger.With("panel", health.PanelMedications),
			Metrics:  rec,
			Retry:    retry,
			Activity: activitySvc,
			IDFunc:   opts.IDFunc,
		},
	)

	if err := a.load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if cfg.Sample.Seed {
		if err := a.seed(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *App) load(ctx context.Context) error {
	loaders := []struct {
		name string
		load func(context.Context) error
	}{
		{contact.PanelContacts, a.Contacts.Load},
		{rideshare.Panel, a.Rides.Load},
		{resource.Panel, a.Resources.Load},
		{guide.Panel, a.Guides.Load},
		{wellness.PanelMeditations, a.Wellness.Load},
		{incident.Panel, a.Incidents.Load},
		{tutorial.Panel, a.Tutorials.Load},
		{notification.Panel, a.Notifications.Load},
		{profile.Panel, a.Profile.Load},
		{health.PanelMedications, a.Health.Load},
	}
	for _, l := range loaders {
		if err := l.load(ctx); err != nil {
			return fmt.Errorf("load %s: %w", l.name, err)
		}
	}
	a.Logger.Info("panels loaded", "driver", a.Config.DB.Driver)
	return nil
}

func (a *App) seed(ctx context.Context) error {
	errs := []error{
		a.Contacts.Seed(ctx, sampledata.Contacts(), sampledata.Groups()),
		a.Rides.Seed(ctx, sampledata.Trips()),
		a.Resources.Seed(ctx, sampledata.Resources()),
		a.Guides.Seed(ctx, sampledata.Guides()),
		a.Wellness.Seed(ctx, sampledata.Meditations(), sampledata.CrisisResources()),
		a.Incidents.Seed(ctx, sampledata.Incidents()),
		a.Tutorials.Seed(ctx, sampledata.Tutorials()),
		a.Notifications.Seed(ctx, sampledata.Notifications(a.now())),
		a.Profile.Seed(ctx, sampledata.Profile()),
		a.Health.Seed(ctx, sampledata.Providers(), sampledata.Medications()),
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("seed sample data: %w", err)
	}
	return nil
}

// Close stops pending timers and closes storage.
func (a *App) Close() error {
	a.Alerts.Close()
	a.Wellness.Close()
	return a.store.close()
}

// storage is whichever backend the config selected. Exactly one field is set.
type storage struct {
	sqlite   *sqlite.DB
	postgres *postgres.DB
}

func openStorage(ctx context.Context, cfg config.DBConfig) (*storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &storage{postgres: db}, nil
	default:
		if err := ensureDBDir(cfg.Path); err != nil {
			return nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &storage{sqlite: db}, nil
	}
}

func gateway[T viewstate.Entity[T]](s *storage, panel string) viewstate.Gateway[T] {
	if s.postgres != nil {
		return postgres.NewGateway[T](s.postgres, panel)
	}
	return sqlite.NewGateway[T](s.sqlite, panel)
}

func (s *storage) activityRepository() activity.Repository {
	if s.postgres != nil {
		return postgres.NewActivityRepository(s.postgres)
	}
	return sqlite.NewActivityRepository(s.sqlite)
}

func (s *storage) close() error {
	if s.postgres != nil {
		return s.postgres.Close()
	}
	return s.sqlite.Close()
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
