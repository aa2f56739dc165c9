package alert

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/ganot/nirapod/internal/viewstate"
	"github.com/google/uuid"
)

const (
	Panel        = "sos"
	DefaultDelay = 2 * time.Second

	timerKey   = "sos"
	maxHistory = 20
)

// RecipientSource lists the contacts an alert goes to.
type RecipientSource interface {
	EmergencyRecipients() []contact.Contact
}

// Options configures the dispatcher.
type Options struct {
	Delay    time.Duration
	Logger   *slog.Logger
	Activity activity.Recorder
	Events   viewstate.EventCounter
	Now      func() time.Time
	// OnSent runs after an alert is delivered, outside the dispatcher lock.
	OnSent func(context.Context, Alert)
}

// Dispatcher simulates sending an SOS alert: the alert stays in the sending
// state for the configured delay and can be cancelled until it completes.
type Dispatcher struct {
	mu       sync.Mutex
	sched    *viewstate.Scheduler
	source   RecipientSource
	delay    time.Duration
	activity activity.Recorder
	events   viewstate.EventCounter
	now      func() time.Time
	onSent   func(context.Context, Alert)
	logger   *slog.Logger

	current Alert
	history []Alert
}

// NewDispatcher creates an idle dispatcher.
func NewDispatcher(source RecipientSource, opts Options) *Dispatcher {
	d := &Dispatcher{
		sched:    viewstate.NewScheduler(),
		source:   source,
		delay:    opts.Delay,
		activity: opts.Activity,
		events:   opts.Events,
		now:      opts.Now,
		onSent:   opts.OnSent,
		logger:   opts.Logger,
		current:  Alert{Status: StatusIdle},
	}
	if d.delay <= 0 {
		d.delay = DefaultDelay
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	return d
}

// Send starts an alert to every emergency recipient.
func (d *Dispatcher) Send(ctx context.Context, req SendRequest) (Alert, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current.Status == StatusSending {
		return Alert{}, ErrAlreadySending
	}
	recipients := d.recipients()
	if len(recipients) == 0 {
		return Alert{}, ErrNoRecipients
	}
	msg := req.Message
	if msg == "" {
		msg = DefaultMessage
	}
	a := Alert{
		ID:         uuid.NewString(),
		Status:     StatusSending,
		Message:    msg,
		Location:   req.Location,
		Recipients: recipients,
		StartedAt:  d.now(),
	}
	if !d.sched.After(timerKey, d.delay, func() { d.complete(context.WithoutCancel(ctx), a.ID) }) {
		return Alert{}, fmt.Errorf("scheduling alert: dispatcher closed")
	}
	d.current = a
	d.logger.Info("sos alert sending", "id", a.ID, "recipients", len(recipients))
	d.record(ctx, a, activity.TypeAlertSending, fmt.Sprintf("Sending alert to %d contacts", len(recipients)))
	d.count("sos_sending")
	return cloneAlert(a), nil
}

// Cancel stops an alert that is still sending.
func (d *Dispatcher) Cancel(ctx context.Context) (Alert, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current.Status != StatusSending {
		return Alert{}, ErrNotSending
	}
	d.sched.Cancel(timerKey)
	d.finish(StatusCancelled)
	d.logger.Info("sos alert cancelled", "id", d.current.ID)
	d.record(ctx, d.current, activity.TypeAlertCancelled, "Alert cancelled")
	d.count("sos_cancelled")
	return cloneAlert(d.current), nil
}

// Status returns the current alert, or an idle alert when none was sent.
func (d *Dispatcher) Status() Alert {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneAlert(d.current)
}

// History returns finished alerts, newest first.
func (d *Dispatcher) History() []Alert {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Alert, 0, len(d.history))
	for _, a := range slices.Backward(d.history) {
		out = append(out, cloneAlert(a))
	}
	return out
}

// Close cancels a pending alert timer.
func (d *Dispatcher) Close() {
	d.sched.Close()
}

func (d *Dispatcher) complete(ctx context.Context, id string) {
	d.mu.Lock()
	if d.current.ID != id || d.current.Status != StatusSending {
		d.mu.Unlock()
		return
	}
	d.finish(StatusSent)
	d.logger.Info("sos alert sent", "id", id)
	d.record(ctx, d.current, activity.TypeAlertSent, fmt.Sprintf("Alert sent to %d contacts", len(d.current.Recipients)))
	d.count("sos_sent")
	sent := cloneAlert(d.current)
	d.mu.Unlock()

	if d.onSent != nil {
		d.onSent(ctx, sent)
	}
}

func (d *Dispatcher) finish(status Status) {
	d.current.Status = status
	d.current.FinishedAt = d.now()
	d.history = append(d.history, d.current)
	if len(d.history) > maxHistory {
		d.history = d.history[len(d.history)-maxHistory:]
	}
}

func (d *Dispatcher) recipients() []Recipient {
	if d.source == nil {
		return nil
	}
	var out []Recipient
	for _, c := range d.source.EmergencyRecipients() {
		out = append(out, Recipient{ContactID: c.ID, Name: c.Name, Phone: c.Phone})
	}
	return out
}

func (d *Dispatcher) record(ctx context.Context, a Alert, typ activity.ActivityType, summary string) {
	if d.activity != nil {
		d.activity.Record(ctx, Panel, a.ID, typ, summary)
	}
}

func (d *Dispatcher) count(kind string) {
	if d.events != nil {
		d.events.Event(kind)
	}
}

func cloneAlert(a Alert) Alert {
	a.Recipients = slices.Clone(a.Recipients)
	return a
}
