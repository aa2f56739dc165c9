package alert_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/domain/alert"
	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/stretchr/testify/require"
)

type recipients []contact.Contact

func (r recipients) EmergencyRecipients() []contact.Contact { return r }

type activityLog struct {
	mu    sync.Mutex
	types []activity.ActivityType
}

func (l *activityLog) Record(_ context.Context, panel, _ string, typ activity.ActivityType, _ string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.types = append(l.types, typ)
}

func (l *activityLog) recorded() []activity.ActivityType {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]activity.ActivityType(nil), l.types...)
}

type counter struct {
	mu     sync.Mutex
	events map[string]int
}

func (c *counter) Event(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.events == nil {
		c.events = map[string]int{}
	}
	c.events[kind]++
}

var family = recipients{
	{ID: "1", Name: "John Smith", Phone: "(555) 123-4567"},
	{ID: "3", Name: "Anytown Police Department", Phone: "911"},
}

func TestDispatcher_SendCompletesAfterDelay(t *testing.T) {
	log := &activityLog{}
	events := &counter{}
	d := alert.NewDispatcher(family, alert.Options{Delay: 20 * time.Millisecond, Activity: log, Events: events})
	defer d.Close()

	require.Equal(t, alert.StatusIdle, d.Status().Status)

	a, err := d.Send(context.Background(), alert.SendRequest{Location: "Main St"})
	require.NoError(t, err)
	require.Equal(t, alert.StatusSending, a.Status)
	require.Equal(t, alert.DefaultMessage, a.Message)
	require.Len(t, a.Recipients, 2)
	require.Equal(t, "911", a.Recipients[1].Phone)

	require.Eventually(t, func() bool {
		return d.Status().Status == alert.StatusSent
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, []activity.ActivityType{activity.TypeAlertSending, activity.TypeAlertSent}, log.recorded())
	require.Len(t, d.History(), 1)
	require.False(t, d.Status().FinishedAt.IsZero())
}

func TestDispatcher_OnSentSeesDeliveredAlert(t *testing.T) {
	delivered := make(chan alert.Alert, 1)
	var d *alert.Dispatcher
	d = alert.NewDispatcher(family, alert.Options{
		Delay: 10 * time.Millisecond,
		OnSent: func(_ context.Context, a alert.Alert) {
			// the dispatcher is unlocked while the hook runs
			require.Equal(t, alert.StatusSent, d.Status().Status)
			delivered <- a
		},
	})
	defer d.Close()

	sent, err := d.Send(context.Background(), alert.SendRequest{})
	require.NoError(t, err)

	select {
	case a := <-delivered:
		require.Equal(t, sent.ID, a.ID)
		require.Equal(t, alert.StatusSent, a.Status)
	case <-time.After(time.Second):
		t.Fatal("OnSent was not called")
	}
}

func TestDispatcher_SendWhileSending(t *testing.T) {
	d := alert.NewDispatcher(family, alert.Options{Delay: time.Hour})
	defer d.Close()

	_, err := d.Send(context.Background(), alert.SendRequest{Message: "help"})
	require.NoError(t, err)
	_, err = d.Send(context.Background(), alert.SendRequest{Message: "help again"})
	require.ErrorIs(t, err, alert.ErrAlreadySending)
	require.Equal(t, "help", d.Status().Message)
}

func TestDispatcher_Cancel(t *testing.T) {
	log := &activityLog{}
	events := &counter{}
	d := alert.NewDispatcher(family, alert.Options{Delay: 30 * time.Millisecond, Activity: log, Events: events})
	defer d.Close()

	_, err := d.Cancel(context.Background())
	require.ErrorIs(t, err, alert.ErrNotSending)

	_, err = d.Send(context.Background(), alert.SendRequest{})
	require.NoError(t, err)
	a, err := d.Cancel(context.Background())
	require.NoError(t, err)
	require.Equal(t, alert.StatusCancelled, a.Status)

	// the cancelled timer must not flip the alert to sent
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, alert.StatusCancelled, d.Status().Status)
	require.Equal(t, []activity.ActivityType{activity.TypeAlertSending, activity.TypeAlertCancelled}, log.recorded())

	events.mu.Lock()
	require.Equal(t, 1, events.events["sos_cancelled"])
	require.Zero(t, events.events["sos_sent"])
	events.mu.Unlock()

	_, err = d.Send(context.Background(), alert.SendRequest{})
	require.NoError(t, err)
}

func TestDispatcher_NoRecipients(t *testing.T) {
	d := alert.NewDispatcher(recipients{}, alert.Options{})
	defer d.Close()
	_, err := d.Send(context.Background(), alert.SendRequest{})
	require.ErrorIs(t, err, alert.ErrNoRecipients)
	require.Equal(t, alert.StatusIdle, d.Status().Status)
}

func TestDispatcher_CloseStopsPendingAlert(t *testing.T) {
	d := alert.NewDispatcher(family, alert.Options{Delay: 20 * time.Millisecond})
	_, err := d.Send(context.Background(), alert.SendRequest{})
	require.NoError(t, err)
	d.Close()

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, alert.StatusSending, d.Status().Status)
}

func TestDispatcher_HistoryNewestFirst(t *testing.T) {
	d := alert.NewDispatcher(family, alert.Options{Delay: time.Hour})
	defer d.Close()
	ctx := context.Background()

	for _, msg := range []string{"first", "second"} {
		_, err := d.Send(ctx, alert.SendRequest{Message: msg})
		require.NoError(t, err)
		_, err = d.Cancel(ctx)
		require.NoError(t, err)
	}
	h := d.History()
	require.Len(t, h, 2)
	require.Equal(t, "second", h[0].Message)
	require.Equal(t, "first", h[1].Message)
}
