package notification_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ganot/nirapod/internal/domain/alert"
	"github.com/ganot/nirapod/internal/domain/notification"
	"github.com/ganot/nirapod/internal/repository/mocks"
	"github.com/ganot/nirapod/internal/viewstate"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 4, 12, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T, gw viewstate.Gateway[notification.Notification]) (*notification.Service, *time.Time) {
	t.Helper()
	now := base
	n := 0
	svc := notification.NewService(gw, notification.Options{
		Now: func() time.Time { return now },
		IDFunc: func() string {
			n++
			return fmt.Sprintf("n-%d", n)
		},
	})
	require.NoError(t, svc.Seed(context.Background(), []notification.Notification{
		{ID: "1", Title: "Safety Alert", Message: "Suspicious activity reported in your area", Type: notification.TypeAlert, Timestamp: base},
		{ID: "2", Title: "Community Update", Message: "New safety patrol schedule posted", Type: notification.TypeInfo, Timestamp: base.Add(-time.Hour), Read: true},
		{ID: "3", Title: "Live Stream Started", Message: "Community Safety Workshop is now live", Type: notification.TypeSuccess, Timestamp: base.Add(-2 * time.Hour)},
		{ID: "4", Title: "Account Activity", Message: "Your emergency contacts were updated", Type: notification.TypeInfo, Timestamp: base.Add(-24 * time.Hour), Read: true},
	}))
	return svc, &now
}

func noteIDs(list []notification.Notification) []string {
	out := []string{}
	for _, n := range list {
		out = append(out, n.ID)
	}
	return out
}

func TestNotificationService_ListNewestFirst(t *testing.T) {
	svc, _ := newService(t, nil)
	require.Equal(t, []string{"1", "2", "3", "4"}, noteIDs(svc.List(notification.Filter{})))
	require.Equal(t, []string{"1", "3"}, noteIDs(svc.List(notification.Filter{UnreadOnly: true})))
	require.Equal(t, []string{"2", "4"}, noteIDs(svc.List(notification.Filter{Type: notification.TypeInfo})))
	require.Equal(t, 2, svc.Unread())
}

func TestNotificationService_AlertSentGoesOnTop(t *testing.T) {
	svc, _ := newService(t, nil)

	svc.AlertSent(context.Background(), alert.Alert{ID: "a-1", Status: alert.StatusSent})

	list := svc.List(notification.Filter{})
	require.Len(t, list, 5)
	top := list[0]
	require.Equal(t, "n-1", top.ID)
	require.Equal(t, notification.SOSTitle, top.Title)
	require.Equal(t, notification.SOSMessage, top.Message)
	require.Equal(t, notification.TypeAlert, top.Type)
	require.False(t, top.Read)
	require.Equal(t, 3, svc.Unread())
}

func TestNotificationService_PushValidation(t *testing.T) {
	ctx := context.Background()
	svc, now := newService(t, nil)
	*now = base.Add(5 * time.Minute)

	n, err := svc.Push(ctx, notification.PushRequest{Title: "Check-in", Message: "Mary arrived home"})
	require.NoError(t, err)
	require.Equal(t, notification.TypeInfo, n.Type)
	require.Equal(t, *now, n.Timestamp)

	_, err = svc.Push(ctx, notification.PushRequest{Title: " "})
	var verr *viewstate.ValidationError
	require.ErrorAs(t, err, &verr)
	require.ElementsMatch(t, []string{"title", "message"}, verr.Missing)

	_, err = svc.Push(ctx, notification.PushRequest{Title: "x", Message: "y", Type: "urgent"})
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Invalid, "type")
}

func TestNotificationService_MarkReadAndClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	n, err := svc.MarkRead(ctx, "1")
	require.NoError(t, err)
	require.True(t, n.Read)
	require.Equal(t, 1, svc.Unread())

	_, err = svc.MarkRead(ctx, "ghost")
	require.ErrorIs(t, err, notification.ErrNotificationNotFound)

	changed, err := svc.MarkAllRead(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, changed)
	require.Equal(t, 0, svc.Unread())

	require.NoError(t, svc.Delete(ctx, "2"))
	require.ErrorIs(t, svc.Delete(ctx, "2"), notification.ErrNotificationNotFound)

	cleared, err := svc.ClearAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, cleared)
	require.Empty(t, svc.List(notification.Filter{}))
}

func TestNotificationService_ClearAllStopsOnGatewayFailure(t *testing.T) {
	gw := &mocks.Gateway[notification.Notification]{}
	gw.On("Create", mock.Anything, mock.Anything).Return(nil, nil)
	gw.On("Delete", mock.Anything, "1").Return(nil)
	gw.On("Delete", mock.Anything, "2").Return(errors.New("offline"))

	svc, _ := newService(t, gw)
	cleared, err := svc.ClearAll(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, cleared)
	require.Equal(t, []string{"2", "3", "4"}, noteIDs(svc.List(notification.Filter{})))
}

func TestAge(t *testing.T) {
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, notification.Age(base, base.Add(-tc.ago)))
	}
}
