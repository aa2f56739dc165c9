package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	entry1 := &activity.ActivityEntry{
		Panel:        "contacts",
		ActivityType: activity.TypeRecordCreated,
		Summary:      "Added John Smith",
		Details:      `{"id":"c1"}`,
	}
	entry2 := &activity.ActivityEntry{
		Panel:        "rides",
		ActivityType: activity.TypeRideStarted,
		Summary:      "Ride with Michael Johnson",
	}

	require.NoError(t, repo.Log(ctx, entry1))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
	require.Equal(t, `{"id":"c1"}`, entries[1].Details)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	recordID := "c1"
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		Panel:        "contacts",
		RecordID:     &recordID,
		ActivityType: activity.TypeRecordUpdated,
		Summary:      "Updated contact",
	}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		Panel:        "alerts",
		ActivityType: activity.TypeAlertSent,
		Summary:      "SOS sent",
	}))

	activityType := activity.TypeRecordUpdated
	entries, err := repo.List(ctx, activity.ListActivityOptions{
		Panel:        "contacts",
		RecordID:     &recordID,
		ActivityType: &activityType,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "c1", *entries[0].RecordID)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Panel: "rides"})
	require.NoError(t, err)
	require.Len(t, entries, 0)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "contacts", entries[0].Panel)
}
