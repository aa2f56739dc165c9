package wellness_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/domain/wellness"
	"github.com/stretchr/testify/require"
)

type sessions struct {
	mu  sync.Mutex
	ids []string
}

func (s *sessions) Record(_ context.Context, _ string, id string, typ activity.ActivityType, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if typ == activity.TypeMeditationSession {
		s.ids = append(s.ids, id)
	}
}

func (s *sessions) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var meditations = []wellness.Meditation{
	{ID: "1", Title: "Stress Relief Breathing", Description: "Guided breathing exercise to reduce stress", Duration: "10 min", Category: "stress", Level: "beginner", Featured: true},
	{ID: "2", Title: "Deep Sleep Meditation", Duration: "20 min", Category: "sleep", Level: "all", Featured: true},
	{ID: "5", Title: "Body Scan Relaxation", Duration: "15 min", Category: "stress", Level: "intermediate"},
	{ID: "q", Title: "Quick Test", Duration: "30ms", Category: "general", Level: "beginner"},
	{ID: "x", Title: "Broken", Duration: "forever", Category: "general"},
}

var crisis = []wellness.CrisisResource{
	{ID: "1", Name: "National Suicide Prevention Lifeline", Phone: "1-800-273-8255", Available: "24/7", Category: "suicide"},
	{ID: "2", Name: "Crisis Text Line", Phone: "Text HOME to 741741", Available: "24/7", Category: "crisis"},
	{ID: "4", Name: "National Domestic Violence Hotline", Phone: "1-800-799-7233", Available: "24/7", Category: "domestic"},
}

func newService(t *testing.T, opts wellness.Options) *wellness.Service {
	t.Helper()
	svc := wellness.NewService(nil, nil, opts)
	t.Cleanup(svc.Close)
	require.NoError(t, svc.Seed(context.Background(), meditations, crisis))
	return svc
}

func TestWellness_Listings(t *testing.T) {
	svc := newService(t, wellness.Options{})

	stress := svc.ListMeditations(wellness.MeditationFilter{Category: "stress"})
	require.Len(t, stress, 2)
	require.Len(t, svc.ListMeditations(wellness.MeditationFilter{FeaturedOnly: true}), 2)
	require.Len(t, svc.ListMeditations(wellness.MeditationFilter{Category: "stress", Level: "beginner"}), 1)
	require.Len(t, svc.ListMeditations(wellness.MeditationFilter{Query: "breathing"}), 1)

	hotlines := svc.ListCrisis(wellness.CrisisFilter{Query: "741741"})
	require.Len(t, hotlines, 1)
	require.Equal(t, "Crisis Text Line", hotlines[0].Name)
	require.Len(t, svc.ListCrisis(wellness.CrisisFilter{Category: "domestic"}), 1)

	_, err := svc.GetCrisis("9")
	require.ErrorIs(t, err, wellness.ErrCrisisNotFound)

	require.Equal(t, wellness.SectionCrisis, svc.Section())
	require.NoError(t, svc.SetSection(wellness.SectionMeditation))
	require.Error(t, svc.SetSection("therapists"))
}

func TestWellness_PauseResume(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)}
	svc := newService(t, wellness.Options{Now: clock.now})

	_, err := svc.Pause()
	require.ErrorIs(t, err, wellness.ErrNotPlaying)

	st, err := svc.Play(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, wellness.PlayerPlaying, st.State)
	require.Equal(t, 10*time.Minute, st.Remaining)

	clock.advance(3 * time.Minute)
	st, err = svc.Pause()
	require.NoError(t, err)
	require.Equal(t, wellness.PlayerPaused, st.State)
	require.Equal(t, "03:00", st.Clock())

	clock.advance(time.Hour)
	require.Equal(t, 3*time.Minute, svc.Status().Elapsed, "paused time does not count")

	_, err = svc.Resume(ctx)
	require.NoError(t, err)
	_, err = svc.Resume(ctx)
	require.ErrorIs(t, err, wellness.ErrNotPaused)

	clock.advance(2 * time.Minute)
	st = svc.Status()
	require.Equal(t, 5*time.Minute, st.Elapsed)
	require.Equal(t, 5*time.Minute, st.Remaining)

	st = svc.Stop()
	require.Equal(t, wellness.PlayerIdle, st.State)
	require.Empty(t, st.MeditationID)
}

func TestWellness_PlaybackCompletes(t *testing.T) {
	log := &sessions{}
	svc := newService(t, wellness.Options{Activity: log})

	_, err := svc.Play(context.Background(), "q")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return svc.Status().State == wellness.PlayerCompleted
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, 1, log.count())
	require.Zero(t, svc.Status().Remaining)
}

func TestWellness_StopCancelsCompletion(t *testing.T) {
	log := &sessions{}
	svc := newService(t, wellness.Options{Activity: log})

	_, err := svc.Play(context.Background(), "q")
	require.NoError(t, err)
	svc.Stop()
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, wellness.PlayerIdle, svc.Status().State)
	require.Zero(t, log.count())
}

func TestWellness_PlayErrors(t *testing.T) {
	svc := newService(t, wellness.Options{})
	_, err := svc.Play(context.Background(), "nope")
	require.ErrorIs(t, err, wellness.ErrMeditationNotFound)
	_, err = svc.Play(context.Background(), "x")
	require.ErrorIs(t, err, wellness.ErrBadDuration)
	require.Equal(t, wellness.PlayerIdle, svc.Status().State)
}

func TestWellness_Volume(t *testing.T) {
	svc := newService(t, wellness.Options{})
	require.Equal(t, 80, svc.Status().Volume)

	st := svc.SetVolume(0)
	require.True(t, st.Muted)
	st = svc.SetVolume(150)
	require.Equal(t, 100, st.Volume)
	require.False(t, st.Muted)

	st = svc.ToggleMute()
	require.True(t, st.Muted)
	require.Equal(t, 100, st.Volume)
}
