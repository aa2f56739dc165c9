package sampledata_test

import (
	"testing"
	"time"

	"github.com/ganot/nirapod/internal/domain/health"
	"github.com/ganot/nirapod/internal/domain/profile"
	"github.com/ganot/nirapod/internal/domain/tutorial"
	"github.com/ganot/nirapod/internal/domain/wellness"
	"github.com/ganot/nirapod/internal/sampledata"
	"github.com/stretchr/testify/require"
)

func TestGroupMembersExist(t *testing.T) {
	ids := map[string]bool{}
	for _, c := range sampledata.Contacts() {
		require.False(t, ids[c.ID], "duplicate contact %s", c.ID)
		require.True(t, c.Type.Valid())
		ids[c.ID] = true
	}
	for _, g := range sampledata.Groups() {
		for _, id := range g.ContactIDs {
			require.True(t, ids[id], "group %s references missing contact %s", g.Name, id)
		}
	}
}

func TestMeditationDurationsParse(t *testing.T) {
	for _, m := range sampledata.Meditations() {
		d, err := wellness.ParseDuration(m.Duration)
		require.NoError(t, err, m.Title)
		require.Positive(t, d)
	}
}

func TestTutorialQuizIsGradable(t *testing.T) {
	for _, tut := range sampledata.Tutorials() {
		answers := map[string]int{}
		for _, q := range tut.Quiz {
			answers[q.ID] = q.Correct
		}
		grade, err := tutorial.GradeQuiz(tut.Quiz, answers)
		require.NoError(t, err)
		require.Equal(t, 100, grade.Percentage)

		markers, err := tutorial.Markers(tut.Quiz, tut.Duration)
		require.NoError(t, err)
		require.Len(t, markers, len(tut.Quiz))
	}
}

func TestRecordsHaveIDs(t *testing.T) {
	for _, r := range sampledata.Resources() {
		require.NotEmpty(t, r.ID)
	}
	for _, g := range sampledata.Guides() {
		require.NotEmpty(t, g.ID)
	}
	for _, tr := range sampledata.Trips() {
		require.True(t, tr.Company.Valid())
	}
	for _, inc := range sampledata.Incidents() {
		require.True(t, inc.Type.Valid())
	}
	require.Len(t, sampledata.CrisisResources(), 5)
}

func TestAccountRecordsAreValid(t *testing.T) {
	now := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)
	for _, n := range sampledata.Notifications(now) {
		require.True(t, n.Type.Valid(), n.Title)
		require.False(t, n.Timestamp.After(now))
	}
	require.Equal(t, profile.ID, sampledata.Profile().ID)
	for _, m := range sampledata.Medications() {
		_, err := time.Parse(health.DoseLayout, m.Time)
		require.NoError(t, err, m.Name)
	}
	for _, p := range sampledata.Providers() {
		require.Contains(t, health.ProviderTypes, p.Type)
	}
}
