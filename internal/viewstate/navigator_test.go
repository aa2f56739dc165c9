package viewstate_test

import (
	"testing"

	"github.com/ganot/nirapod/internal/viewstate"
	"github.com/stretchr/testify/require"
)

func TestNavigator_ListDetailEditCycle(t *testing.T) {
	n := viewstate.NewNavigator()
	require.Equal(t, viewstate.State{Mode: viewstate.ModeBrowsing}, n.State())

	st, err := n.Select("c1")
	require.NoError(t, err)
	require.Equal(t, viewstate.State{Mode: viewstate.ModeViewing, SelectedID: "c1"}, st)

	st, err = n.Edit()
	require.NoError(t, err)
	require.Equal(t, viewstate.ModeEditing, st.Mode)
	require.Equal(t, "c1", st.SelectedID)

	st, err = n.Save()
	require.NoError(t, err)
	require.Equal(t, viewstate.State{Mode: viewstate.ModeViewing, SelectedID: "c1"}, st)

	st, err = n.Close()
	require.NoError(t, err)
	require.Equal(t, viewstate.State{Mode: viewstate.ModeBrowsing}, st)
}

func TestNavigator_CreateReturnsToList(t *testing.T) {
	n := viewstate.NewNavigator()
	_, err := n.Create()
	require.NoError(t, err)
	require.Equal(t, viewstate.ModeCreating, n.State().Mode)

	st, err := n.Cancel()
	require.NoError(t, err)
	require.Equal(t, viewstate.ModeBrowsing, st.Mode)
}

func TestNavigator_RejectsIllegalEvents(t *testing.T) {
	n := viewstate.NewNavigator()

	_, err := n.Edit()
	require.ErrorIs(t, err, viewstate.ErrInvalidTransition)
	_, err = n.Save()
	require.ErrorIs(t, err, viewstate.ErrInvalidTransition)

	_, err = n.Select("")
	require.ErrorIs(t, err, viewstate.ErrNoSelection)

	_, err = n.Select("c1")
	require.NoError(t, err)
	_, err = n.Edit()
	require.NoError(t, err)
	_, err = n.Select("c2")
	require.ErrorIs(t, err, viewstate.ErrInvalidTransition)
	require.Equal(t, "c1", n.State().SelectedID)
}

func TestTabs_GuardsReportAvailability(t *testing.T) {
	type tab string
	active := false
	tabs := viewstate.NewTabs[tab]("new", "current", "history")
	tabs.Guard("current", func() bool { return active })

	require.Equal(t, tab("new"), tabs.Current())
	require.False(t, tabs.Enabled("current"))
	require.True(t, tabs.Enabled("history"))

	require.NoError(t, tabs.Go("current"))
	require.Equal(t, tab("current"), tabs.Current())

	active = true
	require.True(t, tabs.Enabled("current"))

	require.ErrorIs(t, tabs.Go("settings"), viewstate.ErrUnknownTab)
	require.False(t, tabs.Enabled("settings"))

	require.Equal(t, tab("history"), tabs.Next())
	require.Equal(t, tab("new"), tabs.Next())
}
