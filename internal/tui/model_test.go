package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ganot/nirapod/internal/app"
	"github.com/ganot/nirapod/internal/config"
	"github.com/ganot/nirapod/internal/domain/alert"
	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/ganot/nirapod/internal/domain/rideshare"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (*Model, *app.App) {
	t.Helper()
	return newTestModelWith(t, Options{SplashDelay: -1})
}

func newTestModelWith(t *testing.T, opts Options) (*Model, *app.App) {
	t.Helper()
	cfg := config.Default()
	cfg.Timing.AlertDelay = time.Hour
	a, err := app.New(context.Background(), cfg, nil, app.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	m := New(context.Background(), Services{
		Contacts:  a.Contacts,
		Alerts:    a.Alerts,
		Rides:     a.Rides,
		Resources: a.Resources,
	}, opts)
	return m, a
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to the model and applies any status message they produce.
// Commands that wait on a timer, like cursor blinks and alert polling, are dropped.
func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		_, cmd := m.Update(k)
		if cmd == nil {
			continue
		}
		out := make(chan tea.Msg, 1)
		go func() { out <- cmd() }()
		select {
		case msg := <-out:
			switch msg.(type) {
			case statusMsg, errorMsg:
				m.Update(msg)
			}
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestSplash(t *testing.T) {
	m, _ := newTestModelWith(t, Options{})
	require.True(t, m.splash)
	require.NotNil(t, m.Init())
	require.Contains(t, m.View(), "Nirapod")

	m.Update(splashDoneMsg{})
	require.False(t, m.splash)

	m, _ = newTestModelWith(t, Options{SplashDelay: time.Minute})
	press(m, runes("a"))
	require.False(t, m.splash)
}

func TestSwitchPanels(t *testing.T) {
	m, _ := newTestModel(t)
	require.Nil(t, m.Init())
	require.Equal(t, 0, m.active)

	press(m, runes("2"))
	require.Equal(t, 1, m.active)
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 2, m.active)
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, m.active)
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 2, m.active)
	require.Contains(t, m.View(), "Resources")
}

func TestSOSKeys(t *testing.T) {
	m, a := newTestModel(t)

	press(m, runes("!"))
	require.Equal(t, alert.StatusSending, a.Alerts.Status().Status)
	require.Contains(t, m.View(), "SOS sending")

	press(m, runes("!"))
	require.Equal(t, "An alert is already being sent", m.status)

	press(m, runes("x"))
	require.Equal(t, alert.StatusCancelled, a.Alerts.Status().Status)
	require.NotContains(t, m.View(), "SOS sending")
}

func TestContactsCreate(t *testing.T) {
	m, a := newTestModel(t)
	p := m.panels[0].(*contactsPanel)

	press(m, runes("n"))
	require.True(t, p.capturing())

	// q is typed into the name, not treated as quit.
	press(m, runes("q"), tea.KeyMsg{Type: tea.KeyBackspace})
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, p.capturing())
	require.Equal(t, "required", p.form.errs["name"])

	press(m, runes("Bob Lee"), tea.KeyMsg{Type: tea.KeyTab}, runes("555-0100"))
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.False(t, p.capturing())
	require.Equal(t, "Added Bob Lee", m.status)

	found := a.Contacts.ListContacts(contact.ContactFilter{Query: "Bob Lee"})
	require.Len(t, found, 1)
	require.Equal(t, contact.TypePersonal, found[0].Type)
}

func TestContactsCreateCancel(t *testing.T) {
	m, a := newTestModel(t)
	p := m.panels[0].(*contactsPanel)

	press(m, runes("n"), runes("Nobody"), tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, p.capturing())
	require.Empty(t, a.Contacts.ListContacts(contact.ContactFilter{Query: "Nobody"}))
}

func TestContactsFavoriteAndDetail(t *testing.T) {
	m, a := newTestModel(t)

	first := m.panels[0].(*contactsPanel).rows[0]
	press(m, runes("f"))
	got, err := a.Contacts.GetContact(first.ID)
	require.NoError(t, err)
	require.Equal(t, !first.IsFavorite, got.IsFavorite)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	require.Contains(t, view, first.Name)
	require.Contains(t, view, "Phone")

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Contains(t, m.View(), "n new")
}

func TestContactsSearch(t *testing.T) {
	m, _ := newTestModel(t)
	p := m.panels[0].(*contactsPanel)

	press(m, runes("/"), runes("Police"), tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, p.capturing())
	require.Len(t, p.rows, 1)
	require.Equal(t, "Anytown Police Department", p.rows[0].Name)

	press(m, runes("F"))
	require.Empty(t, p.rows)
}

func TestContactsViewCycle(t *testing.T) {
	m, a := newTestModel(t)
	p := m.panels[0].(*contactsPanel)

	press(m, runes("v"))
	require.Equal(t, contact.ViewGroups, a.Contacts.View())
	require.NotEmpty(t, p.groups)
	require.Empty(t, p.rows)
	require.Contains(t, m.View(), p.groups[0].Name)

	press(m, runes("v"))
	require.Equal(t, contact.ViewEmergency, a.Contacts.View())
	require.Equal(t, a.Contacts.EmergencyRecipients(), p.rows)
	require.Contains(t, m.View(), "An SOS alert reaches these contacts.")

	press(m, runes("v"))
	require.Equal(t, contact.ViewContacts, a.Contacts.View())
	require.Contains(t, m.View(), "n new")
}

func TestRidesLifecycle(t *testing.T) {
	m, a := newTestModel(t)
	p := m.panels[1].(*ridesPanel)
	tab := tea.KeyMsg{Type: tea.KeyTab}

	press(m, runes("2"))
	require.Equal(t, rideshare.TabNewRide, a.Rides.Tab())
	require.False(t, p.capturing())

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, p.capturing())
	press(m,
		runes("Ahmed"), tab,
		tab,
		runes("DHA-1234"), tab,
		runes("Toyota Axio"), tab,
		runes("Home"), tab,
		runes("Office"), tab,
		runes("10:30"), tab,
		runes("25 min"),
	)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	ride, ok := a.Rides.CurrentRide()
	require.True(t, ok)
	require.Equal(t, "Ahmed", ride.DriverName)
	require.Equal(t, rideshare.CompanyUber, ride.Company)
	require.Equal(t, rideshare.TabCurrentRide, a.Rides.Tab())
	require.Contains(t, m.View(), "Home → Office")

	press(m, runes("s"))
	ride, _ = a.Rides.CurrentRide()
	require.False(t, ride.SharingLocation)

	press(m, runes("e"))
	_, ok = a.Rides.CurrentRide()
	require.False(t, ok)
	require.Len(t, a.Rides.History(rideshare.HistoryFilter{}), 4)
}

func TestRidesHistoryDelete(t *testing.T) {
	m, a := newTestModel(t)

	press(m, runes("2"), tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, rideshare.TabHistory, a.Rides.Tab())

	press(m, runes("d"))
	require.Len(t, a.Rides.History(rideshare.HistoryFilter{}), 2)
	require.Equal(t, "Trip removed from history", m.status)
}

func TestResourcesDownloadAndCategory(t *testing.T) {
	m, a := newTestModel(t)
	p := m.panels[2].(*resourcesPanel)

	press(m, runes("3"))
	top := p.rows[0]
	press(m, runes("D"))
	got, err := a.Resources.Get(top.ID)
	require.NoError(t, err)
	require.Equal(t, top.Downloads+1, got.Downloads)

	press(m, runes("c"))
	require.NotEmpty(t, p.rows)
	for _, r := range p.rows {
		require.Equal(t, "Emergency Contact Cards", r.Category)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Contains(t, m.View(), "Format")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Contains(t, m.View(), "D download")
}
