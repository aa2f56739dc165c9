package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ganot/nirapod/internal/domain/rideshare"
	"github.com/ganot/nirapod/internal/viewstate"
)

var rideTabs = []struct {
	tab   rideshare.Tab
	label string
}{
	{rideshare.TabNewRide, "New ride"},
	{rideshare.TabCurrentRide, "Current ride"},
	{rideshare.TabHistory, "History"},
}

// rideDraft routes form edits into the tracker's own draft.
type rideDraft struct{ t *rideshare.Tracker }

func (d rideDraft) Set(name, value string) error { return d.t.SetRideField(name, value) }

func (d rideDraft) CanSubmit() bool {
	_, ok := d.t.RideDraft()
	return ok
}

type ridesPanel struct {
	ctx     context.Context
	t       *rideshare.Tracker
	form    *form
	editing bool
	cur     *viewstate.Cursor
	trips   []rideshare.Trip
}

func newRidesPanel(ctx context.Context, t *rideshare.Tracker) *ridesPanel {
	p := &ridesPanel{ctx: ctx, t: t, cur: viewstate.NewCursor(0)}
	p.resetForm()
	p.refresh()
	return p
}

func (p *ridesPanel) resetForm() {
	ride, _ := p.t.RideDraft()
	p.form = newForm(rideDraft{p.t}, specs(rideshare.RideFields(), ride))
}

func (p *ridesPanel) title() string { return "Rides" }

func (p *ridesPanel) capturing() bool { return p.editing && p.t.Tab() == rideshare.TabNewRide }

func (p *ridesPanel) refresh() {
	p.trips = p.t.History(rideshare.HistoryFilter{})
	p.cur.Resize(len(p.trips))
}

func (p *ridesPanel) switchTab(delta int) tea.Cmd {
	idx := 0
	for i, rt := range rideTabs {
		if rt.tab == p.t.Tab() {
			idx = i
		}
	}
	next := rideTabs[(idx+delta+len(rideTabs))%len(rideTabs)].tab
	if err := p.t.SetTab(next); err != nil {
		return errorCmd(err)
	}
	p.refresh()
	return nil
}

func (p *ridesPanel) update(msg tea.KeyMsg) tea.Cmd {
	if p.capturing() {
		return p.updateNew(msg)
	}
	switch msg.String() {
	case "right", "l":
		return p.switchTab(1)
	case "left", "h":
		return p.switchTab(-1)
	}
	switch p.t.Tab() {
	case rideshare.TabNewRide:
		if msg.String() == "enter" || msg.String() == "n" {
			p.editing = true
			return p.form.focusCmd()
		}
		return nil
	case rideshare.TabCurrentRide:
		return p.updateCurrent(msg)
	}
	return p.updateHistory(msg)
}

// updateNew owns every key while the form is being edited. esc stops editing
// and keeps the draft, ctrl+x clears it.
func (p *ridesPanel) updateNew(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		p.editing = false
		return nil
	case "ctrl+x":
		p.t.DiscardRide()
		p.resetForm()
		return p.form.focusCmd()
	}
	submit, cmd := p.form.update(msg)
	if !submit {
		return cmd
	}
	ride, err := p.t.SubmitRide(p.ctx)
	if err != nil {
		p.form.setError(err)
		return errorCmd(err)
	}
	p.editing = false
	p.resetForm()
	return statusCmd(fmt.Sprintf("Tracking ride with %s to %s", ride.DriverName, ride.Destination))
}

func (p *ridesPanel) updateCurrent(msg tea.KeyMsg) tea.Cmd {
	if _, ok := p.t.CurrentRide(); !ok {
		return nil
	}
	switch msg.String() {
	case "s":
		on, err := p.t.ToggleSharing()
		if err != nil {
			return errorCmd(err)
		}
		if on {
			return statusCmd("Sharing location")
		}
		return statusCmd("Location sharing paused")
	case "e":
		trip, err := p.t.EndRide(p.ctx)
		if err != nil {
			return errorCmd(err)
		}
		p.refresh()
		return statusCmd(fmt.Sprintf("Ride completed in %d min", trip.DurationMinutes))
	case "c":
		if _, err := p.t.CancelRide(p.ctx); err != nil {
			return errorCmd(err)
		}
		p.refresh()
		return statusCmd("Ride cancelled")
	}
	return nil
}

func (p *ridesPanel) updateHistory(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		p.cur.Prev()
	case "down", "j":
		p.cur.Next()
	case "d":
		if len(p.trips) == 0 {
			return nil
		}
		trip := p.trips[p.cur.Pos()]
		if err := p.t.DeleteTrip(p.ctx, trip.ID); err != nil {
			return errorCmd(err)
		}
		p.refresh()
		return statusCmd("Trip removed from history")
	}
	return nil
}

func (p *ridesPanel) view() string {
	var b strings.Builder
	tabs := make([]string, 0, len(rideTabs))
	for _, rt := range rideTabs {
		switch {
		case rt.tab == p.t.Tab():
			tabs = append(tabs, activeTab.Render(rt.label))
		case !p.t.TabEnabled(rt.tab):
			tabs = append(tabs, disabledTab.Render(rt.label))
		default:
			tabs = append(tabs, tabStyle.Render(rt.label))
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	switch p.t.Tab() {
	case rideshare.TabNewRide:
		b.WriteString(p.form.view())
		if p.editing {
			b.WriteString("\n" + helpStyle.Render("esc stop editing • ctrl+x clear"))
		} else {
			b.WriteString("\n" + helpStyle.Render("enter edit • ←/→ switch tab"))
		}
	case rideshare.TabCurrentRide:
		b.WriteString(p.currentView())
		b.WriteString("\n" + helpStyle.Render("←/→ switch tab"))
	default:
		b.WriteString(p.historyView())
		b.WriteString("\n" + helpStyle.Render("←/→ switch tab"))
	}
	return b.String()
}

func (p *ridesPanel) currentView() string {
	ride, ok := p.t.CurrentRide()
	if !ok {
		return mutedStyle.Render("No ride is being tracked. Start one from New ride.") + "\n"
	}
	var b strings.Builder
	b.WriteString(badge(rideshare.CompanyPalette.Lookup(ride.Company)) + " " + titleStyle.Render(ride.PickupLocation+" → "+ride.Destination) + "\n\n")
	rows := [][2]string{
		{"Driver", ride.DriverName},
		{"Vehicle", ride.VehicleModel + " " + ride.VehicleNumber},
		{"Arrival", ride.EstimatedArrival},
		{"Duration", ride.EstimatedDuration},
		{"Started", ride.StartedAt.Format("15:04")},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r[0]) + r[1] + "\n")
	}
	sharing := "off"
	if ride.SharingLocation {
		sharing = "on"
	}
	b.WriteString(labelStyle.Render("Location sharing") + sharing + "\n\n")
	b.WriteString(helpStyle.Render("s toggle sharing • e end ride • c cancel ride") + "\n")
	return b.String()
}

func (p *ridesPanel) historyView() string {
	if len(p.trips) == 0 {
		return mutedStyle.Render("No past trips.") + "\n"
	}
	var b strings.Builder
	for i, trip := range p.trips {
		line := fmt.Sprintf("%s %s  %-24s %-10s %3d min  %s",
			trip.Date, trip.Time, trip.Destination, trip.Status, trip.DurationMinutes,
			badge(rideshare.CompanyPalette.Lookup(trip.Company)))
		if i == p.cur.Pos() {
			line = selectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("d delete trip") + "\n")
	return b.String()
}
