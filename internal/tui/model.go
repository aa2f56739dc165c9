// Package tui is the terminal front end: a splash screen, then the contacts,
// rides and resources panels with a global SOS key.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ganot/nirapod/internal/domain/alert"
	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/ganot/nirapod/internal/domain/resource"
	"github.com/ganot/nirapod/internal/domain/rideshare"
)

// DefaultSplashDelay is how long the splash screen stays up.
const DefaultSplashDelay = 1500 * time.Millisecond

const alertPollInterval = 250 * time.Millisecond

// Services are the panels the terminal UI drives.
type Services struct {
	Contacts  *contact.Service
	Alerts    *alert.Dispatcher
	Rides     *rideshare.Tracker
	Resources *resource.Service
}

// Options tunes the UI.
type Options struct {
	SplashDelay time.Duration // zero uses DefaultSplashDelay, negative skips the splash
	Logger      *slog.Logger
}

type panel interface {
	title() string
	update(msg tea.KeyMsg) tea.Cmd
	view() string
	// capturing reports whether keys go to a text input.
	capturing() bool
	refresh()
}

type (
	splashDoneMsg struct{}
	alertTickMsg  struct{}
	statusMsg     string
	errorMsg      struct{ err error }
)

func statusCmd(s string) tea.Cmd {
	return func() tea.Msg { return statusMsg(s) }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return errorMsg{err: err} }
}

func alertTick() tea.Cmd {
	return tea.Tick(alertPollInterval, func(time.Time) tea.Msg { return alertTickMsg{} })
}

// Model is the root bubbletea model.
type Model struct {
	ctx    context.Context
	svc    Services
	logger *slog.Logger
	delay  time.Duration

	splash bool
	panels []panel
	active int

	alert  alert.Alert
	status string
	err    error

	width, height int
}

// New builds the model. ctx bounds every service call the UI makes.
func New(ctx context.Context, svc Services, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	delay := opts.SplashDelay
	if delay == 0 {
		delay = DefaultSplashDelay
	}
	m := &Model{
		ctx:    ctx,
		svc:    svc,
		logger: logger,
		delay:  delay,
		splash: delay > 0,
		panels: []panel{
			newContactsPanel(ctx, svc.Contacts),
			newRidesPanel(ctx, svc.Rides),
			newResourcesPanel(ctx, svc.Resources),
		},
	}
	if svc.Alerts != nil {
		m.alert = svc.Alerts.Status()
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	if !m.splash {
		return nil
	}
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return splashDoneMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case splashDoneMsg:
		m.splash = false
		return m, nil
	case alertTickMsg:
		m.alert = m.svc.Alerts.Status()
		if m.alert.Status == alert.StatusSending {
			return m, alertTick()
		}
		if m.alert.Status == alert.StatusSent {
			m.status = "Alert sent to " + strconv.Itoa(len(m.alert.Recipients)) + " contacts"
		}
		return m, nil
	case statusMsg:
		m.status, m.err = string(msg), nil
		return m, nil
	case errorMsg:
		m.status, m.err = "", msg.err
		m.logger.Debug("panel action failed", "panel", m.panels[m.active].title(), "error", msg.err)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.splash {
		m.splash = false
		return m, nil
	}
	current := m.panels[m.active]
	if current.capturing() {
		return m, current.update(msg)
	}

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "tab":
		m.switchTo((m.active + 1) % len(m.panels))
		return m, nil
	case "shift+tab":
		m.switchTo((m.active - 1 + len(m.panels)) % len(m.panels))
		return m, nil
	case "1", "2", "3":
		m.switchTo(int(key[0] - '1'))
		return m, nil
	case "!":
		return m, m.sendSOS()
	case "x":
		return m, m.cancelSOS()
	}
	return m, current.update(msg)
}

func (m *Model) switchTo(i int) {
	if i < 0 || i >= len(m.panels) {
		return
	}
	m.active = i
	m.status, m.err = "", nil
	m.panels[i].refresh()
}

func (m *Model) sendSOS() tea.Cmd {
	a, err := m.svc.Alerts.Send(m.ctx, alert.SendRequest{})
	if err != nil {
		if errors.Is(err, alert.ErrAlreadySending) {
			return statusCmd("An alert is already being sent")
		}
		return errorCmd(err)
	}
	m.alert = a
	m.status, m.err = "", nil
	return alertTick()
}

func (m *Model) cancelSOS() tea.Cmd {
	a, err := m.svc.Alerts.Cancel(m.ctx)
	if err != nil {
		return nil
	}
	m.alert = a
	return statusCmd("Alert cancelled")
}

func (m *Model) View() string {
	if m.splash {
		return splashStyle.Render("Nirapod\n\n" + mutedStyle.Render("your safety companion"))
	}
	var b strings.Builder
	b.WriteString(m.header() + "\n")
	if m.alert.Status == alert.StatusSending {
		names := make([]string, 0, len(m.alert.Recipients))
		for _, r := range m.alert.Recipients {
			names = append(names, r.Name)
		}
		b.WriteString(alertStyle.Render("SOS sending to "+strings.Join(names, ", ")+"  (x to cancel)") + "\n")
	}
	b.WriteString("\n" + panelStyle.Render(m.panels[m.active].view()) + "\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(mutedStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render("tab/1-3 switch • ! SOS • q quit"))
	return b.String()
}

func (m *Model) header() string {
	tabs := make([]string, 0, len(m.panels))
	for i, p := range m.panels {
		label := strconv.Itoa(i+1) + " " + p.title()
		if i == m.active {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return titleStyle.Render("Nirapod") + "  " + strings.Join(tabs, " ")
}
