package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ganot/nirapod/internal/viewstate"
)

var (
	accent = lipgloss.Color("205")
	muted  = lipgloss.Color("241")
	danger = lipgloss.Color("196")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	activeTab     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("229")).Background(accent)
	disabledTab   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("238")).Strikethrough(true)
	selectedRow   = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(muted)
	errorStyle    = lipgloss.NewStyle().Foreground(danger)
	alertStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(danger).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Width(20).Foreground(muted)
	panelStyle    = lipgloss.NewStyle().Padding(1, 2)
	splashStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(2, 4).Border(lipgloss.RoundedBorder()).BorderForeground(accent)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// paletteColors maps palette color names to terminal colors.
var paletteColors = map[string]lipgloss.Color{
	"red":    lipgloss.Color("196"),
	"orange": lipgloss.Color("208"),
	"yellow": lipgloss.Color("220"),
	"green":  lipgloss.Color("42"),
	"blue":   lipgloss.Color("33"),
	"purple": lipgloss.Color("135"),
	"indigo": lipgloss.Color("63"),
	"pink":   lipgloss.Color("205"),
	"black":  lipgloss.Color("235"),
	"gray":   lipgloss.Color("245"),
}

func badge(p viewstate.Presentation) string {
	color, ok := paletteColors[p.Color]
	if !ok {
		color = paletteColors["gray"]
	}
	return lipgloss.NewStyle().Foreground(color).Render("[" + p.Label + "]")
}
