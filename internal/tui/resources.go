package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ganot/nirapod/internal/domain/resource"
	"github.com/ganot/nirapod/internal/viewstate"
)

type resourcesPanel struct {
	ctx  context.Context
	svc  *resource.Service
	nav  *viewstate.Navigator
	cur  *viewstate.Cursor
	rows []resource.Resource

	search    textinput.Model
	searching bool
	// category indexes resource.Categories, -1 for all.
	category int
}

func newResourcesPanel(ctx context.Context, svc *resource.Service) *resourcesPanel {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search resources"
	p := &resourcesPanel{
		ctx:      ctx,
		svc:      svc,
		nav:      viewstate.NewNavigator(),
		cur:      viewstate.NewCursor(0),
		search:   search,
		category: -1,
	}
	p.refresh()
	return p
}

func (p *resourcesPanel) title() string { return "Resources" }

func (p *resourcesPanel) capturing() bool { return p.searching }

func (p *resourcesPanel) categoryName() string {
	if p.category < 0 {
		return ""
	}
	return resource.Categories[p.category]
}

func (p *resourcesPanel) refresh() {
	p.rows = p.svc.List(resource.Filter{
		Query:      p.search.Value(),
		Category:   p.categoryName(),
		SortBy:     "downloads",
		Descending: true,
	})
	p.cur.Resize(len(p.rows))
}

func (p *resourcesPanel) update(msg tea.KeyMsg) tea.Cmd {
	if p.searching {
		switch msg.String() {
		case "esc":
			p.search.SetValue("")
			fallthrough
		case "enter":
			p.searching = false
			p.search.Blur()
			p.refresh()
			return nil
		}
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		p.refresh()
		return cmd
	}

	if st := p.nav.State(); st.Mode == viewstate.ModeViewing {
		switch msg.String() {
		case "esc", "backspace":
			_, _ = p.nav.Close()
		case "D":
			return p.download(st.SelectedID)
		}
		return nil
	}

	switch msg.String() {
	case "up", "k":
		p.cur.Prev()
	case "down", "j":
		p.cur.Next()
	case "/":
		p.searching = true
		return p.search.Focus()
	case "c":
		p.category++
		if p.category >= len(resource.Categories) {
			p.category = -1
		}
		p.refresh()
	case "enter":
		if len(p.rows) > 0 {
			_, _ = p.nav.Select(p.rows[p.cur.Pos()].ID)
		}
	case "D":
		if len(p.rows) > 0 {
			return p.download(p.rows[p.cur.Pos()].ID)
		}
	}
	return nil
}

func (p *resourcesPanel) download(id string) tea.Cmd {
	r, err := p.svc.RecordDownload(p.ctx, id)
	if err != nil {
		return errorCmd(err)
	}
	p.refresh()
	return statusCmd(fmt.Sprintf("Downloading %s (%s)", r.Title, r.Size))
}

func (p *resourcesPanel) view() string {
	if st := p.nav.State(); st.Mode == viewstate.ModeViewing {
		return p.detail(st.SelectedID)
	}
	var b strings.Builder
	if p.searching || p.search.Value() != "" {
		b.WriteString(p.search.View() + "\n\n")
	}
	if name := p.categoryName(); name != "" {
		b.WriteString(badge(resource.CategoryPalette.Lookup(name)) + "\n\n")
	}
	if len(p.rows) == 0 {
		b.WriteString(mutedStyle.Render("No resources match.") + "\n")
	}
	for i, r := range p.rows {
		mark := " "
		if r.Featured {
			mark = "★"
		}
		line := fmt.Sprintf("%s %-40s %-4s %6d downloads", mark, r.Title, strings.ToUpper(string(r.FileType)), r.Downloads)
		if i == p.cur.Pos() {
			line = selectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter view • D download • c category • / search"))
	return b.String()
}

func (p *resourcesPanel) detail(id string) string {
	r, err := p.svc.Get(id)
	if err != nil {
		return mutedStyle.Render("This resource is no longer available.") + "\n\n" + helpStyle.Render("esc back")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Title) + " " + badge(resource.CategoryPalette.Lookup(r.Category)) + "\n\n")
	b.WriteString(r.Description + "\n\n")
	b.WriteString(labelStyle.Render("Format") + strings.ToUpper(string(r.FileType)) + "\n")
	b.WriteString(labelStyle.Render("Size") + r.Size + "\n")
	b.WriteString(labelStyle.Render("Downloads") + fmt.Sprint(r.Downloads) + "\n")
	b.WriteString(labelStyle.Render("Updated") + r.LastUpdated + "\n")
	b.WriteString("\n" + helpStyle.Render("esc back • D download"))
	return b.String()
}
