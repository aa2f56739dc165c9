package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/ganot/nirapod/internal/viewstate"
)

type contactsPanel struct {
	ctx  context.Context
	svc  *contact.Service
	nav  *viewstate.Navigator
	cur  *viewstate.Cursor
	rows   []contact.Contact
	groups []contact.Group

	search        textinput.Model
	searching     bool
	favoritesOnly bool

	draft *viewstate.Form[contact.Contact]
	form  *form
}

func newContactsPanel(ctx context.Context, svc *contact.Service) *contactsPanel {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search contacts"
	p := &contactsPanel{
		ctx:    ctx,
		svc:    svc,
		nav:    viewstate.NewNavigator(),
		cur:    viewstate.NewCursor(0),
		search: search,
		draft:  viewstate.NewForm(newContactDraft, contact.ContactFields()...),
	}
	p.refresh()
	return p
}

func newContactDraft() contact.Contact { return contact.Contact{Type: contact.TypePersonal} }

func (p *contactsPanel) title() string { return "Contacts" }

func (p *contactsPanel) capturing() bool {
	return p.searching || p.nav.State().Mode == viewstate.ModeCreating
}

func (p *contactsPanel) refresh() {
	switch p.svc.View() {
	case contact.ViewGroups:
		p.rows = nil
		p.groups = p.svc.ListGroups(p.search.Value(), false)
		p.cur.Resize(len(p.groups))
		return
	case contact.ViewEmergency:
		p.rows = p.svc.EmergencyRecipients()
	default:
		p.rows = p.svc.ListContacts(contact.ContactFilter{
			Query:         p.search.Value(),
			FavoritesOnly: p.favoritesOnly,
		})
	}
	p.groups = nil
	p.cur.Resize(len(p.rows))
}

func (p *contactsPanel) highlighted() (contact.Contact, bool) {
	if len(p.rows) == 0 || p.cur.Pos() >= len(p.rows) {
		return contact.Contact{}, false
	}
	return p.rows[p.cur.Pos()], true
}

// target is the contact the key applies to: the open detail, else the highlighted row.
func (p *contactsPanel) target() (contact.Contact, bool) {
	if st := p.nav.State(); st.Mode == viewstate.ModeViewing {
		c, err := p.svc.GetContact(st.SelectedID)
		return c, err == nil
	}
	return p.highlighted()
}

func (p *contactsPanel) update(msg tea.KeyMsg) tea.Cmd {
	if p.searching {
		return p.updateSearch(msg)
	}
	switch p.nav.State().Mode {
	case viewstate.ModeCreating:
		return p.updateForm(msg)
	case viewstate.ModeViewing:
		switch msg.String() {
		case "esc", "backspace":
			_, _ = p.nav.Close()
			return nil
		case "d":
			c, ok := p.target()
			if !ok {
				return nil
			}
			if err := p.svc.DeleteContact(p.ctx, c.ID); err != nil {
				return errorCmd(err)
			}
			_, _ = p.nav.Close()
			p.refresh()
			return statusCmd(fmt.Sprintf("Deleted %s", c.Name))
		}
	}

	switch msg.String() {
	case "up", "k":
		p.cur.Prev()
	case "down", "j":
		p.cur.Next()
	case "enter":
		if c, ok := p.highlighted(); ok {
			_, _ = p.nav.Select(c.ID)
		}
	case "/":
		p.searching = true
		return p.search.Focus()
	case "F":
		p.favoritesOnly = !p.favoritesOnly
		p.refresh()
	case "v":
		p.svc.NextView()
		p.cur = viewstate.NewCursor(0)
		p.refresh()
	case "f":
		c, ok := p.target()
		if !ok {
			return nil
		}
		updated, err := p.svc.ToggleFavorite(p.ctx, c.ID)
		if err != nil {
			return errorCmd(err)
		}
		p.refresh()
		if updated.IsFavorite {
			return statusCmd(updated.Name + " added to favorites")
		}
		return statusCmd(updated.Name + " removed from favorites")
	case "s":
		c, ok := p.target()
		if !ok {
			return nil
		}
		updated, err := p.svc.ToggleSharing(p.ctx, c.ID)
		if err != nil {
			return errorCmd(err)
		}
		if updated.IsSharing {
			return statusCmd("Sharing location with " + updated.Name)
		}
		return statusCmd("Stopped sharing location with " + updated.Name)
	case "n":
		if _, err := p.nav.Create(); err != nil {
			return nil
		}
		p.draft.Discard()
		_ = p.draft.OpenCreate()
		rec, _ := p.draft.Draft()
		p.form = newForm(p.draft, specs(p.draft.Fields(), rec, "favorite", "sharing"))
		return p.form.focusCmd()
	}
	return nil
}

func (p *contactsPanel) updateSearch(msg tea.KeyMsg) tea.Cmd {
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

func (p *contactsPanel) updateForm(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		p.draft.Discard()
		_, _ = p.nav.Cancel()
		return nil
	}
	submit, cmd := p.form.update(msg)
	if !submit {
		return cmd
	}
	rec, _, err := p.draft.Submission()
	if err != nil {
		p.form.setError(err)
		return nil
	}
	created, err := p.svc.CreateContact(p.ctx, contact.CreateContactRequest{
		Name:         rec.Name,
		Phone:        rec.Phone,
		Email:        rec.Email,
		Address:      rec.Address,
		Relationship: rec.Relationship,
		Type:         rec.Type,
		Notes:        rec.Notes,
	})
	if err != nil {
		p.form.setError(err)
		return errorCmd(err)
	}
	p.draft.Discard()
	_, _ = p.nav.Save()
	p.refresh()
	return statusCmd("Added " + created.Name)
}

func (p *contactsPanel) view() string {
	switch st := p.nav.State(); st.Mode {
	case viewstate.ModeCreating:
		return titleStyle.Render("New contact") + "\n\n" + p.form.view()
	case viewstate.ModeViewing:
		return p.detail(st.SelectedID)
	}

	var b strings.Builder
	b.WriteString(p.viewTabs() + "\n\n")
	switch p.svc.View() {
	case contact.ViewGroups:
		return p.groupList(&b)
	case contact.ViewEmergency:
		return p.recipientList(&b)
	}
	if p.searching || p.search.Value() != "" {
		b.WriteString(p.search.View() + "\n\n")
	}
	if p.favoritesOnly {
		b.WriteString(mutedStyle.Render("favorites only") + "\n")
	}
	if len(p.rows) == 0 {
		b.WriteString(mutedStyle.Render("No contacts match.") + "\n")
	}
	for i, c := range p.rows {
		star := " "
		if c.IsFavorite {
			star = "★"
		}
		line := fmt.Sprintf("%s %-28s %-16s %s", star, c.Name, c.Phone, badge(contact.TypePalette.Lookup(c.Type)))
		if i == p.cur.Pos() {
			line = selectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter view • n new • f favorite • s share • F favorites only • / search • v next tab"))
	return b.String()
}

func (p *contactsPanel) viewTabs() string {
	current := p.svc.View()
	tabs := make([]string, 0, 3)
	for _, v := range []contact.View{contact.ViewContacts, contact.ViewGroups, contact.ViewEmergency} {
		if v == current {
			tabs = append(tabs, activeTab.Render(string(v)))
		} else {
			tabs = append(tabs, tabStyle.Render(string(v)))
		}
	}
	return strings.Join(tabs, " ")
}

func (p *contactsPanel) groupList(b *strings.Builder) string {
	if p.searching || p.search.Value() != "" {
		b.WriteString(p.search.View() + "\n\n")
	}
	if len(p.groups) == 0 {
		b.WriteString(mutedStyle.Render("No groups match.") + "\n")
	}
	for i, g := range p.groups {
		mark := " "
		if g.Emergency {
			mark = "!"
		}
		line := fmt.Sprintf("%s %-28s %d members", mark, g.Name, len(g.ContactIDs))
		if i == p.cur.Pos() {
			line = selectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("/ search • v next tab"))
	return b.String()
}

func (p *contactsPanel) recipientList(b *strings.Builder) string {
	b.WriteString(mutedStyle.Render("An SOS alert reaches these contacts.") + "\n\n")
	if len(p.rows) == 0 {
		b.WriteString(mutedStyle.Render("No emergency recipients. Add a contact to an emergency group.") + "\n")
	}
	for i, c := range p.rows {
		line := fmt.Sprintf("%-28s %s", c.Name, c.Phone)
		if i == p.cur.Pos() {
			line = selectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter view • v next tab"))
	return b.String()
}

func (p *contactsPanel) detail(id string) string {
	c, err := p.svc.GetContact(id)
	if err != nil {
		return mutedStyle.Render("This contact no longer exists.") + "\n\n" + helpStyle.Render("esc back")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Name) + " " + badge(contact.TypePalette.Lookup(c.Type)) + "\n\n")
	rows := [][2]string{
		{"Phone", c.Phone},
		{"Email", c.Email},
		{"Address", c.Address},
		{"Relationship", c.Relationship},
		{"Notes", c.Notes},
		{"Last contacted", c.LastContacted},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		b.WriteString(labelStyle.Render(r[0]) + r[1] + "\n")
	}
	sharing := "off"
	if c.IsSharing {
		sharing = "on"
	}
	b.WriteString(labelStyle.Render("Location sharing") + sharing + "\n")
	if groups := p.svc.GroupsOf(c.ID); len(groups) > 0 {
		names := make([]string, 0, len(groups))
		for _, g := range groups {
			names = append(names, g.Name)
		}
		b.WriteString(labelStyle.Render("Groups") + strings.Join(names, ", ") + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("esc back • f favorite • s share • d delete"))
	return b.String()
}
