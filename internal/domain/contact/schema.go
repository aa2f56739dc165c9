package contact

import (
	"cmp"
	"errors"
	"strconv"
	"strings"

	"github.com/ganot/nirapod/internal/viewstate"
)

// ContactSchema searches name, phone, email, relationship and notes.
var ContactSchema = viewstate.Schema[Contact]{
	Searchable: func(c Contact) []string {
		return []string{c.Name, c.Phone, c.Email, c.Relationship, c.Notes}
	},
	Fields: map[string]func(Contact) string{
		"type":     func(c Contact) string { return string(c.Type) },
		"favorite": func(c Contact) string { return strconv.FormatBool(c.IsFavorite) },
		"sharing":  func(c Contact) string { return strconv.FormatBool(c.IsSharing) },
	},
	Sorts: map[string]func(a, b Contact) int{
		"name": func(a, b Contact) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		},
		"last_contacted": func(a, b Contact) int { return cmp.Compare(a.LastContacted, b.LastContacted) },
	},
}

// GroupSchema searches group name and description.
var GroupSchema = viewstate.Schema[Group]{
	Searchable: func(g Group) []string { return []string{g.Name, g.Description} },
	Fields: map[string]func(Group) string{
		"emergency": func(g Group) string { return strconv.FormatBool(g.Emergency) },
		"color":     func(g Group) string { return g.Color },
	},
	Sorts: map[string]func(a, b Group) int{
		"name": func(a, b Group) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
		"size": func(a, b Group) int { return cmp.Compare(len(a.ContactIDs), len(b.ContactIDs)) },
	},
}

// TypePalette maps contact types to their badge.
var TypePalette = viewstate.NewPalette(
	viewstate.Presentation{Label: "Other", Icon: "user", Color: "gray"},
	map[ContactType]viewstate.Presentation{
		TypePersonal:  {Label: "Personal", Icon: "user", Color: "blue"},
		TypeEmergency: {Label: "Emergency", Icon: "alert-triangle", Color: "red"},
		TypeMedical:   {Label: "Medical", Icon: "heart-pulse", Color: "green"},
		TypeWork:      {Label: "Work", Icon: "briefcase", Color: "purple"},
		TypeOther:     {Label: "Other", Icon: "user-plus", Color: "gray"},
	},
)

func checkType(v string) error {
	if !ContactType(v).Valid() {
		return errors.New("must be one of personal, emergency, medical, work, other")
	}
	return nil
}

func checkPhone(v string) error {
	digits := 0
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune(" +-().", r):
		default:
			return errors.New("may only contain digits, spaces and + - ( ) .")
		}
	}
	if digits < 3 {
		return errors.New("too short")
	}
	return nil
}

func checkEmail(v string) error {
	at := strings.Index(v, "@")
	if at <= 0 || at == len(v)-1 {
		return errors.New("not an email address")
	}
	return nil
}

func checkBool(v string) error {
	if _, err := strconv.ParseBool(v); err != nil {
		return errors.New("must be true or false")
	}
	return nil
}

func parseBool(v string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return b
}

// ContactFields is the contact form. Name and phone are required.
func ContactFields() []viewstate.Field[Contact] {
	return []viewstate.Field[Contact]{
		viewstate.TextField("name", "Name",
			func(c Contact) string { return c.Name },
			func(c *Contact, v string) { c.Name = v }).Require(),
		viewstate.TextField("phone", "Phone",
			func(c Contact) string { return c.Phone },
			func(c *Contact, v string) { c.Phone = v }).Require().Checked(checkPhone),
		viewstate.TextField("email", "Email",
			func(c Contact) string { return c.Email },
			func(c *Contact, v string) { c.Email = v }).Checked(checkEmail),
		viewstate.TextField("address", "Address",
			func(c Contact) string { return c.Address },
			func(c *Contact, v string) { c.Address = v }),
		viewstate.TextField("relationship", "Relationship",
			func(c Contact) string { return c.Relationship },
			func(c *Contact, v string) { c.Relationship = v }),
		viewstate.TextField("type", "Type",
			func(c Contact) string { return string(c.Type) },
			func(c *Contact, v string) { c.Type = ContactType(strings.ToLower(strings.TrimSpace(v))) }).Require().Checked(checkType),
		viewstate.TextField("notes", "Notes",
			func(c Contact) string { return c.Notes },
			func(c *Contact, v string) { c.Notes = v }),
		viewstate.TextField("favorite", "Favorite",
			func(c Contact) string { return strconv.FormatBool(c.IsFavorite) },
			func(c *Contact, v string) { c.IsFavorite = parseBool(v) }).Checked(checkBool),
		viewstate.TextField("sharing", "Share location",
			func(c Contact) string { return strconv.FormatBool(c.IsSharing) },
			func(c *Contact, v string) { c.IsSharing = parseBool(v) }).Checked(checkBool),
	}
}

// GroupFields is the group form. Only the name is required.
func GroupFields() []viewstate.Field[Group] {
	return []viewstate.Field[Group]{
		viewstate.TextField("name", "Name",
			func(g Group) string { return g.Name },
			func(g *Group, v string) { g.Name = v }).Require(),
		viewstate.TextField("description", "Description",
			func(g Group) string { return g.Description },
			func(g *Group, v string) { g.Description = v }),
		viewstate.TextField("color", "Color",
			func(g Group) string { return g.Color },
			func(g *Group, v string) { g.Color = v }),
		viewstate.TextField("emergency", "Emergency group",
			func(g Group) string { return strconv.FormatBool(g.Emergency) },
			func(g *Group, v string) { g.Emergency = parseBool(v) }).Checked(checkBool),
	}
}

func newContact() Contact { return Contact{Type: TypePersonal} }

func newGroup() Group { return Group{Color: "blue", ContactIDs: []string{}} }
