package contact

// ContactType classifies a contact.
type ContactType string

const (
	TypePersonal  ContactType = "personal"
	TypeEmergency ContactType = "emergency"
	TypeMedical   ContactType = "medical"
	TypeWork      ContactType = "work"
	TypeOther     ContactType = "other"
)

// ContactTypes lists the types in display order.
var ContactTypes = []ContactType{TypePersonal, TypeEmergency, TypeMedical, TypeWork, TypeOther}

// Valid reports whether t is a known type.
func (t ContactType) Valid() bool {
	switch t {
	case TypePersonal, TypeEmergency, TypeMedical, TypeWork, TypeOther:
		return true
	}
	return false
}

// Contact is a person or service the user can reach in an emergency.
type Contact struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email,omitempty"`
	Address       string      `json:"address,omitempty"`
	Relationship  string      `json:"relationship,omitempty"`
	Type          ContactType `json:"type"`
	Notes         string      `json:"notes,omitempty"`
	IsSharing     bool        `json:"is_sharing"`
	IsFavorite    bool        `json:"is_favorite"`
	LastContacted string      `json:"last_contacted,omitempty"`
}

func (c Contact) EntityID() string { return c.ID }

func (c Contact) WithEntityID(id string) Contact {
	c.ID = id
	return c
}

// Group is a named set of contacts.
type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color,omitempty"`
	Emergency   bool     `json:"is_emergency"`
	ContactIDs  []string `json:"contact_ids"`
}

func (g Group) EntityID() string { return g.ID }

func (g Group) WithEntityID(id string) Group {
	g.ID = id
	return g
}

// GroupDetail is a group with its member contacts resolved.
type GroupDetail struct {
	Group
	Members []Contact `json:"members"`
}

// View is the top-level tab of the contacts panel.
type View string

const (
	ViewContacts  View = "contacts"
	ViewGroups    View = "groups"
	ViewEmergency View = "emergency"
)

// ViewContent is the active tab of the contacts panel and what it lists.
type ViewContent struct {
	View     View      `json:"view"`
	Contacts []Contact `json:"contacts,omitempty"`
	Groups   []Group   `json:"groups,omitempty"`
}
