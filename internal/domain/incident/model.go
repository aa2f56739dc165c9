package incident

import "time"

// Type classifies an incident.
type Type string

const (
	TypeTheft      Type = "theft"
	TypeAssault    Type = "assault"
	TypeVandalism  Type = "vandalism"
	TypeSuspicious Type = "suspicious"
	TypeOther      Type = "other"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeTheft, TypeAssault, TypeVandalism, TypeSuspicious, TypeOther:
		return true
	}
	return false
}

// Status is where an incident is in its lifecycle.
type Status string

const (
	StatusActive        Status = "active"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
)

// Incident is a user-reported safety incident.
type Incident struct {
	ID             string    `json:"id"`
	Type           Type      `json:"type"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Description    string    `json:"description"`
	Status         Status    `json:"status"`
	ReportedBy     string    `json:"reported_by"`
	Images         []string  `json:"images,omitempty"`
	ResolutionNote string    `json:"resolution_note,omitempty"`
	ReportedAt     time.Time `json:"reported_at,omitzero"`
}

func (i Incident) EntityID() string { return i.ID }

func (i Incident) WithEntityID(id string) Incident {
	i.ID = id
	return i
}

// ReportRequest describes a new incident report.
type ReportRequest struct {
	Type        Type
	Description string
	Date        string
	Time        string
	Latitude    *float64
	Longitude   *float64
	ReportedBy  string
}

// Filter narrows an incident listing.
type Filter struct {
	Query  string
	Type   Type
	Status Status
}
