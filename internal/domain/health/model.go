package health

// ProviderType is the kind of care a provider offers.
type ProviderType string

const (
	TypeFamilyMedicine ProviderType = "Family Medicine"
	TypeEmergencyCare  ProviderType = "Emergency Care"
	TypeUrgentCare     ProviderType = "Urgent Care"
	TypeMentalHealth   ProviderType = "Mental Health"
)

// ProviderTypes lists the directory chips in display order.
var ProviderTypes = []ProviderType{TypeEmergencyCare, TypeUrgentCare, TypeFamilyMedicine, TypeMentalHealth}

// Provider is a healthcare provider in the directory.
type Provider struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     ProviderType `json:"type"`
	Distance string       `json:"distance"`
	Rating   int          `json:"rating"`
	Address  string       `json:"address"`
	Phone    string       `json:"phone"`
}

func (p Provider) EntityID() string { return p.ID }

func (p Provider) WithEntityID(id string) Provider {
	p.ID = id
	return p
}

// ProviderFilter narrows the directory. SortBy is name, distance or rating.
type ProviderFilter struct {
	Query      string
	Type       ProviderType
	SortBy     string
	Descending bool
}

// DoseStatus is where a scheduled dose stands today.
type DoseStatus string

const (
	DoseUpcoming DoseStatus = "upcoming"
	DoseTaken    DoseStatus = "taken"
	DoseMissed   DoseStatus = "missed"
)

// Medication is one entry in today's medication schedule.
type Medication struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Time         string     `json:"time"`
	Dosage       string     `json:"dosage"`
	Instructions string     `json:"instructions,omitempty"`
	Status       DoseStatus `json:"status"`
}

func (m Medication) EntityID() string { return m.ID }

func (m Medication) WithEntityID(id string) Medication {
	m.ID = id
	return m
}

// MedicationRequest describes a medication to add to the schedule.
type MedicationRequest struct {
	Name         string
	Time         string
	Dosage       string
	Instructions string
}

// Schedule is today's medication list with its summary.
type Schedule struct {
	Medications []Medication `json:"medications"`
	Due         int          `json:"due"`
	Taken       int          `json:"taken"`
	Missed      int          `json:"missed"`
}
