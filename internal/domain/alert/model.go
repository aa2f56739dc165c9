package alert

import "time"

// Status is the lifecycle of an SOS alert.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
	StatusCancelled Status = "cancelled"
)

// Recipient is who an alert goes to.
type Recipient struct {
	ContactID string `json:"contact_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
}

// Alert is one SOS dispatch.
type Alert struct {
	ID         string      `json:"id"`
	Status     Status      `json:"status"`
	Message    string      `json:"message"`
	Location   string      `json:"location,omitempty"`
	Recipients []Recipient `json:"recipients"`
	StartedAt  time.Time   `json:"started_at,omitzero"`
	FinishedAt time.Time   `json:"finished_at,omitzero"`
}

// SendRequest describes an alert to dispatch.
type SendRequest struct {
	Message  string
	Location string
}

// DefaultMessage is sent when the request has none.
const DefaultMessage = "I need help. This is an emergency alert from Nirapod."
