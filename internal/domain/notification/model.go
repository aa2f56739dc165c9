package notification

import "time"

// Type sets how a notification is highlighted.
type Type string

const (
	TypeAlert   Type = "alert"
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeAlert, TypeInfo, TypeSuccess, TypeWarning:
		return true
	}
	return false
}

// Notification is one entry in the notification center.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

func (n Notification) EntityID() string { return n.ID }

func (n Notification) WithEntityID(id string) Notification {
	n.ID = id
	return n
}

// PushRequest describes a new notification. Type defaults to info.
type PushRequest struct {
	Title   string
	Message string
	Type    Type
}

// Filter narrows the notification list.
type Filter struct {
	UnreadOnly bool
	Type       Type
}
