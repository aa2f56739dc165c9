package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeRecordCreated     ActivityType = "record_created"
	TypeRecordUpdated     ActivityType = "record_updated"
	TypeRecordDeleted     ActivityType = "record_deleted"
	TypeRideStarted       ActivityType = "ride_started"
	TypeRideEnded         ActivityType = "ride_ended"
	TypeRideCancelled     ActivityType = "ride_cancelled"
	TypeAlertSending      ActivityType = "alert_sending"
	TypeAlertSent         ActivityType = "alert_sent"
	TypeAlertCancelled    ActivityType = "alert_cancelled"
	TypeIncidentReported  ActivityType = "incident_reported"
	TypeIncidentStatus    ActivityType = "incident_status"
	TypeResourceDownload  ActivityType = "resource_download"
	TypeMeditationSession ActivityType = "meditation_session"
	TypeMedicationTaken   ActivityType = "medication_taken"
	TypeMedicationMissed  ActivityType = "medication_missed"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	Panel        string       `json:"panel"`
	RecordID     *string      `json:"record_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
