package mcp

import (
	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/ganot/nirapod/internal/domain/guide"
	"github.com/ganot/nirapod/internal/domain/health"
	"github.com/ganot/nirapod/internal/domain/incident"
	"github.com/ganot/nirapod/internal/domain/notification"
	"github.com/ganot/nirapod/internal/domain/resource"
	"github.com/ganot/nirapod/internal/domain/rideshare"
)

type IDParams struct {
	ID string `json:"id"`
}

type ListContactsParams struct {
	Query         string              `json:"query,omitempty"`
	Type          contact.ContactType `json:"type,omitempty"`
	FavoritesOnly bool                `json:"favorites_only,omitempty"`
	SortBy        string              `json:"sort_by,omitempty"`
	Descending    bool                `json:"descending,omitempty"`
}

type CreateContactParams struct {
	Name         string              `json:"name"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email,omitempty"`
	Address      string              `json:"address,omitempty"`
	Relationship string              `json:"relationship,omitempty"`
	Type         contact.ContactType `json:"type,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	IsFavorite   bool                `json:"is_favorite,omitempty"`
	IsSharing    bool                `json:"is_sharing,omitempty"`
}

type UpdateContactParams struct {
	ID           string               `json:"id"`
	Name         *string              `json:"name,omitempty"`
	Phone        *string              `json:"phone,omitempty"`
	Email        *string              `json:"email,omitempty"`
	Address      *string              `json:"address,omitempty"`
	Relationship *string              `json:"relationship,omitempty"`
	Type         *contact.ContactType `json:"type,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
}

type ListGroupsParams struct {
	Query         string `json:"query,omitempty"`
	EmergencyOnly bool   `json:"emergency_only,omitempty"`
}

type CreateGroupParams struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color,omitempty"`
	Emergency   bool     `json:"is_emergency,omitempty"`
	ContactIDs  []string `json:"contact_ids,omitempty"`
}

type UpdateGroupParams struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Emergency   *bool   `json:"is_emergency,omitempty"`
}

type ContactsViewParams struct {
	View contact.View `json:"view,omitempty"`
}

type GroupMemberParams struct {
	GroupID   string `json:"group_id"`
	ContactID string `json:"contact_id"`
}

type SendSOSParams struct {
	Message  string `json:"message,omitempty"`
	Location string `json:"location,omitempty"`
}

type StartRideParams struct {
	DriverName        string            `json:"driver_name"`
	DriverAge         string            `json:"driver_age,omitempty"`
	VehicleNumber     string            `json:"vehicle_number"`
	VehicleModel      string            `json:"vehicle_model"`
	PickupLocation    string            `json:"pickup_location"`
	Destination       string            `json:"destination"`
	EstimatedArrival  string            `json:"estimated_arrival"`
	EstimatedDuration string            `json:"estimated_duration"`
	Company           rideshare.Company `json:"company,omitempty"`
}

func (p StartRideParams) values() map[string]string {
	v := map[string]string{
		"driver_name":        p.DriverName,
		"driver_age":         p.DriverAge,
		"vehicle_number":     p.VehicleNumber,
		"vehicle_model":      p.VehicleModel,
		"pickup_location":    p.PickupLocation,
		"destination":        p.Destination,
		"estimated_arrival":  p.EstimatedArrival,
		"estimated_duration": p.EstimatedDuration,
	}
	if p.Company != "" {
		v["company"] = string(p.Company)
	}
	return v
}

type ListTripsParams struct {
	Query   string               `json:"query,omitempty"`
	Company rideshare.Company    `json:"company,omitempty"`
	Status  rideshare.TripStatus `json:"status,omitempty"`
}

type ListResourcesParams struct {
	Query        string            `json:"query,omitempty"`
	Category     string            `json:"category,omitempty"`
	FileType     resource.FileType `json:"file_type,omitempty"`
	FeaturedOnly bool              `json:"featured_only,omitempty"`
	SortBy       string            `json:"sort_by,omitempty"`
	Descending   bool              `json:"descending,omitempty"`
}

type ScoreAssessmentParams struct {
	Answers map[string]string `json:"answers"`
}

type ListGuidesParams struct {
	Query      string           `json:"query,omitempty"`
	Category   string           `json:"category,omitempty"`
	Difficulty guide.Difficulty `json:"difficulty,omitempty"`
	SortBy     string           `json:"sort_by,omitempty"`
	Descending bool             `json:"descending,omitempty"`
}

type StepGuideParams struct {
	Action string `json:"action"`
	Index  int    `json:"index,omitempty"`
}

type LikeGuideResponse struct {
	Guide guide.Guide `json:"guide"`
	Liked bool        `json:"liked"`
}

type ListMeditationsParams struct {
	Query        string `json:"query,omitempty"`
	Category     string `json:"category,omitempty"`
	Level        string `json:"level,omitempty"`
	FeaturedOnly bool   `json:"featured_only,omitempty"`
}

type ListCrisisParams struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
}

type SetVolumeParams struct {
	Volume int `json:"volume"`
}

type ListIncidentsParams struct {
	Query  string          `json:"query,omitempty"`
	Type   incident.Type   `json:"type,omitempty"`
	Status incident.Status `json:"status,omitempty"`
}

type ReportIncidentParams struct {
	Type        incident.Type `json:"type"`
	Description string        `json:"description"`
	Date        string        `json:"date,omitempty"`
	Time        string        `json:"time,omitempty"`
	Latitude    *float64      `json:"latitude,omitempty"`
	Longitude   *float64      `json:"longitude,omitempty"`
	ReportedBy  string        `json:"reported_by,omitempty"`
}

type UpdateIncidentStatusParams struct {
	ID     string          `json:"id"`
	Status incident.Status `json:"status"`
	Note   *string         `json:"note,omitempty"`
}

type ListTutorialsParams struct {
	Query    string `json:"query,omitempty"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

type GradeQuizParams struct {
	TutorialID string         `json:"tutorial_id"`
	Answers    map[string]int `json:"answers"`
}

type TutorialParams struct {
	TutorialID string `json:"tutorial_id"`
}

type GetRecentActivityParams struct {
	Panel    string                 `json:"panel,omitempty"`
	RecordID *string                `json:"record_id,omitempty"`
	Type     *activity.ActivityType `json:"type,omitempty"`
	Limit    int                    `json:"limit,omitempty"`
	Offset   int                    `json:"offset,omitempty"`
}

type ListNotificationsParams struct {
	UnreadOnly bool              `json:"unread_only,omitempty"`
	Type       notification.Type `json:"type,omitempty"`
}

type NotificationListResponse struct {
	Notifications []notification.Notification `json:"notifications"`
	Unread        int                         `json:"unread"`
}

type PushNotificationParams struct {
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Type    notification.Type `json:"type,omitempty"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type ProfileFieldParams struct {
	Field string `json:"field"`
}

type SaveProfileEditParams struct {
	Value string `json:"value"`
}

type SecurityPreferencesParams struct {
	TwoFactorAuth     *bool   `json:"two_factor_auth,omitempty"`
	LocationSharing   *string `json:"location_sharing,omitempty"`
	DataBackup        *bool   `json:"data_backup,omitempty"`
	NotificationLevel *string `json:"notification_level,omitempty"`
}

type ListProvidersParams struct {
	Query      string              `json:"query,omitempty"`
	Type       health.ProviderType `json:"type,omitempty"`
	SortBy     string              `json:"sort_by,omitempty"`
	Descending bool                `json:"descending,omitempty"`
}

type AddMedicationParams struct {
	Name         string `json:"name"`
	Time         string `json:"time"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions,omitempty"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
