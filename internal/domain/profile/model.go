package profile

// Location sharing choices.
const (
	SharingAlways        = "Always"
	SharingContacts      = "Emergency contacts only"
	SharingEmergencyOnly = "Emergencies only"
	SharingNever         = "Never"
)

// Notification levels.
const (
	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"
)

// Security holds the account's security preferences.
type Security struct {
	TwoFactorAuth     bool   `json:"two_factor_auth"`
	LocationSharing   string `json:"location_sharing"`
	DataBackup        bool   `json:"data_backup"`
	NotificationLevel string `json:"notification_level"`
}

// Profile is the signed-in user's account.
type Profile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address,omitempty"`
	MemberSince string   `json:"member_since,omitempty"`
	SafetyScore int      `json:"safety_score"`
	Security    Security `json:"security"`
}

func (p Profile) EntityID() string { return p.ID }

func (p Profile) WithEntityID(id string) Profile {
	p.ID = id
	return p
}

// SecurityUpdate changes the non-nil preferences.
type SecurityUpdate struct {
	TwoFactorAuth     *bool
	LocationSharing   *string
	DataBackup        *bool
	NotificationLevel *string
}

// EditState reports which field, if any, is being edited.
type EditState struct {
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}
