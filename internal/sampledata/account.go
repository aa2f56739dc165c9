package sampledata

import (
	"time"

	"github.com/ganot/nirapod/internal/domain/health"
	"github.com/ganot/nirapod/internal/domain/notification"
	"github.com/ganot/nirapod/internal/domain/profile"
)

// Notifications are stamped relative to now.
func Notifications(now time.Time) []notification.Notification {
	return []notification.Notification{
		{ID: "1", Title: "Safety Alert", Message: "Suspicious activity reported in your area", Type: notification.TypeAlert, Timestamp: now},
		{ID: "2", Title: "Community Update", Message: "New safety patrol schedule posted", Type: notification.TypeInfo, Timestamp: now.Add(-time.Hour), Read: true},
		{ID: "3", Title: "Live Stream Started", Message: "Community Safety Workshop is now live", Type: notification.TypeSuccess, Timestamp: now.Add(-2 * time.Hour)},
		{ID: "4", Title: "Account Activity", Message: "Your emergency contacts were updated", Type: notification.TypeInfo, Timestamp: now.Add(-24 * time.Hour), Read: true},
	}
}

func Profile() profile.Profile {
	return profile.Profile{
		ID:          profile.ID,
		Name:        "Sarah Johnson",
		Email:       "sarah.johnson@example.com",
		Phone:       "+1 (555) 123-4567",
		Address:     "123 Safety Street, Secure City, SC 12345",
		MemberSince: "January 2024",
		SafetyScore: 85,
		Security: profile.Security{
			TwoFactorAuth:     true,
			LocationSharing:   profile.SharingEmergencyOnly,
			DataBackup:        true,
			NotificationLevel: profile.LevelHigh,
		},
	}
}

func Providers() []health.Provider {
	return []health.Provider{
		{ID: "1", Name: "Dr. Sarah Williams", Type: health.TypeFamilyMedicine, Distance: "0.5 miles", Rating: 5, Address: "123 Health St, Medical Center", Phone: "(555) 123-4567"},
		{ID: "2", Name: "City Hospital", Type: health.TypeEmergencyCare, Distance: "1.2 miles", Rating: 4, Address: "456 Hospital Ave, Medical District", Phone: "(555) 987-6543"},
		{ID: "3", Name: "Dr. Michael Chen", Type: health.TypeUrgentCare, Distance: "0.8 miles", Rating: 4, Address: "789 Urgent Ln, Health Plaza", Phone: "(555) 234-5678"},
	}
}

func Medications() []health.Medication {
	return []health.Medication{
		{ID: "1", Name: "Vitamin D", Time: "8:00 AM", Dosage: "1000 IU", Instructions: "Take with food", Status: health.DoseTaken},
		{ID: "2", Name: "Allergy Medication", Time: "12:00 PM", Dosage: "10mg", Instructions: "Take with water", Status: health.DoseUpcoming},
		{ID: "3", Name: "Pain Reliever", Time: "6:00 PM", Dosage: "500mg", Instructions: "Take as needed for pain", Status: health.DoseUpcoming},
	}
}
