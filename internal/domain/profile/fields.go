package profile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ganot/nirapod/internal/viewstate"
)

// SharingChoices lists the location sharing options in display order.
var SharingChoices = []string{SharingNever, SharingEmergencyOnly, SharingContacts, SharingAlways}

// LevelChoices lists the notification levels in display order.
var LevelChoices = []string{LevelLow, LevelMedium, LevelHigh}

func checkEmail(v string) error {
	at := strings.Index(v, "@")
	if at <= 0 || at == len(v)-1 || strings.ContainsAny(v, " \t") {
		return errors.New("must be an email address")
	}
	return nil
}

func checkPhone(v string) error {
	digits := 0
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune("+-() .", r):
		default:
			return errors.New("may only hold digits, spaces and + - ( ) .")
		}
	}
	if digits < 3 {
		return errors.New("must hold at least 3 digits")
	}
	return nil
}

// Fields are the inline-editable profile fields. Name, email and phone
// cannot be cleared.
func Fields() []viewstate.Field[Profile] {
	return []viewstate.Field[Profile]{
		viewstate.TextField("name", "Name",
			func(p Profile) string { return p.Name },
			func(p *Profile, v string) { p.Name = strings.TrimSpace(v) }).Require(),
		viewstate.TextField("email", "Email",
			func(p Profile) string { return p.Email },
			func(p *Profile, v string) { p.Email = strings.TrimSpace(v) }).Require().Checked(checkEmail),
		viewstate.TextField("phone", "Phone",
			func(p Profile) string { return p.Phone },
			func(p *Profile, v string) { p.Phone = strings.TrimSpace(v) }).Require().Checked(checkPhone),
		viewstate.TextField("address", "Address",
			func(p Profile) string { return p.Address },
			func(p *Profile, v string) { p.Address = strings.TrimSpace(v) }),
	}
}

func (u SecurityUpdate) apply(s Security) (Security, error) {
	if u.LocationSharing != nil {
		if !slices.Contains(SharingChoices, *u.LocationSharing) {
			return s, fmt.Errorf("%w: location_sharing must be one of %s", ErrInvalidSetting, strings.Join(SharingChoices, ", "))
		}
		s.LocationSharing = *u.LocationSharing
	}
	if u.NotificationLevel != nil {
		if !slices.Contains(LevelChoices, *u.NotificationLevel) {
			return s, fmt.Errorf("%w: notification_level must be one of %s", ErrInvalidSetting, strings.Join(LevelChoices, ", "))
		}
		s.NotificationLevel = *u.NotificationLevel
	}
	if u.TwoFactorAuth != nil {
		s.TwoFactorAuth = *u.TwoFactorAuth
	}
	if u.DataBackup != nil {
		s.DataBackup = *u.DataBackup
	}
	return s, nil
}
