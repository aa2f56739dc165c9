package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ganot/nirapod/internal/app"
	"github.com/ganot/nirapod/internal/config"
	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/domain/alert"
	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/ganot/nirapod/internal/domain/guide"
	"github.com/ganot/nirapod/internal/domain/health"
	"github.com/ganot/nirapod/internal/domain/notification"
	"github.com/ganot/nirapod/internal/domain/profile"
	"github.com/ganot/nirapod/internal/domain/resource"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.Default()
	cfg.Timing.AlertDelay = time.Hour
	a, err := app.New(context.Background(), cfg, nil, app.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func servicesFor(a *app.App) Services {
	return Services{
		Contacts:      a.Contacts,
		Alerts:        a.Alerts,
		Notifications: a.Notifications,
		Rides:         a.Rides,
		Resources:     a.Resources,
		Guides:        a.Guides,
		Wellness:      a.Wellness,
		Incidents:     a.Incidents,
		Tutorials:     a.Tutorials,
		Profile:       a.Profile,
		Health:        a.Health,
		Activity:      a.Activity,
	}
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(servicesFor(newTestApp(t)))
}

func call(t *testing.T, h *Handler, method string, params any) (any, error) {
	t.Helper()
	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		require.NoError(t, err)
		raw = data
	}
	return h.Handle(context.Background(), method, raw)
}

func requireCode(t *testing.T, err error, code string) *APIError {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected APIError, got %T: %v", err, err)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}

func TestHandle_GetContact(t *testing.T) {
	h := newTestHandler(t)

	res, err := call(t, h, "get_contact", map[string]any{"id": "1"})
	require.NoError(t, err)
	require.Equal(t, "John Smith", res.(contact.Contact).Name)

	_, err = call(t, h, "get_contact", map[string]any{"id": "nope"})
	requireCode(t, err, "NOT_FOUND")

	_, err = call(t, h, "get_contact", nil)
	requireCode(t, err, "INVALID_INPUT")
}

func TestHandle_CreateContactValidation(t *testing.T) {
	h := newTestHandler(t)

	_, err := call(t, h, "create_contact", map[string]any{"name": "Bob"})
	apiErr := requireCode(t, err, "VALIDATION_FAILED")
	details := apiErr.Details.(map[string]any)
	require.Equal(t, []string{"phone"}, details["missing"])

	res, err := call(t, h, "create_contact", map[string]any{"name": "Bob", "phone": "555-0100"})
	require.NoError(t, err)
	created := res.(contact.Contact)
	require.NotEmpty(t, created.ID)

	res, err = call(t, h, "list_contacts", map[string]any{"query": "bob"})
	require.NoError(t, err)
	require.Len(t, res.([]contact.Contact), 1)
}

func TestHandle_DecodeErrors(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Handle(context.Background(), "list_contacts", json.RawMessage(`{"query": 5}`))
	requireCode(t, err, "INVALID_INPUT")

	_, err = h.Handle(context.Background(), "no_such_tool", nil)
	require.ErrorContains(t, err, "unknown method")
}

func TestHandle_SOSLifecycle(t *testing.T) {
	h := newTestHandler(t)

	_, err := call(t, h, "cancel_sos", nil)
	requireCode(t, err, "NO_ALERT")

	res, err := call(t, h, "send_sos", map[string]any{"location": "Main St"})
	require.NoError(t, err)
	sent := res.(alert.Alert)
	require.Equal(t, alert.StatusSending, sent.Status)
	require.Len(t, sent.Recipients, 3)

	_, err = call(t, h, "send_sos", nil)
	requireCode(t, err, "ALERT_IN_PROGRESS")

	res, err = call(t, h, "cancel_sos", nil)
	require.NoError(t, err)
	require.Equal(t, alert.StatusCancelled, res.(alert.Alert).Status)

	res, err = call(t, h, "sos_history", nil)
	require.NoError(t, err)
	require.Len(t, res.([]alert.Alert), 1)
}

func TestHandle_RideRequiresFields(t *testing.T) {
	h := newTestHandler(t)

	_, err := call(t, h, "start_ride", map[string]any{"driver_name": "Ali"})
	apiErr := requireCode(t, err, "VALIDATION_FAILED")
	missing := apiErr.Details.(map[string]any)["missing"].([]string)
	require.Contains(t, missing, "vehicle_number")

	_, err = call(t, h, "current_ride", nil)
	requireCode(t, err, "NO_CURRENT_RIDE")

	_, err = call(t, h, "start_ride", map[string]any{
		"driver_name":        "Ali",
		"vehicle_number":     "DHA-1234",
		"vehicle_model":      "Toyota Axio",
		"pickup_location":    "Gulshan",
		"destination":        "Dhanmondi",
		"estimated_arrival":  "18:30",
		"estimated_duration": "25 min",
	})
	require.NoError(t, err)

	_, err = call(t, h, "start_ride", map[string]any{"driver_name": "Someone"})
	require.Error(t, err)

	res, err := call(t, h, "toggle_ride_sharing", nil)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"sharing_location": false}, res)

	_, err = call(t, h, "end_ride", nil)
	require.NoError(t, err)
}

func TestHandle_IncidentResolveNeedsNote(t *testing.T) {
	h := newTestHandler(t)

	_, err := call(t, h, "update_incident_status", map[string]any{"id": "1", "status": "resolved"})
	requireCode(t, err, "MISSING_NOTE")

	_, err = call(t, h, "update_incident_status", map[string]any{"id": "3", "status": "investigating"})
	requireCode(t, err, "INVALID_TRANSITION")

	_, err = call(t, h, "update_incident_status", map[string]any{"id": "1", "status": "resolved", "note": "Recovered"})
	require.NoError(t, err)
}

func TestHandle_GuideStepping(t *testing.T) {
	h := newTestHandler(t)

	_, err := call(t, h, "step_guide", map[string]any{"action": "next"})
	requireCode(t, err, "NO_GUIDE_OPEN")

	res, err := call(t, h, "open_guide", map[string]any{"id": "1"})
	require.NoError(t, err)
	reading := res.(guide.Reading)
	require.Equal(t, 0, reading.Index)
	require.True(t, reading.First)

	res, err = call(t, h, "step_guide", map[string]any{"action": "next"})
	require.NoError(t, err)
	require.Equal(t, 1, res.(guide.Reading).Index)

	_, err = call(t, h, "step_guide", map[string]any{"action": "sideways"})
	requireCode(t, err, "INVALID_INPUT")

	res, err = call(t, h, "like_guide", map[string]any{"id": "1"})
	require.NoError(t, err)
	require.True(t, res.(LikeGuideResponse).Liked)
}

func TestHandle_ScoreHomeSecurity(t *testing.T) {
	h := newTestHandler(t)

	res, err := call(t, h, "score_home_security", map[string]any{"answers": map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, resource.Score(resource.HomeSecuritySections, map[string]string{}), res)
}

func TestHandle_ContactsViewSwitchesTab(t *testing.T) {
	h := newTestHandler(t)

	res, err := call(t, h, "contacts_view", nil)
	require.NoError(t, err)
	require.Equal(t, contact.ViewContacts, res.(contact.ViewContent).View)

	res, err = call(t, h, "contacts_view", map[string]any{"view": "groups"})
	require.NoError(t, err)
	shown := res.(contact.ViewContent)
	require.Equal(t, contact.ViewGroups, shown.View)
	require.NotEmpty(t, shown.Groups)
	require.Empty(t, shown.Contacts)

	_, err = call(t, h, "contacts_view", map[string]any{"view": "settings"})
	requireCode(t, err, "INVALID_INPUT")

	res, err = call(t, h, "contacts_view", map[string]any{})
	require.NoError(t, err)
	require.Equal(t, contact.ViewGroups, res.(contact.ViewContent).View)
}

func TestHandle_NotificationsFlow(t *testing.T) {
	h := newTestHandler(t)

	res, err := call(t, h, "list_notifications", nil)
	require.NoError(t, err)
	listed := res.(NotificationListResponse)
	require.Len(t, listed.Notifications, 4)
	require.Equal(t, 2, listed.Unread)

	_, err = call(t, h, "push_notification", map[string]any{"title": "Check in"})
	requireCode(t, err, "VALIDATION_FAILED")

	res, err = call(t, h, "push_notification", map[string]any{"title": "Check in", "message": "Home safe?"})
	require.NoError(t, err)
	pushed := res.(notification.Notification)
	require.Equal(t, notification.TypeInfo, pushed.Type)

	res, err = call(t, h, "list_notifications", map[string]any{"unread_only": true})
	require.NoError(t, err)
	listed = res.(NotificationListResponse)
	require.Equal(t, pushed.ID, listed.Notifications[0].ID)
	require.Equal(t, 3, listed.Unread)

	res, err = call(t, h, "mark_all_notifications_read", nil)
	require.NoError(t, err)
	require.Equal(t, CountResponse{Count: 3}, res)

	_, err = call(t, h, "mark_notification_read", map[string]any{"id": "ghost"})
	requireCode(t, err, "NOT_FOUND")

	res, err = call(t, h, "clear_notifications", nil)
	require.NoError(t, err)
	require.Equal(t, CountResponse{Count: 5}, res)
}

func TestHandle_ProfileEditOneFieldAtATime(t *testing.T) {
	h := newTestHandler(t)

	res, err := call(t, h, "start_profile_edit", map[string]any{"field": "name"})
	require.NoError(t, err)
	require.Equal(t, profile.EditState{Field: "name", Value: "Sarah Johnson"}, res)

	_, err = call(t, h, "start_profile_edit", map[string]any{"field": "email"})
	requireCode(t, err, "DRAFT_STATE")

	_, err = call(t, h, "start_profile_edit", map[string]any{"field": "safety_score"})
	requireCode(t, err, "INVALID_INPUT")

	_, err = call(t, h, "set_security_preferences", map[string]any{"location_sharing": "Sometimes"})
	requireCode(t, err, "INVALID_INPUT")

	res, err = call(t, h, "save_profile_edit", map[string]any{"value": "Sarah J."})
	require.NoError(t, err)
	require.Equal(t, "Sarah J.", res.(profile.Profile).Name)

	_, err = call(t, h, "save_profile_edit", map[string]any{"value": "again"})
	requireCode(t, err, "DRAFT_STATE")
}

func TestHandle_MedicationTransitions(t *testing.T) {
	h := newTestHandler(t)

	_, err := call(t, h, "skip_medication", map[string]any{"id": "1"})
	requireCode(t, err, "INVALID_TRANSITION")

	res, err := call(t, h, "skip_medication", map[string]any{"id": "3"})
	require.NoError(t, err)
	require.Equal(t, health.DoseMissed, res.(health.Medication).Status)

	res, err = call(t, h, "reset_medication_schedule", nil)
	require.NoError(t, err)
	schedule := res.(health.Schedule)
	require.Equal(t, 3, schedule.Due)
	require.Zero(t, schedule.Missed)

	_, err = call(t, h, "get_provider", map[string]any{"id": "9"})
	requireCode(t, err, "NOT_FOUND")

	res, err = call(t, h, "list_providers", map[string]any{"sort_by": "distance"})
	require.NoError(t, err)
	providers := res.([]health.Provider)
	require.Equal(t, "City Hospital", providers[len(providers)-1].Name)
}

func TestHandle_RecentActivity(t *testing.T) {
	h := newTestHandler(t)

	_, err := call(t, h, "toggle_favorite", map[string]any{"id": "4"})
	require.NoError(t, err)

	res, err := call(t, h, "get_recent_activity", map[string]any{"panel": contact.PanelContacts})
	require.NoError(t, err)
	entries := res.([]activity.ActivityEntry)
	require.NotEmpty(t, entries)
	require.Equal(t, activity.TypeRecordUpdated, entries[0].ActivityType)
}

func TestToolCatalogMatchesHandler(t *testing.T) {
	h := newTestHandler(t)
	seen := map[string]bool{}
	for _, def := range buildToolCatalog() {
		require.False(t, seen[def.Name], "duplicate tool %s", def.Name)
		seen[def.Name] = true
		require.Equal(t, "object", def.InputSchema["type"], def.Name)
		if def.Name == "ping" {
			continue
		}
		_, err := h.Handle(context.Background(), def.Name, json.RawMessage(`{}`))
		if err != nil {
			require.NotContains(t, err.Error(), "unknown method", def.Name)
		}
	}
}
