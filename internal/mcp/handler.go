package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/domain/alert"
	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/ganot/nirapod/internal/domain/guide"
	"github.com/ganot/nirapod/internal/domain/health"
	"github.com/ganot/nirapod/internal/domain/incident"
	"github.com/ganot/nirapod/internal/domain/notification"
	"github.com/ganot/nirapod/internal/domain/profile"
	"github.com/ganot/nirapod/internal/domain/resource"
	"github.com/ganot/nirapod/internal/domain/rideshare"
	"github.com/ganot/nirapod/internal/domain/tutorial"
	"github.com/ganot/nirapod/internal/domain/wellness"
)

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all panel services needed by MCP.
type Services struct {
	Contacts      *contact.Service
	Alerts        *alert.Dispatcher
	Notifications *notification.Service
	Rides         *rideshare.Tracker
	Resources     *resource.Service
	Guides        *guide.Service
	Wellness      *wellness.Service
	Incidents     *incident.Service
	Tutorials     *tutorial.Service
	Profile       *profile.Service
	Health        *health.Service
	Activity      ActivityService
}

// Handler dispatches MCP tool calls to the panel services.
type Handler struct {
	svc Services
	now func() time.Time
}

// NewHandler creates a new MCP handler.
func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// Handle runs the tool named method with JSON params.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	// Contacts
	case "list_contacts":
		var req ListContactsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Contacts.ListContacts(contact.ContactFilter{
			Query:         req.Query,
			Type:          req.Type,
			FavoritesOnly: req.FavoritesOnly,
			SortBy:        req.SortBy,
			Descending:    req.Descending,
		}), nil
	case "get_contact":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.GetContact(req.ID))
	case "create_contact":
		var req CreateContactParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.CreateContact(ctx, contact.CreateContactRequest{
			Name:         req.Name,
			Phone:        req.Phone,
			Email:        req.Email,
			Address:      req.Address,
			Relationship: req.Relationship,
			Type:         req.Type,
			Notes:        req.Notes,
			IsFavorite:   req.IsFavorite,
			IsSharing:    req.IsSharing,
		}))
	case "update_contact":
		var req UpdateContactParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.UpdateContact(ctx, contact.UpdateContactRequest{
			ID:           req.ID,
			Name:         req.Name,
			Phone:        req.Phone,
			Email:        req.Email,
			Address:      req.Address,
			Relationship: req.Relationship,
			Type:         req.Type,
			Notes:        req.Notes,
		}))
	case "delete_contact":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return ok(h.svc.Contacts.DeleteContact(ctx, req.ID))
	case "toggle_favorite":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.ToggleFavorite(ctx, req.ID))
	case "toggle_location_sharing":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.ToggleSharing(ctx, req.ID))
	case "mark_contacted":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.MarkContacted(ctx, req.ID, h.now()))
	case "list_groups":
		var req ListGroupsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Contacts.ListGroups(req.Query, req.EmergencyOnly), nil
	case "get_group":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.GetGroup(req.ID))
	case "create_group":
		var req CreateGroupParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.CreateGroup(ctx, contact.CreateGroupRequest{
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
			Emergency:   req.Emergency,
			ContactIDs:  req.ContactIDs,
		}))
	case "update_group":
		var req UpdateGroupParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.UpdateGroup(ctx, contact.UpdateGroupRequest{
			ID:          req.ID,
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
			Emergency:   req.Emergency,
		}))
	case "delete_group":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return ok(h.svc.Contacts.DeleteGroup(ctx, req.ID))
	case "add_group_member":
		var req GroupMemberParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.AddToGroup(ctx, req.GroupID, req.ContactID))
	case "remove_group_member":
		var req GroupMemberParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Contacts.RemoveFromGroup(ctx, req.GroupID, req.ContactID))
	case "emergency_recipients":
		return h.svc.Contacts.EmergencyRecipients(), nil
	case "contacts_view":
		var req ContactsViewParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.View != "" {
			if err := h.svc.Contacts.SetView(req.View); err != nil {
				return nil, mapError(err)
			}
		}
		return h.svc.Contacts.Showing(), nil

	// SOS
	case "send_sos":
		var req SendSOSParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Alerts.Send(ctx, alert.SendRequest{Message: req.Message, Location: req.Location}))
	case "cancel_sos":
		return wrap(h.svc.Alerts.Cancel(ctx))
	case "sos_status":
		return h.svc.Alerts.Status(), nil
	case "sos_history":
		return h.svc.Alerts.History(), nil

	// Rides
	case "start_ride":
		var req StartRideParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Rides.StartRide(ctx, req.values()))
	case "current_ride":
		ride, found := h.svc.Rides.CurrentRide()
		if !found {
			return nil, mapError(rideshare.ErrNoCurrentRide)
		}
		return ride, nil
	case "toggle_ride_sharing":
		sharing, err := h.svc.Rides.ToggleSharing()
		if err != nil {
			return nil, mapError(err)
		}
		return map[string]bool{"sharing_location": sharing}, nil
	case "end_ride":
		return wrap(h.svc.Rides.EndRide(ctx))
	case "cancel_ride":
		return wrap(h.svc.Rides.CancelRide(ctx))
	case "list_trips":
		var req ListTripsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Rides.History(rideshare.HistoryFilter{
			Query:   req.Query,
			Company: req.Company,
			Status:  req.Status,
		}), nil
	case "get_trip":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Rides.GetTrip(req.ID))
	case "delete_trip":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return ok(h.svc.Rides.DeleteTrip(ctx, req.ID))

	// Resources
	case "list_resources":
		var req ListResourcesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Resources.List(resource.Filter{
			Query:        req.Query,
			Category:     req.Category,
			FileType:     req.FileType,
			FeaturedOnly: req.FeaturedOnly,
			SortBy:       req.SortBy,
			Descending:   req.Descending,
		}), nil
	case "get_resource":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Resources.Get(req.ID))
	case "resource_categories":
		return h.svc.Resources.Categories(), nil
	case "record_download":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Resources.RecordDownload(ctx, req.ID))
	case "home_security_questions":
		return resource.HomeSecuritySections, nil
	case "score_home_security":
		var req ScoreAssessmentParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return resource.Score(resource.HomeSecuritySections, req.Answers), nil

	// Guides
	case "list_guides":
		var req ListGuidesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Guides.List(guide.Filter{
			Query:      req.Query,
			Category:   req.Category,
			Difficulty: req.Difficulty,
			SortBy:     req.SortBy,
			Descending: req.Descending,
		}), nil
	case "guide_categories":
		return h.svc.Guides.CategoryCounts(), nil
	case "open_guide":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Guides.Open(ctx, req.ID))
	case "step_guide":
		var req StepGuideParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		switch req.Action {
		case "next":
			return wrap(h.svc.Guides.NextSection())
		case "prev":
			return wrap(h.svc.Guides.PrevSection())
		case "goto":
			return wrap(h.svc.Guides.GoToSection(req.Index))
		case "", "current":
			return wrap(h.svc.Guides.Current())
		default:
			return nil, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("unknown action %q", req.Action), RecoveryHint: "Use next, prev, goto or current"}
		}
	case "close_guide":
		h.svc.Guides.Close()
		return OKResponse{OK: true}, nil
	case "like_guide":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		g, liked, err := h.svc.Guides.ToggleLike(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return LikeGuideResponse{Guide: g, Liked: liked}, nil

	// Wellness
	case "list_meditations":
		var req ListMeditationsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Wellness.ListMeditations(wellness.MeditationFilter{
			Query:        req.Query,
			Category:     req.Category,
			Level:        req.Level,
			FeaturedOnly: req.FeaturedOnly,
		}), nil
	case "list_crisis_resources":
		var req ListCrisisParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Wellness.ListCrisis(wellness.CrisisFilter{Query: req.Query, Category: req.Category}), nil
	case "play_meditation":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Wellness.Play(ctx, req.ID))
	case "pause_meditation":
		return wrap(h.svc.Wellness.Pause())
	case "resume_meditation":
		return wrap(h.svc.Wellness.Resume(ctx))
	case "stop_meditation":
		return h.svc.Wellness.Stop(), nil
	case "player_status":
		return h.svc.Wellness.Status(), nil
	case "set_volume":
		var req SetVolumeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Wellness.SetVolume(req.Volume), nil
	case "toggle_mute":
		return h.svc.Wellness.ToggleMute(), nil

	// Incidents
	case "list_incidents":
		var req ListIncidentsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Incidents.List(incident.Filter{Query: req.Query, Type: req.Type, Status: req.Status}), nil
	case "incident_status_counts":
		return h.svc.Incidents.StatusCounts(), nil
	case "get_incident":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Incidents.Get(req.ID))
	case "report_incident":
		var req ReportIncidentParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Incidents.Report(ctx, incident.ReportRequest{
			Type:        req.Type,
			Description: req.Description,
			Date:        req.Date,
			Time:        req.Time,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			ReportedBy:  req.ReportedBy,
		}))
	case "update_incident_status":
		var req UpdateIncidentStatusParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Incidents.UpdateStatus(ctx, req.ID, req.Status, req.Note))
	case "delete_incident":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return ok(h.svc.Incidents.Delete(ctx, req.ID))

	// Tutorials
	case "list_tutorials":
		var req ListTutorialsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Tutorials.List(tutorial.Filter{Query: req.Query, Level: req.Level, Category: req.Category}), nil
	case "get_tutorial":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Tutorials.Get(req.ID))
	case "grade_quiz":
		var req GradeQuizParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Tutorials.Grade(req.TutorialID, req.Answers))
	case "quiz_markers":
		var req TutorialParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Tutorials.QuizMarkers(req.TutorialID))

	// Notifications
	case "list_notifications":
		var req ListNotificationsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return NotificationListResponse{
			Notifications: h.svc.Notifications.List(notification.Filter{UnreadOnly: req.UnreadOnly, Type: req.Type}),
			Unread:        h.svc.Notifications.Unread(),
		}, nil
	case "push_notification":
		var req PushNotificationParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Notifications.Push(ctx, notification.PushRequest{Title: req.Title, Message: req.Message, Type: req.Type}))
	case "mark_notification_read":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Notifications.MarkRead(ctx, req.ID))
	case "mark_all_notifications_read":
		n, err := h.svc.Notifications.MarkAllRead(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return CountResponse{Count: n}, nil
	case "delete_notification":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return ok(h.svc.Notifications.Delete(ctx, req.ID))
	case "clear_notifications":
		n, err := h.svc.Notifications.ClearAll(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return CountResponse{Count: n}, nil

	// Profile
	case "get_profile":
		return wrap(h.svc.Profile.Get())
	case "start_profile_edit":
		var req ProfileFieldParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Profile.StartEdit(req.Field))
	case "profile_edit_state":
		return h.svc.Profile.Editing(), nil
	case "save_profile_edit":
		var req SaveProfileEditParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Profile.SaveEdit(ctx, req.Value))
	case "cancel_profile_edit":
		h.svc.Profile.CancelEdit()
		return OKResponse{OK: true}, nil
	case "set_security_preferences":
		var req SecurityPreferencesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Profile.SetSecurity(ctx, profile.SecurityUpdate{
			TwoFactorAuth:     req.TwoFactorAuth,
			LocationSharing:   req.LocationSharing,
			DataBackup:        req.DataBackup,
			NotificationLevel: req.NotificationLevel,
		}))

	// Health
	case "list_providers":
		var req ListProvidersParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Health.ListProviders(health.ProviderFilter{
			Query:      req.Query,
			Type:       req.Type,
			SortBy:     req.SortBy,
			Descending: req.Descending,
		}), nil
	case "provider_type_counts":
		return h.svc.Health.ProviderCounts(), nil
	case "get_provider":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Health.GetProvider(req.ID))
	case "medication_schedule":
		return h.svc.Health.Schedule(), nil
	case "add_medication":
		var req AddMedicationParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.svc.Health.AddMedication(ctx, health.MedicationRequest{
			Name:         req.Name,
			Time:         req.Time,
			Dosage:       req.Dosage,
			Instructions: req.Instructions,
		}))
	case "mark_medication_taken":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Health.MarkTaken(ctx, req.ID))
	case "skip_medication":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return wrap(h.svc.Health.Skip(ctx, req.ID))
	case "reset_medication_schedule":
		return wrap(h.svc.Health.ResetSchedule(ctx))
	case "delete_medication":
		req, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return ok(h.svc.Health.DeleteMedication(ctx, req.ID))

	// Activity
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		opts := activity.ListActivityOptions{
			Panel:        req.Panel,
			RecordID:     req.RecordID,
			ActivityType: req.Type,
			Limit:        req.Limit,
			Offset:       req.Offset,
		}
		if opts.Limit == 0 {
			opts.Limit = 50
		}
		return wrap(h.svc.Activity.GetRecentActivity(ctx, opts))
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("decode params: %v", err)}
	}
	return nil
}

func decodeID(params json.RawMessage) (IDParams, error) {
	var req IDParams
	if err := decodeParams(params, &req); err != nil {
		return req, err
	}
	if req.ID == "" {
		return req, &APIError{Code: "INVALID_INPUT", Message: "id is required"}
	}
	return req, nil
}

func wrap[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, mapError(err)
	}
	return v, nil
}

func ok(err error) (any, error) {
	if err != nil {
		return nil, mapError(err)
	}
	return OKResponse{OK: true}, nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
