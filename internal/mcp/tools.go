package mcp

import (
	"context"
	"encoding/json"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Annotations map[string]any `json:"annotations,omitempty"`
}

func object(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func enum(desc string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "enum": values}
}

func boolean(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func integer(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func number(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc}
}

func idOnly(desc string) map[string]any {
	return object(map[string]any{"id": str(desc)}, "id")
}

func empty() map[string]any {
	return object(map[string]any{})
}

var readOnly = map[string]any{"readOnlyHint": true}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "ping",
			Description: "Health check",
			InputSchema: empty(),
			Annotations: readOnly,
		},

		// Contacts
		{
			Name:        "list_contacts",
			Description: "List emergency contacts, optionally filtered and sorted",
			InputSchema: object(map[string]any{
				"query":          str("Matches name, phone, email or relationship"),
				"type":           enum("Contact type", "personal", "emergency", "medical", "work", "other"),
				"favorites_only": boolean("Only favorite contacts"),
				"sort_by":        enum("Sort key", "name", "last_contacted"),
				"descending":     boolean("Reverse sort order"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "get_contact",
			Description: "Get a contact by id",
			InputSchema: idOnly("Contact ID"),
			Annotations: readOnly,
		},
		{
			Name:        "create_contact",
			Description: "Add a contact. Name and phone are required",
			InputSchema: object(map[string]any{
				"name":         str("Display name"),
				"phone":        str("Phone number"),
				"email":        str("Email address"),
				"address":      str("Street address"),
				"relationship": str("Relationship to the user"),
				"type":         enum("Contact type", "personal", "emergency", "medical", "work", "other"),
				"notes":        str("Free-form notes"),
				"is_favorite":  boolean("Mark as favorite"),
				"is_sharing":   boolean("Share location with this contact"),
			}, "name", "phone"),
		},
		{
			Name:        "update_contact",
			Description: "Update fields of a contact. Omitted fields are left unchanged",
			InputSchema: object(map[string]any{
				"id":           str("Contact ID"),
				"name":         str("Display name"),
				"phone":        str("Phone number"),
				"email":        str("Email address"),
				"address":      str("Street address"),
				"relationship": str("Relationship to the user"),
				"type":         enum("Contact type", "personal", "emergency", "medical", "work", "other"),
				"notes":        str("Free-form notes"),
			}, "id"),
		},
		{
			Name:        "delete_contact",
			Description: "Delete a contact and remove it from every group",
			InputSchema: idOnly("Contact ID"),
			Annotations: map[string]any{"destructiveHint": true},
		},
		{
			Name:        "toggle_favorite",
			Description: "Flip a contact's favorite flag",
			InputSchema: idOnly("Contact ID"),
		},
		{
			Name:        "toggle_location_sharing",
			Description: "Flip whether location is shared with a contact",
			InputSchema: idOnly("Contact ID"),
		},
		{
			Name:        "mark_contacted",
			Description: "Set a contact's last-contacted time to now",
			InputSchema: idOnly("Contact ID"),
		},

		// Groups
		{
			Name:        "list_groups",
			Description: "List contact groups",
			InputSchema: object(map[string]any{
				"query":          str("Matches name or description"),
				"emergency_only": boolean("Only groups alerted on SOS"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "get_group",
			Description: "Get a group with its member contacts",
			InputSchema: idOnly("Group ID"),
			Annotations: readOnly,
		},
		{
			Name:        "create_group",
			Description: "Create a contact group",
			InputSchema: object(map[string]any{
				"name":         str("Group name"),
				"description":  str("Group description"),
				"color":        str("Display color"),
				"is_emergency": boolean("Alert this group on SOS"),
				"contact_ids": map[string]any{
					"type":        "array",
					"description": "Initial member contact IDs",
					"items":       map[string]any{"type": "string"},
				},
			}, "name"),
		},
		{
			Name:        "update_group",
			Description: "Update fields of a group",
			InputSchema: object(map[string]any{
				"id":           str("Group ID"),
				"name":         str("Group name"),
				"description":  str("Group description"),
				"color":        str("Display color"),
				"is_emergency": boolean("Alert this group on SOS"),
			}, "id"),
		},
		{
			Name:        "delete_group",
			Description: "Delete a group. Member contacts are kept",
			InputSchema: idOnly("Group ID"),
			Annotations: map[string]any{"destructiveHint": true},
		},
		{
			Name:        "add_group_member",
			Description: "Add a contact to a group",
			InputSchema: object(map[string]any{
				"group_id":   str("Group ID"),
				"contact_id": str("Contact ID"),
			}, "group_id", "contact_id"),
		},
		{
			Name:        "remove_group_member",
			Description: "Remove a contact from a group",
			InputSchema: object(map[string]any{
				"group_id":   str("Group ID"),
				"contact_id": str("Contact ID"),
			}, "group_id", "contact_id"),
		},
		{
			Name:        "emergency_recipients",
			Description: "List the contacts an SOS alert would reach",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "contacts_view",
			Description: "Switch the contacts panel tab and list what it shows",
			InputSchema: object(map[string]any{
				"view": enum("Tab to show; omit to keep the current one", "contacts", "groups", "emergency"),
			}),
		},

		// SOS
		{
			Name:        "send_sos",
			Description: "Send an SOS alert to every emergency recipient. Completes after a short delay unless cancelled",
			InputSchema: object(map[string]any{
				"message":  str("Alert message"),
				"location": str("Current location"),
			}),
		},
		{
			Name:        "cancel_sos",
			Description: "Cancel the alert that is currently sending",
			InputSchema: empty(),
		},
		{
			Name:        "sos_status",
			Description: "Get the state of the latest alert",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "sos_history",
			Description: "List past alerts, newest first",
			InputSchema: empty(),
			Annotations: readOnly,
		},

		// Rides
		{
			Name:        "start_ride",
			Description: "Start tracking a ride. Only one ride can be active",
			InputSchema: object(map[string]any{
				"driver_name":        str("Driver name"),
				"driver_age":         str("Driver age"),
				"vehicle_number":     str("License plate"),
				"vehicle_model":      str("Vehicle make and model"),
				"pickup_location":    str("Pickup location"),
				"destination":        str("Destination"),
				"estimated_arrival":  str("Expected arrival time"),
				"estimated_duration": str("Expected duration"),
				"company":            enum("Ride company", "uber", "lyft", "didi", "bolt", "other"),
			}, "driver_name", "vehicle_number", "vehicle_model", "pickup_location", "destination", "estimated_arrival", "estimated_duration"),
		},
		{
			Name:        "current_ride",
			Description: "Get the active ride",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "toggle_ride_sharing",
			Description: "Flip location sharing for the active ride",
			InputSchema: empty(),
		},
		{
			Name:        "end_ride",
			Description: "Complete the active ride and move it to history",
			InputSchema: empty(),
		},
		{
			Name:        "cancel_ride",
			Description: "Cancel the active ride and move it to history",
			InputSchema: empty(),
		},
		{
			Name:        "list_trips",
			Description: "List ride history",
			InputSchema: object(map[string]any{
				"query":   str("Matches driver, vehicle or locations"),
				"company": enum("Ride company", "uber", "lyft", "didi", "bolt", "other"),
				"status":  enum("Trip status", "completed", "cancelled"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "get_trip",
			Description: "Get a trip from history",
			InputSchema: idOnly("Trip ID"),
			Annotations: readOnly,
		},
		{
			Name:        "delete_trip",
			Description: "Delete a trip from history",
			InputSchema: idOnly("Trip ID"),
			Annotations: map[string]any{"destructiveHint": true},
		},

		// Resources
		{
			Name:        "list_resources",
			Description: "List safety resources",
			InputSchema: object(map[string]any{
				"query":         str("Matches title, description or tags"),
				"category":      str("Category ID"),
				"file_type":     enum("File type", "pdf", "doc", "jpg", "mp3", "mp4", "ppt"),
				"featured_only": boolean("Only featured resources"),
				"sort_by":       enum("Sort key", "title", "downloads"),
				"descending":    boolean("Reverse sort order"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "get_resource",
			Description: "Get a resource by id",
			InputSchema: idOnly("Resource ID"),
			Annotations: readOnly,
		},
		{
			Name:        "resource_categories",
			Description: "List resource categories with counts",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "record_download",
			Description: "Count a download of a resource",
			InputSchema: idOnly("Resource ID"),
		},
		{
			Name:        "home_security_questions",
			Description: "List the home security assessment sections and questions",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "score_home_security",
			Description: "Score a home security assessment",
			InputSchema: object(map[string]any{
				"answers": map[string]any{
					"type":                 "object",
					"description":          "Answer value keyed by question ID",
					"additionalProperties": map[string]any{"type": "string"},
				},
			}, "answers"),
			Annotations: readOnly,
		},

		// Guides
		{
			Name:        "list_guides",
			Description: "List safety guides",
			InputSchema: object(map[string]any{
				"query":      str("Matches title, summary or tags"),
				"category":   str("Category"),
				"difficulty": enum("Difficulty", "beginner", "intermediate", "advanced"),
				"sort_by":    enum("Sort key", "title", "views", "likes"),
				"descending": boolean("Reverse sort order"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "guide_categories",
			Description: "Count guides per category",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "open_guide",
			Description: "Open a guide at its first section and count a view",
			InputSchema: idOnly("Guide ID"),
		},
		{
			Name:        "step_guide",
			Description: "Move through the open guide's sections",
			InputSchema: object(map[string]any{
				"action": enum("Navigation action", "next", "prev", "goto", "current"),
				"index":  integer("Section index for goto"),
			}, "action"),
		},
		{
			Name:        "close_guide",
			Description: "Close the open guide",
			InputSchema: empty(),
		},
		{
			Name:        "like_guide",
			Description: "Toggle a like on a guide",
			InputSchema: idOnly("Guide ID"),
		},

		// Wellness
		{
			Name:        "list_meditations",
			Description: "List guided meditations",
			InputSchema: object(map[string]any{
				"query":         str("Matches title, description or instructor"),
				"category":      str("Category"),
				"level":         str("Level"),
				"featured_only": boolean("Only featured meditations"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "list_crisis_resources",
			Description: "List crisis hotlines and support services",
			InputSchema: object(map[string]any{
				"query":    str("Matches name or description"),
				"category": str("Category"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "play_meditation",
			Description: "Start playing a meditation",
			InputSchema: idOnly("Meditation ID"),
		},
		{
			Name:        "pause_meditation",
			Description: "Pause playback",
			InputSchema: empty(),
		},
		{
			Name:        "resume_meditation",
			Description: "Resume paused playback",
			InputSchema: empty(),
		},
		{
			Name:        "stop_meditation",
			Description: "Stop playback",
			InputSchema: empty(),
		},
		{
			Name:        "player_status",
			Description: "Get the meditation player state",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "set_volume",
			Description: "Set player volume, clamped to 0-100",
			InputSchema: object(map[string]any{"volume": integer("Volume 0-100")}, "volume"),
		},
		{
			Name:        "toggle_mute",
			Description: "Mute or unmute the player",
			InputSchema: empty(),
		},

		// Incidents
		{
			Name:        "list_incidents",
			Description: "List reported incidents",
			InputSchema: object(map[string]any{
				"query":  str("Matches description or type"),
				"type":   str("Incident type"),
				"status": enum("Status", "active", "investigating", "resolved"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "incident_status_counts",
			Description: "Count incidents per status",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "get_incident",
			Description: "Get an incident by id",
			InputSchema: idOnly("Incident ID"),
			Annotations: readOnly,
		},
		{
			Name:        "report_incident",
			Description: "Report a new incident",
			InputSchema: object(map[string]any{
				"type":        str("Incident type"),
				"description": str("What happened"),
				"date":        str("Date, YYYY-MM-DD. Defaults to today"),
				"time":        str("Time, HH:MM. Defaults to now"),
				"latitude":    number("Latitude"),
				"longitude":   number("Longitude"),
				"reported_by": str("Reporter name. Defaults to Anonymous"),
			}, "type", "description"),
		},
		{
			Name:        "update_incident_status",
			Description: "Move an incident to a new status. Resolving requires a note",
			InputSchema: object(map[string]any{
				"id":     str("Incident ID"),
				"status": enum("Target status", "active", "investigating", "resolved"),
				"note":   str("Resolution note"),
			}, "id", "status"),
		},
		{
			Name:        "delete_incident",
			Description: "Delete an incident",
			InputSchema: idOnly("Incident ID"),
			Annotations: map[string]any{"destructiveHint": true},
		},

		// Tutorials
		{
			Name:        "list_tutorials",
			Description: "List self-defense tutorials",
			InputSchema: object(map[string]any{
				"query":    str("Matches title or description"),
				"level":    str("Level"),
				"category": str("Category"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "get_tutorial",
			Description: "Get a tutorial with its quiz and scenarios",
			InputSchema: idOnly("Tutorial ID"),
			Annotations: readOnly,
		},
		{
			Name:        "grade_quiz",
			Description: "Grade quiz answers for a tutorial",
			InputSchema: object(map[string]any{
				"tutorial_id": str("Tutorial ID"),
				"answers": map[string]any{
					"type":                 "object",
					"description":          "Chosen option index keyed by question ID. -1 means unanswered",
					"additionalProperties": map[string]any{"type": "integer"},
				},
			}, "tutorial_id", "answers"),
			Annotations: readOnly,
		},
		{
			Name:        "quiz_markers",
			Description: "List the video timestamps where quiz questions appear",
			InputSchema: object(map[string]any{"tutorial_id": str("Tutorial ID")}, "tutorial_id"),
			Annotations: readOnly,
		},

		// Notifications
		{
			Name:        "list_notifications",
			Description: "List notifications newest first, with the unread count",
			InputSchema: object(map[string]any{
				"unread_only": boolean("Only unread notifications"),
				"type":        enum("Notification type", "alert", "info", "success", "warning"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "push_notification",
			Description: "Add an unread notification",
			InputSchema: object(map[string]any{
				"title":   str("Title"),
				"message": str("Message"),
				"type":    enum("Notification type (default info)", "alert", "info", "success", "warning"),
			}, "title", "message"),
		},
		{
			Name:        "mark_notification_read",
			Description: "Mark one notification as read",
			InputSchema: idOnly("Notification ID"),
		},
		{
			Name:        "mark_all_notifications_read",
			Description: "Mark every notification as read",
			InputSchema: empty(),
		},
		{
			Name:        "delete_notification",
			Description: "Remove one notification",
			InputSchema: idOnly("Notification ID"),
		},
		{
			Name:        "clear_notifications",
			Description: "Remove every notification",
			InputSchema: empty(),
		},

		// Profile
		{
			Name:        "get_profile",
			Description: "Get the user's profile and security preferences",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "start_profile_edit",
			Description: "Open one profile field for editing and return its current value",
			InputSchema: object(map[string]any{
				"field": enum("Field to edit", "name", "email", "phone", "address"),
			}, "field"),
		},
		{
			Name:        "profile_edit_state",
			Description: "Show which profile field is being edited",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "save_profile_edit",
			Description: "Save a new value for the field being edited",
			InputSchema: object(map[string]any{
				"value": str("New value"),
			}, "value"),
		},
		{
			Name:        "cancel_profile_edit",
			Description: "Drop the open profile edit",
			InputSchema: empty(),
		},
		{
			Name:        "set_security_preferences",
			Description: "Change security preferences; omitted fields keep their value",
			InputSchema: object(map[string]any{
				"two_factor_auth":    boolean("Two-factor authentication"),
				"location_sharing":   enum("Location sharing", "Never", "Emergencies only", "Emergency contacts only", "Always"),
				"data_backup":        boolean("Automatic data backup"),
				"notification_level": enum("Notification level", "Low", "Medium", "High"),
			}),
		},

		// Health
		{
			Name:        "list_providers",
			Description: "Search the healthcare provider directory",
			InputSchema: object(map[string]any{
				"query":      str("Matches name, type or address"),
				"type":       enum("Provider type", "Emergency Care", "Urgent Care", "Family Medicine", "Mental Health"),
				"sort_by":    enum("Sort key", "name", "distance", "rating"),
				"descending": boolean("Reverse the sort"),
			}),
			Annotations: readOnly,
		},
		{
			Name:        "provider_type_counts",
			Description: "Count providers per type",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "get_provider",
			Description: "Get one healthcare provider",
			InputSchema: idOnly("Provider ID"),
			Annotations: readOnly,
		},
		{
			Name:        "medication_schedule",
			Description: "Today's medications in time order with due, taken and missed counts",
			InputSchema: empty(),
			Annotations: readOnly,
		},
		{
			Name:        "add_medication",
			Description: "Schedule a medication as upcoming",
			InputSchema: object(map[string]any{
				"name":         str("Medication name"),
				"time":         str("Time of day, like 8:00 AM"),
				"dosage":       str("Dosage"),
				"instructions": str("Instructions"),
			}, "name", "time", "dosage"),
		},
		{
			Name:        "mark_medication_taken",
			Description: "Record an upcoming dose as taken",
			InputSchema: idOnly("Medication ID"),
		},
		{
			Name:        "skip_medication",
			Description: "Record an upcoming dose as missed",
			InputSchema: idOnly("Medication ID"),
		},
		{
			Name:        "reset_medication_schedule",
			Description: "Start a new day: every dose becomes upcoming",
			InputSchema: empty(),
		},
		{
			Name:        "delete_medication",
			Description: "Remove a medication from the schedule",
			InputSchema: idOnly("Medication ID"),
		},

		// Activity
		{
			Name:        "get_recent_activity",
			Description: "List recent activity across panels, newest first",
			InputSchema: object(map[string]any{
				"panel":     str("Panel name"),
				"record_id": str("Record ID"),
				"type":      str("Activity type"),
				"limit":     integer("Maximum number of entries (default 50)"),
				"offset":    integer("Offset for pagination"),
			}),
			Annotations: readOnly,
		},
	}
}

func registerTools(server *sdkmcp.Server, services Services) {
	handler := NewHandler(services)
	for _, def := range buildToolCatalog() {
		name := def.Name
		tool := &sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}
		if hint, ok := def.Annotations["readOnlyHint"].(bool); ok {
			tool.Annotations = &sdkmcp.ToolAnnotations{ReadOnlyHint: hint}
		}
		server.AddTool(tool, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			if name == "ping" {
				return textResult(map[string]string{"status": "pong"}, false), nil
			}
			result, err := handler.Handle(ctx, name, args)
			if err != nil {
				var apiErr *APIError
				if errors.As(err, &apiErr) {
					return textResult(apiErr, true), nil
				}
				return nil, err
			}
			return textResult(result, false), nil
		})
	}
}

func textResult(v any, isError bool) *sdkmcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte(`{"code":"INTERNAL","message":"encode result"}`)
		isError = true
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: isError,
	}
}
