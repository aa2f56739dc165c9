package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `nirapod exposes the panels of a personal-safety app: contacts and groups, SOS alerts, notifications, ride tracking, safety resources, guides, wellness, health, incident reports, self-defense tutorials and the user's profile.

Core concepts:
- Panel: one list of records (contacts, groups, notifications, rides, resources, guides, meditations, crisis, providers, medications, incidents, tutorials, profile).
- Emergency recipients: members of every group marked is_emergency. send_sos reaches exactly these contacts.
- Alert: sending -> sent after a short delay, or sending -> cancelled via cancel_sos. Only one alert sends at a time.
- Ride: at most one is active. end_ride or cancel_ride moves it to trip history.
- Incident status: active -> investigating -> resolved. Resolving requires a note.
- Medication dose: upcoming -> taken or upcoming -> missed. reset_medication_schedule starts a new day.
- Profile edits: one field at a time. start_profile_edit, then save_profile_edit or cancel_profile_edit.

Default workflow:
1) Orient: list_contacts / list_groups / emergency_recipients.
2) In an emergency: send_sos with a location. Poll sos_status until sent, or cancel_sos.
3) Travelling: start_ride, keep toggle_ride_sharing on, end_ride on arrival.
4) After an event: report_incident, then update_incident_status as it progresses.
5) Review: get_recent_activity for an audit trail of changes, list_notifications for unread alerts.

Errors come back as JSON with code, message and recovery_hint.

Docs:
- nirapod://docs/index
- nirapod://docs/panels
- nirapod://docs/workflows/emergency
- nirapod://docs/workflows/ride
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "nirapod://docs/index",
		Name:        "docs_index",
		Title:       "nirapod docs index",
		Description: "Entry point: what each doc covers.",
		Content: `# nirapod: Agent Docs Index

## Quick start

1. ` + "`emergency_recipients`" + ` to see who an alert reaches.
2. ` + "`send_sos`" + ` to alert them. ` + "`cancel_sos`" + ` while it is still sending.
3. ` + "`start_ride`" + ` / ` + "`end_ride`" + ` around a trip.
4. ` + "`report_incident`" + ` to log what happened.

## Docs

- ` + "`nirapod://docs/panels`" + ` lists every panel, its records and its tools.
- ` + "`nirapod://docs/workflows/emergency`" + ` covers SOS alerts and emergency groups.
- ` + "`nirapod://docs/workflows/ride`" + ` covers ride tracking and history.

## Limitations

- Alerts are simulated. No SMS or call is placed.
- Meditation playback is a timer. No audio is streamed.
`,
	},
	{
		URI:         "nirapod://docs/panels",
		Name:        "docs_panels",
		Title:       "Panels",
		Description: "Records and tools per panel.",
		Content: `# Panels

| Panel | Records | Tools |
|---|---|---|
| contacts | Contact | list_contacts, get_contact, create_contact, update_contact, delete_contact, toggle_favorite, toggle_location_sharing, mark_contacted, contacts_view |
| groups | Group | list_groups, get_group, create_group, update_group, delete_group, add_group_member, remove_group_member |
| sos | Alert | send_sos, cancel_sos, sos_status, sos_history |
| notifications | Notification | list_notifications, push_notification, mark_notification_read, mark_all_notifications_read, delete_notification, clear_notifications |
| rides | Ride, Trip | start_ride, current_ride, toggle_ride_sharing, end_ride, cancel_ride, list_trips, get_trip, delete_trip |
| resources | Resource | list_resources, get_resource, resource_categories, record_download, home_security_questions, score_home_security |
| guides | Guide | list_guides, guide_categories, open_guide, step_guide, close_guide, like_guide |
| meditations, crisis | Meditation, CrisisResource | list_meditations, list_crisis_resources, play_meditation, pause_meditation, resume_meditation, stop_meditation, player_status, set_volume, toggle_mute |
| incidents | Incident | list_incidents, incident_status_counts, get_incident, report_incident, update_incident_status, delete_incident |
| tutorials | Tutorial | list_tutorials, get_tutorial, grade_quiz, quiz_markers |
| providers | Provider | list_providers, provider_type_counts, get_provider |
| medications | Medication | medication_schedule, add_medication, mark_medication_taken, skip_medication, reset_medication_schedule, delete_medication |
| profile | Profile | get_profile, start_profile_edit, profile_edit_state, save_profile_edit, cancel_profile_edit, set_security_preferences |

Deleting a contact removes it from every group. Deleting a group keeps its contacts.

A delivered SOS alert lands on top of the notifications list as an unread alert.

Text filters match case-insensitively on substrings. Unknown category or type values match nothing.
`,
	},
	{
		URI:         "nirapod://docs/workflows/emergency",
		Name:        "docs_workflow_emergency",
		Title:       "Workflow: emergency",
		Description: "Sending, tracking and cancelling an SOS alert.",
		Content: `# Workflow: emergency

1. ` + "`emergency_recipients`" + `. If empty, add a contact to a group with ` + "`is_emergency`" + ` set, otherwise ` + "`send_sos`" + ` fails with NO_RECIPIENTS.
2. ` + "`send_sos`" + ` with ` + "`location`" + `. The alert starts in ` + "`sending`" + `.
3. ` + "`sos_status`" + ` until ` + "`sent`" + `. ` + "`cancel_sos`" + ` before then moves it to ` + "`cancelled`" + `.
4. A second ` + "`send_sos`" + ` while one is sending fails with ALERT_IN_PROGRESS.
5. ` + "`sos_history`" + ` lists past alerts, newest first.
6. Follow up with ` + "`report_incident`" + ` if appropriate.
`,
	},
	{
		URI:         "nirapod://docs/workflows/ride",
		Name:        "docs_workflow_ride",
		Title:       "Workflow: ride",
		Description: "Tracking a ride from pickup to history.",
		Content: `# Workflow: ride

1. ` + "`start_ride`" + ` with driver, vehicle, pickup, destination, arrival and duration. Company defaults to uber.
   Missing fields come back as VALIDATION_FAILED with details.missing.
2. ` + "`toggle_ride_sharing`" + ` to share location with trusted contacts. Sharing starts on.
3. ` + "`end_ride`" + ` on arrival, or ` + "`cancel_ride`" + `. Either moves the ride to trip history.
4. ` + "`list_trips`" + ` filters history by company, status or free text.

Only one ride can be active. ` + "`start_ride`" + ` while one is active fails with RIDE_IN_PROGRESS.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
