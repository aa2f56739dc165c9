package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// ToolHandler runs a named panel operation with JSON params.
type ToolHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// CodedError is implemented by errors that carry a stable error code.
type CodedError interface {
	error
	CodeValue() string
	MessageValue() string
	DetailsValue() any
	RecoveryHintValue() string
}

// Options configures optional routes and logging.
type Options struct {
	Logger  *slog.Logger
	Metrics http.Handler // served at /metrics when set
	MCP     http.Handler // served at /mcp when set
}

// Server wires HTTP handlers.
type Server struct {
	handler ToolHandler
	logger  *slog.Logger
}

// NewServer creates the HTTP router with middleware.
func NewServer(handler ToolHandler, opts Options) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{handler: handler, logger: logger}

	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))

	r.HandleFunc("/health", srv.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/rpc", srv.handleRPC).Methods(http.MethodPost)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics).Methods(http.MethodGet)
	}
	if opts.MCP != nil {
		r.PathPrefix("/mcp").Handler(opts.MCP)
	}

	api := r.PathPrefix("/api").Subrouter()
	for _, rt := range routes {
		api.HandleFunc(rt.path, srv.tool(rt.tool, rt.status)).Methods(rt.method)
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusNotFound, "NOT_FOUND", "no such route", nil, "")
	})
	return r
}

type route struct {
	method string
	path   string
	tool   string
	status int
}

var routes = []route{
	{http.MethodGet, "/contacts", "list_contacts", http.StatusOK},
	{http.MethodPost, "/contacts", "create_contact", http.StatusCreated},
	{http.MethodGet, "/contacts/{id}", "get_contact", http.StatusOK},
	{http.MethodPatch, "/contacts/{id}", "update_contact", http.StatusOK},
	{http.MethodDelete, "/contacts/{id}", "delete_contact", http.StatusOK},
	{http.MethodPost, "/contacts/{id}/favorite", "toggle_favorite", http.StatusOK},
	{http.MethodPost, "/contacts/{id}/sharing", "toggle_location_sharing", http.StatusOK},
	{http.MethodPost, "/contacts/{id}/contacted", "mark_contacted", http.StatusOK},

	{http.MethodGet, "/groups", "list_groups", http.StatusOK},
	{http.MethodPost, "/groups", "create_group", http.StatusCreated},
	{http.MethodGet, "/groups/{id}", "get_group", http.StatusOK},
	{http.MethodPatch, "/groups/{id}", "update_group", http.StatusOK},
	{http.MethodDelete, "/groups/{id}", "delete_group", http.StatusOK},
	{http.MethodPut, "/groups/{group_id}/members/{contact_id}", "add_group_member", http.StatusOK},
	{http.MethodDelete, "/groups/{group_id}/members/{contact_id}", "remove_group_member", http.StatusOK},
	{http.MethodGet, "/emergency-recipients", "emergency_recipients", http.StatusOK},
	{http.MethodGet, "/contacts-view", "contacts_view", http.StatusOK},
	{http.MethodPut, "/contacts-view/{view}", "contacts_view", http.StatusOK},

	{http.MethodGet, "/sos", "sos_status", http.StatusOK},
	{http.MethodPost, "/sos", "send_sos", http.StatusAccepted},
	{http.MethodDelete, "/sos", "cancel_sos", http.StatusOK},
	{http.MethodGet, "/sos/history", "sos_history", http.StatusOK},

	{http.MethodGet, "/rides", "list_trips", http.StatusOK},
	{http.MethodPost, "/rides", "start_ride", http.StatusCreated},
	{http.MethodGet, "/rides/current", "current_ride", http.StatusOK},
	{http.MethodPost, "/rides/current/sharing", "toggle_ride_sharing", http.StatusOK},
	{http.MethodPost, "/rides/current/end", "end_ride", http.StatusOK},
	{http.MethodPost, "/rides/current/cancel", "cancel_ride", http.StatusOK},
	{http.MethodGet, "/rides/{id}", "get_trip", http.StatusOK},
	{http.MethodDelete, "/rides/{id}", "delete_trip", http.StatusOK},

	{http.MethodGet, "/resources", "list_resources", http.StatusOK},
	{http.MethodGet, "/resources/categories", "resource_categories", http.StatusOK},
	{http.MethodGet, "/resources/{id}", "get_resource", http.StatusOK},
	{http.MethodPost, "/resources/{id}/download", "record_download", http.StatusOK},
	{http.MethodGet, "/assessment/home-security", "home_security_questions", http.StatusOK},
	{http.MethodPost, "/assessment/home-security", "score_home_security", http.StatusOK},

	{http.MethodGet, "/guides", "list_guides", http.StatusOK},
	{http.MethodGet, "/guides/categories", "guide_categories", http.StatusOK},
	{http.MethodPost, "/guides/reading", "step_guide", http.StatusOK},
	{http.MethodDelete, "/guides/reading", "close_guide", http.StatusOK},
	{http.MethodPost, "/guides/{id}/open", "open_guide", http.StatusOK},
	{http.MethodPost, "/guides/{id}/like", "like_guide", http.StatusOK},

	{http.MethodGet, "/meditations", "list_meditations", http.StatusOK},
	{http.MethodPost, "/meditations/{id}/play", "play_meditation", http.StatusOK},
	{http.MethodGet, "/player", "player_status", http.StatusOK},
	{http.MethodPost, "/player/pause", "pause_meditation", http.StatusOK},
	{http.MethodPost, "/player/resume", "resume_meditation", http.StatusOK},
	{http.MethodPost, "/player/stop", "stop_meditation", http.StatusOK},
	{http.MethodPost, "/player/mute", "toggle_mute", http.StatusOK},
	{http.MethodPut, "/player/volume", "set_volume", http.StatusOK},
	{http.MethodGet, "/crisis", "list_crisis_resources", http.StatusOK},

	{http.MethodGet, "/incidents", "list_incidents", http.StatusOK},
	{http.MethodPost, "/incidents", "report_incident", http.StatusCreated},
	{http.MethodGet, "/incidents/counts", "incident_status_counts", http.StatusOK},
	{http.MethodGet, "/incidents/{id}", "get_incident", http.StatusOK},
	{http.MethodDelete, "/incidents/{id}", "delete_incident", http.StatusOK},
	{http.MethodPost, "/incidents/{id}/status", "update_incident_status", http.StatusOK},

	{http.MethodGet, "/tutorials", "list_tutorials", http.StatusOK},
	{http.MethodGet, "/tutorials/{tutorial_id}/markers", "quiz_markers", http.StatusOK},
	{http.MethodGet, "/tutorials/{id}", "get_tutorial", http.StatusOK},
	{http.MethodPost, "/quiz/grade", "grade_quiz", http.StatusOK},

	{http.MethodGet, "/notifications", "list_notifications", http.StatusOK},
	{http.MethodPost, "/notifications", "push_notification", http.StatusCreated},
	{http.MethodDelete, "/notifications", "clear_notifications", http.StatusOK},
	{http.MethodPost, "/notifications/read", "mark_all_notifications_read", http.StatusOK},
	{http.MethodPost, "/notifications/{id}/read", "mark_notification_read", http.StatusOK},
	{http.MethodDelete, "/notifications/{id}", "delete_notification", http.StatusOK},

	{http.MethodGet, "/profile", "get_profile", http.StatusOK},
	{http.MethodGet, "/profile/edit", "profile_edit_state", http.StatusOK},
	{http.MethodPost, "/profile/edit", "save_profile_edit", http.StatusOK},
	{http.MethodDelete, "/profile/edit", "cancel_profile_edit", http.StatusOK},
	{http.MethodPut, "/profile/edit/{field}", "start_profile_edit", http.StatusOK},
	{http.MethodPatch, "/profile/security", "set_security_preferences", http.StatusOK},

	{http.MethodGet, "/providers", "list_providers", http.StatusOK},
	{http.MethodGet, "/providers/types", "provider_type_counts", http.StatusOK},
	{http.MethodGet, "/providers/{id}", "get_provider", http.StatusOK},
	{http.MethodGet, "/medications", "medication_schedule", http.StatusOK},
	{http.MethodPost, "/medications", "add_medication", http.StatusCreated},
	{http.MethodPost, "/medications/reset", "reset_medication_schedule", http.StatusOK},
	{http.MethodPost, "/medications/{id}/taken", "mark_medication_taken", http.StatusOK},
	{http.MethodPost, "/medications/{id}/skip", "skip_medication", http.StatusOK},
	{http.MethodDelete, "/medications/{id}", "delete_medication", http.StatusOK},

	{http.MethodGet, "/activity", "get_recent_activity", http.StatusOK},
}

// Query keys decoded as booleans or integers rather than strings.
var (
	boolParams = map[string]bool{"favorites_only": true, "emergency_only": true, "featured_only": true, "descending": true, "unread_only": true}
	intParams  = map[string]bool{"limit": true, "offset": true, "index": true, "volume": true}
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) tool(name string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := requestParams(r)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error(), nil, "Send a JSON object body")
			return
		}
		result, err := s.handler.Handle(r.Context(), name, params)
		if err != nil {
			s.writeHandlerError(w, r, name, err)
			return
		}
		writeBody(w, status, result)
	}
}

func (s *Server) writeHandlerError(w http.ResponseWriter, r *http.Request, tool string, err error) {
	var coded CodedError
	if errors.As(err, &coded) {
		writeAPIError(w, StatusForCode(coded.CodeValue()), coded.CodeValue(), coded.MessageValue(), coded.DetailsValue(), coded.RecoveryHintValue())
		return
	}
	s.logger.ErrorContext(r.Context(), "request failed", "tool", tool, "error", err)
	writeAPIError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil, "")
}

// requestParams merges the JSON body, query string and path variables into one params object.
// Path variables win over query values, which win over the body.
func requestParams(r *http.Request) (json.RawMessage, error) {
	params := map[string]any{}
	if r.Body != nil {
		data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			return nil, err
		}
		if len(strings.TrimSpace(string(data))) > 0 {
			if err := json.Unmarshal(data, &params); err != nil {
				return nil, err
			}
		}
	}
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		v := values[len(values)-1]
		switch {
		case boolParams[key]:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, err
			}
			params[key] = b
		case intParams[key]:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, err
			}
			params[key] = n
		default:
			params[key] = v
		}
	}
	for key, v := range mux.Vars(r) {
		params[key] = v
	}
	return json.Marshal(params)
}

// StatusForCode maps an error code to an HTTP status.
func StatusForCode(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "VALIDATION_FAILED", "INVALID_INPUT":
		return http.StatusBadRequest
	case "MISSING_NOTE", "NO_RECIPIENTS":
		return http.StatusUnprocessableEntity
	case "ALERT_IN_PROGRESS", "RIDE_IN_PROGRESS", "NO_ALERT", "NO_CURRENT_RIDE",
		"INVALID_TRANSITION", "PLAYER_STATE", "NO_GUIDE_OPEN", "DRAFT_STATE", "DUPLICATE":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func writeAPIError(w http.ResponseWriter, status int, code, message string, details any, hint string) {
	writeBody(w, status, errorBody{Error: apiError{Code: code, Message: message, Details: details, RecoveryHint: hint}})
}

func writeBody(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
