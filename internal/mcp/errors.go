package mcp

import (
	"errors"
	"fmt"

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
	"github.com/ganot/nirapod/internal/repository"
	"github.com/ganot/nirapod/internal/viewstate"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var verr *viewstate.ValidationError
	if errors.As(err, &verr) {
		return &APIError{
			Code:         "VALIDATION_FAILED",
			Message:      verr.Error(),
			Details:      map[string]any{"missing": verr.Missing, "invalid": verr.Invalid},
			RecoveryHint: "Fill in the missing fields and correct the invalid ones",
		}
	}
	switch {
	case errors.Is(err, contact.ErrContactNotFound),
		errors.Is(err, contact.ErrGroupNotFound),
		errors.Is(err, rideshare.ErrTripNotFound),
		errors.Is(err, resource.ErrResourceNotFound),
		errors.Is(err, guide.ErrGuideNotFound),
		errors.Is(err, wellness.ErrMeditationNotFound),
		errors.Is(err, wellness.ErrCrisisNotFound),
		errors.Is(err, incident.ErrIncidentNotFound),
		errors.Is(err, tutorial.ErrTutorialNotFound),
		errors.Is(err, notification.ErrNotificationNotFound),
		errors.Is(err, profile.ErrProfileNotFound),
		errors.Is(err, health.ErrProviderNotFound),
		errors.Is(err, health.ErrMedicationNotFound),
		errors.Is(err, viewstate.ErrNotFound),
		errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the id with the matching list tool"}
	case errors.Is(err, alert.ErrAlreadySending):
		return &APIError{Code: "ALERT_IN_PROGRESS", Message: err.Error(), RecoveryHint: "Wait for the alert to finish or call cancel_sos"}
	case errors.Is(err, alert.ErrNotSending):
		return &APIError{Code: "NO_ALERT", Message: err.Error(), RecoveryHint: "Call send_sos first"}
	case errors.Is(err, alert.ErrNoRecipients):
		return &APIError{Code: "NO_RECIPIENTS", Message: err.Error(), RecoveryHint: "Add a contact to an emergency group"}
	case errors.Is(err, rideshare.ErrRideInProgress):
		return &APIError{Code: "RIDE_IN_PROGRESS", Message: err.Error(), RecoveryHint: "End or cancel the current ride first"}
	case errors.Is(err, rideshare.ErrNoCurrentRide):
		return &APIError{Code: "NO_CURRENT_RIDE", Message: err.Error(), RecoveryHint: "Call start_ride first"}
	case errors.Is(err, incident.ErrInvalidTransition):
		return &APIError{Code: "INVALID_TRANSITION", Message: err.Error(), RecoveryHint: "Check valid status transitions"}
	case errors.Is(err, health.ErrInvalidTransition):
		return &APIError{Code: "INVALID_TRANSITION", Message: err.Error(), RecoveryHint: "Only upcoming doses can be taken or skipped; call reset_medication_schedule for a new day"}
	case errors.Is(err, incident.ErrMissingNote):
		return &APIError{Code: "MISSING_NOTE", Message: err.Error(), RecoveryHint: "Pass a resolution note"}
	case errors.Is(err, wellness.ErrNotPlaying), errors.Is(err, wellness.ErrNotPaused):
		return &APIError{Code: "PLAYER_STATE", Message: err.Error(), RecoveryHint: "Check player_status"}
	case errors.Is(err, guide.ErrNoGuideOpen):
		return &APIError{Code: "NO_GUIDE_OPEN", Message: err.Error(), RecoveryHint: "Call open_guide first"}
	case errors.Is(err, tutorial.ErrUnknownQuestion),
		errors.Is(err, tutorial.ErrInvalidAnswer),
		errors.Is(err, resource.ErrUnknownQuestion),
		errors.Is(err, resource.ErrUnknownAnswer),
		errors.Is(err, viewstate.ErrUnknownField),
		errors.Is(err, viewstate.ErrUnknownTab),
		errors.Is(err, profile.ErrInvalidSetting),
		errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check the tool's input schema"}
	case errors.Is(err, viewstate.ErrDraftOpen), errors.Is(err, viewstate.ErrNoDraft):
		return &APIError{Code: "DRAFT_STATE", Message: err.Error()}
	case errors.Is(err, viewstate.ErrDuplicateID), errors.Is(err, repository.ErrDuplicate):
		return &APIError{Code: "DUPLICATE", Message: err.Error()}
	default:
		return nil
	}
}
