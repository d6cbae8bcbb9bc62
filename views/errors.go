// Package views holds the state machines behind the dashboard pages. Each type is
// created per request or connection and talks to the backend through personastore.
package views

import (
	"errors"
	"sort"
	"strings"
)

// User-facing messages
const (
	MsgInvalidJSON        = "Please enter valid JSON format"
	MsgRequiredFields     = "Please fill in all required fields"
	MsgNameRequired       = "Name is required"
	MsgDescriptionMissing = "Description is required"
	MsgAddFailed          = "Failed to add persona. Please try again."
	MsgUpdateFailed       = "Failed to update persona. Please try again."
	MsgLoadFailed         = "Failed to load personas. Please try again."
	MsgSetDefaultFailed   = "Failed to set default persona. Please try again."
	MsgLoadDefaultFailed  = "Failed to load default persona. Please try again."
	MsgSendFailed         = "Failed to send message. Please try again."
	MsgAllFieldsRequired  = "Please fill in all fields"
	MsgUnknownScenario    = "Please select a scenario"
	MsgScenarioSaveFailed = "Failed to save scenario. Please try again."
)

var (
	// ErrTransport wraps a failed backend call. The cause is logged, never shown.
	ErrTransport = errors.New("views: transport failure")
	// ErrSubmitInFlight is returned when a form is submitted while a submission is pending
	ErrSubmitInFlight = errors.New("views: submission already in flight")
	// ErrFormClosed is returned when a form is used after a successful submission
	ErrFormClosed = errors.New("views: form is closed")
	// ErrEmptyPrompt is returned for a blank chat message
	ErrEmptyPrompt = errors.New("views: empty prompt")
	// ErrSendInFlight is returned when a chat message is sent while another is pending
	ErrSendInFlight = errors.New("views: send already in flight")
	// ErrNotEditing is returned when saving a persona that is not in edit mode
	ErrNotEditing = errors.New("views: persona is not being edited")
)

// ValidationError maps field names to messages
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "views: validation failed: " + strings.Join(parts, ", ")
}
