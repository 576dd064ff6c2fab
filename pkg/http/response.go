package http

import (
	"encoding/json"
	"net/http"

	apperrors "washq/pkg/errors"
)

// ErrorResponse mirrors the legacy API error shape: a human-readable
// message plus a machine code, with optional field details.
type ErrorResponse struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// MessageResponse is a bare confirmation payload, e.g. after a delete.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError maps an error onto the wire. AppErrors carry their own
// HTTP status; anything else is reported as an opaque internal error.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// WriteSuccess writes the payload directly, without an envelope. The
// booking client consumes records and summary objects as-is.
func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, data)
}

func WriteMessage(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, MessageResponse{Message: message})
}
