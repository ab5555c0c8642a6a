package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"weather-chatbot/client/internal/bridge"
	"weather-chatbot/client/internal/chat"
	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/model"
	"weather-chatbot/client/internal/speech"
)

// This file contains shared DTOs (Data Transfer Objects) for API requests and
// responses and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response for operations that
// don't need to return a resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// SessionsResponse lists every session, newest first, with the active id.
type SessionsResponse struct {
	Sessions        []model.ChatSession `json:"sessions"`
	ActiveSessionID string              `json:"activeSessionId,omitempty"`
}

// SwitchSessionRequest selects the active session.
type SwitchSessionRequest struct {
	ID string `json:"id" validate:"required,max=64"`
}

// UpdateTitleRequest renames the active session.
type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}

// LocationPayload is a place sent by the UI shell.
type LocationPayload struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Country string  `json:"country" validate:"max=100"`
	State   string  `json:"state" validate:"max=100"`
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lon     float64 `json:"lon" validate:"min=-180,max=180"`
}

func (p LocationPayload) toModel() model.Location {
	return model.Location{Name: p.Name, Country: p.Country, State: p.State, Lat: p.Lat, Lon: p.Lon}
}

// UpdateLocationRequest sets the active session's location. A null location
// clears it.
type UpdateLocationRequest struct {
	Location *LocationPayload `json:"location"`
}

// SendMessageRequest is the body of POST /chat/messages.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// ChatResponse is returned after a send completes.
type ChatResponse struct {
	State   chat.State         `json:"state"`
	Session *model.ChatSession `json:"session,omitempty"`
}

// CapabilitiesRequest is reported by the UI shell once it has detected the
// platform.
type CapabilitiesRequest struct {
	UserAgent   string         `json:"userAgent" validate:"max=512"`
	Recognition bool           `json:"recognition"`
	Synthesis   bool           `json:"synthesis"`
	Voices      []speech.Voice `json:"voices"`
}

// CapabilitiesResponse echoes what the core made of the report.
type CapabilitiesResponse struct {
	Input  speech.InputState  `json:"input"`
	Output speech.OutputState `json:"output"`
}

// RecognitionEventRequest is one recognition callback from the shell.
type RecognitionEventRequest struct {
	Type        string           `json:"type" validate:"required,oneof=start result error end"`
	ResultIndex int              `json:"resultIndex" validate:"min=0"`
	Results     []speech.Segment `json:"results"`
	Error       string           `json:"error" validate:"max=64"`
}

func (r RecognitionEventRequest) toEvent() speech.RecognitionEvent {
	return speech.RecognitionEvent{
		Kind:        speech.RecognitionEventKind(r.Type),
		ResultIndex: r.ResultIndex,
		Results:     r.Results,
		Error:       r.Error,
	}
}

// SynthesisEventRequest is one playback callback from the shell.
type SynthesisEventRequest struct {
	UtteranceID string `json:"utteranceId" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=start end error"`
	Error       string `json:"error" validate:"max=256"`
}

func (r SynthesisEventRequest) toEvent() speech.SynthesisEvent {
	return speech.SynthesisEvent{
		UtteranceID: r.UtteranceID,
		Kind:        speech.SynthesisEventKind(r.Type),
		Error:       r.Error,
	}
}

// VoicesRequest replaces the list of synthesis voices.
type VoicesRequest struct {
	Voices []speech.Voice `json:"voices"`
}

// VoiceOutputRequest toggles auto-speak.
type VoiceOutputRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// GeolocationResultRequest answers a geolocation.request command. Error is
// set instead of coordinates when the fix failed.
type GeolocationResultRequest struct {
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lon      float64 `json:"lon" validate:"min=-180,max=180"`
	Accuracy float64 `json:"accuracy" validate:"min=0"`
	Error    string  `json:"error" validate:"omitempty,oneof=permission-denied position-unavailable timeout"`
}

// LocationQueryRequest updates the search box.
type LocationQueryRequest struct {
	Query string `json:"query" validate:"max=200"`
}

// WeatherResponse is the cached weather of the active location.
type WeatherResponse struct {
	Current  *model.WeatherSnapshot `json:"current"`
	Forecast *model.Forecast        `json:"forecast"`
}

// UpdatePreferencesRequest changes theme and/or language. Empty fields are
// left as they are.
type UpdatePreferencesRequest struct {
	Theme    string `json:"theme" validate:"omitempty,theme"`
	Language string `json:"language" validate:"omitempty,language"`
}

// decodeJSON reads the body into dst and validates it.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation)
	}
	return validateRequest(dst)
}

// respondWithError is the centralized error handling function for the API layer.
// It maps component errors to HTTP status codes and formats a standard JSON
// error response.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, app_errors.ErrBusy):
		statusCode = http.StatusConflict
		message = "A message is already being sent."
	case errors.Is(err, app_errors.ErrNoActiveSession):
		statusCode = http.StatusConflict
		message = "There is no active session."
	case errors.Is(err, app_errors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with the current state of the resource."
	case errors.Is(err, app_errors.ErrPermission):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	case errors.Is(err, app_errors.ErrUnsupported):
		statusCode = http.StatusNotImplemented
		message = "This capability is not supported on the current platform."
	case errors.Is(err, bridge.ErrBridgeBusy):
		statusCode = http.StatusServiceUnavailable
		message = "The platform is not processing commands."
	case errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusGatewayTimeout
		message = "The operation timed out."
	default:
		// Anything else is internal. Details stay in the log.
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// sendStreamError sends a structured error message over a Server-Sent Events (SSE) stream.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)
	errorPayload := ErrorResponse{Error: message}

	jsonData, err := json.Marshal(errorPayload)
	if err != nil {
		slog.Error("Failed to marshal stream error payload", "error", err)
		return
	}

	if _, err := fmt.Fprintf(w, "event: error\ndata: %s\n\n", string(jsonData)); err != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
		return
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// writeStreamEvent marshals data as one named SSE event. It returns an error
// on write failure, which is a signal that the client has disconnected.
func writeStreamEvent(w http.ResponseWriter, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		// The connection is still fine, only this payload is dropped.
		return nil
	}

	if event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
			return fmt.Errorf("failed to write event name to stream: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", string(jsonData)); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
