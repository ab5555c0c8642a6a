package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"weather-chatbot/client/internal/interfaces"
	"weather-chatbot/client/internal/location"
	"weather-chatbot/client/internal/speech"
)

// PlatformHandler connects the UI shell that provides speech and
// geolocation.
type PlatformHandler struct {
	platform interfaces.Platform
	input    interfaces.VoiceInputService
	output   interfaces.VoiceOutputService
}

func NewPlatformHandler(platform interfaces.Platform, input interfaces.VoiceInputService, output interfaces.VoiceOutputService) *PlatformHandler {
	return &PlatformHandler{platform: platform, input: input, output: output}
}

// SetCapabilities records what the shell's platform supports. Recognition is
// judged together with the user agent since some browsers expose an API that
// never delivers results.
func (h *PlatformHandler) SetCapabilities(w http.ResponseWriter, r *http.Request) {
	var req CapabilitiesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	capability := speech.DetectCapability(req.UserAgent, req.Recognition)
	h.input.SetCapability(capability)
	h.output.SetSupported(req.Synthesis)
	if len(req.Voices) > 0 {
		h.platform.ReportVoices(req.Voices)
	}
	slog.Info("Platform capabilities reported",
		"browser", capability.Browser,
		"recognition", capability.Supported,
		"synthesis", req.Synthesis,
		"voices", len(req.Voices))

	respondWithJSON(w, http.StatusOK, CapabilitiesResponse{Input: h.input.State(), Output: h.output.State()})
}

// StreamCommands streams platform commands to the shell as Server-Sent
// Events until the client disconnects.
func (h *PlatformHandler) StreamCommands(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	slog.Info("Platform shell connected to command stream")
	commands := h.platform.Commands()
	for {
		select {
		case <-r.Context().Done():
			slog.Info("Platform shell disconnected from command stream")
			return
		case cmd, ok := <-commands:
			if !ok {
				sendStreamError(w, "Command stream closed")
				return
			}
			if err := writeStreamEvent(w, string(cmd.Type), cmd); err != nil {
				slog.Warn("Could not write to command stream, client likely disconnected.", "command_id", cmd.ID, "error", err)
				return
			}
		}
	}
}

// ResolveGeolocation answers a pending geolocation.request command.
func (h *PlatformHandler) ResolveGeolocation(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	var req GeolocationResultRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	pos := location.Position{Lat: req.Lat, Lon: req.Lon, Accuracy: req.Accuracy}
	if err := h.platform.ResolvePosition(requestID, pos, req.Error); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
