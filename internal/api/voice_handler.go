package api

import (
	"net/http"

	"weather-chatbot/client/internal/interfaces"
)

// VoiceHandler drives voice input and output. Platform callbacks posted by
// the shell are forwarded to the bridge and applied by the engines.
type VoiceHandler struct {
	input    interfaces.VoiceInputService
	output   interfaces.VoiceOutputService
	chat     interfaces.ChatService
	platform interfaces.Platform
}

func NewVoiceHandler(
	input interfaces.VoiceInputService,
	output interfaces.VoiceOutputService,
	chat interfaces.ChatService,
	platform interfaces.Platform,
) *VoiceHandler {
	return &VoiceHandler{input: input, output: output, chat: chat, platform: platform}
}

func (h *VoiceHandler) GetInput(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.input.State())
}

func (h *VoiceHandler) StartListening(w http.ResponseWriter, r *http.Request) {
	if err := h.input.StartListening(); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.input.State())
}

func (h *VoiceHandler) StopListening(w http.ResponseWriter, r *http.Request) {
	h.input.StopListening()
	respondWithJSON(w, http.StatusOK, h.input.State())
}

func (h *VoiceHandler) CancelListening(w http.ResponseWriter, r *http.Request) {
	h.input.Cancel()
	respondWithJSON(w, http.StatusOK, h.input.State())
}

func (h *VoiceHandler) ResetTranscript(w http.ResponseWriter, r *http.Request) {
	h.input.ResetTranscript()
	respondWithJSON(w, http.StatusOK, h.input.State())
}

func (h *VoiceHandler) Retry(w http.ResponseWriter, r *http.Request) {
	if err := h.input.Retry(); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.input.State())
}

// SendTranscript submits the captured transcript as a chat message.
func (h *VoiceHandler) SendTranscript(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.SendVoiceTranscript(r.Context()); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ChatResponse{State: h.chat.State()})
}

// PostRecognitionEvent accepts a recognition callback from the shell.
func (h *VoiceHandler) PostRecognitionEvent(w http.ResponseWriter, r *http.Request) {
	var req RecognitionEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.platform.PublishRecognition(r.Context(), req.toEvent()); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, StatusResponse{Status: "accepted"})
}

func (h *VoiceHandler) GetOutput(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.output.State())
}

// SetOutput turns auto-speak on or off.
func (h *VoiceHandler) SetOutput(w http.ResponseWriter, r *http.Request) {
	var req VoiceOutputRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.output.SetEnabled(r.Context(), *req.Enabled); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.output.State())
}

func (h *VoiceHandler) StopOutput(w http.ResponseWriter, r *http.Request) {
	h.output.Stop()
	respondWithJSON(w, http.StatusOK, h.output.State())
}

// PostSynthesisEvent accepts a playback callback from the shell.
func (h *VoiceHandler) PostSynthesisEvent(w http.ResponseWriter, r *http.Request) {
	var req SynthesisEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.platform.PublishSynthesis(r.Context(), req.toEvent()); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, StatusResponse{Status: "accepted"})
}

// SetVoices replaces the synthesis voices. Shells report them again when the
// platform's voiceschanged fires.
func (h *VoiceHandler) SetVoices(w http.ResponseWriter, r *http.Request) {
	var req VoicesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	h.platform.ReportVoices(req.Voices)
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
