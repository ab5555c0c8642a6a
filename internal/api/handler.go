package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/interfaces"
	"weather-chatbot/client/internal/model"
)

// ChatHandler serves the session registry and the chat conversation.
type ChatHandler struct {
	sessions interfaces.SessionService
	chat     interfaces.ChatService
}

func NewChatHandler(sessions interfaces.SessionService, chat interfaces.ChatService) *ChatHandler {
	return &ChatHandler{sessions: sessions, chat: chat}
}

// GetSessions lists sessions, most recently updated first.
func (h *ChatHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	resp := SessionsResponse{Sessions: h.sessions.Sessions()}
	if active, ok := h.sessions.ActiveSession(); ok {
		resp.ActiveSessionID = active.ID
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// CreateSession starts a new session and makes it active.
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.CreateSession(r.Context())
	respondWithJSON(w, http.StatusCreated, session)
}

// ClearSessions removes every session. A fresh one is created in their place.
func (h *ChatHandler) ClearSessions(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.ClearAllSessions(r.Context())
	slog.Info("All chat sessions cleared", "session_id", session.ID)
	respondWithJSON(w, http.StatusOK, session)
}

func (h *ChatHandler) GetActiveSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessions.ActiveSession()
	if !ok {
		respondWithError(w, app_errors.ErrNoActiveSession)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

// SwitchSession makes the session named in the body active.
func (h *ChatHandler) SwitchSession(w http.ResponseWriter, r *http.Request) {
	var req SwitchSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if !h.sessions.SwitchSession(r.Context(), req.ID) {
		respondWithError(w, fmt.Errorf("session %s: %w", req.ID, app_errors.ErrNotFound))
		return
	}
	h.GetActiveSession(w, r)
}

func (h *ChatHandler) UpdateSessionTitle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTitleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if !h.sessions.UpdateSessionTitle(r.Context(), req.Title) {
		respondWithError(w, app_errors.ErrNoActiveSession)
		return
	}
	h.GetActiveSession(w, r)
}

// UpdateSessionLocation sets or, with a null location, clears the place of
// the active session.
func (h *ChatHandler) UpdateSessionLocation(w http.ResponseWriter, r *http.Request) {
	var req UpdateLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	var loc *model.Location
	if req.Location != nil {
		value := req.Location.toModel()
		loc = &value
	}
	if !h.sessions.UpdateSessionLocation(r.Context(), loc) {
		respondWithError(w, app_errors.ErrNoActiveSession)
		return
	}
	h.GetActiveSession(w, r)
}

func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if !h.sessions.DeleteSession(r.Context(), sessionID) {
		respondWithError(w, fmt.Errorf("session %s: %w", sessionID, app_errors.ErrNotFound))
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// SendMessage sends a user message and waits for the assistant's reply. A
// failed completion still answers 200: the failure is part of the transcript
// and of the returned state.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.chat.SendMessage(r.Context(), req.Message); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.chatResponse())
}

func (h *ChatHandler) GetChatState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.chatResponse())
}

func (h *ChatHandler) ClearChatError(w http.ResponseWriter, r *http.Request) {
	h.chat.ClearError()
	respondWithJSON(w, http.StatusOK, h.chatResponse())
}

func (h *ChatHandler) chatResponse() ChatResponse {
	resp := ChatResponse{State: h.chat.State()}
	if session, ok := h.sessions.ActiveSession(); ok {
		resp.Session = &session
	}
	return resp
}
