package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weather-chatbot/client/internal/api"
	"weather-chatbot/client/internal/chat"
	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/interfaces/mocks"
	"weather-chatbot/client/internal/model"
)

// setupChatHandler builds a handler with mocked session and chat services.
func setupChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockSessionService, *mocks.MockChatService) {
	mockSessions := mocks.NewMockSessionService(t)
	mockChat := mocks.NewMockChatService(t)
	handler := api.NewChatHandler(mockSessions, mockChat)
	return handler, mockSessions, mockChat
}

// addChiURLParams simulates how the chi router injects URL parameters
// (e.g. `{sessionID}`) into the request's context.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestChatHandler_GetSessions(t *testing.T) {
	t.Run("Success - Lists sessions with active id", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		sessions := []model.ChatSession{{ID: "s2", Title: "Kyoto"}, {ID: "s1", Title: "Paris"}}
		mockSessions.On("Sessions").Return(sessions).Once()
		mockSessions.On("ActiveSession").Return(sessions[0], true).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
		rr := httptest.NewRecorder()
		handler.GetSessions(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		var resp api.SessionsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "s2", resp.ActiveSessionID)
		require.Len(t, resp.Sessions, 2)
		assert.Equal(t, "Paris", resp.Sessions[1].Title)
	})

	t.Run("Success - No active session", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("Sessions").Return([]model.ChatSession{}).Once()
		mockSessions.On("ActiveSession").Return(model.ChatSession{}, false).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
		rr := httptest.NewRecorder()
		handler.GetSessions(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "activeSessionId")
	})
}

func TestChatHandler_CreateSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("CreateSession", mock.Anything).Return(model.ChatSession{ID: "new", Title: "New Chat"}).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
		rr := httptest.NewRecorder()
		handler.CreateSession(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"new"`)
	})
}

func TestChatHandler_ClearSessions(t *testing.T) {
	t.Run("Success - Returns the fresh session", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("ClearAllSessions", mock.Anything).Return(model.ChatSession{ID: "fresh"}).Once()

		// ACT
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions", nil)
		rr := httptest.NewRecorder()
		handler.ClearSessions(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"fresh"`)
	})
}

func TestChatHandler_GetActiveSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("ActiveSession").Return(model.ChatSession{ID: "s1"}, true).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/active", nil)
		rr := httptest.NewRecorder()
		handler.GetActiveSession(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - No active session", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("ActiveSession").Return(model.ChatSession{}, false).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/active", nil)
		rr := httptest.NewRecorder()
		handler.GetActiveSession(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "There is no active session.")
	})
}

func TestChatHandler_SwitchSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("SwitchSession", mock.Anything, "s1").Return(true).Once()
		mockSessions.On("ActiveSession").Return(model.ChatSession{ID: "s1"}, true).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/active", strings.NewReader(`{"id":"s1"}`))
		rr := httptest.NewRecorder()
		handler.SwitchSession(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"s1"`)
	})

	t.Run("Failure - Unknown session", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("SwitchSession", mock.Anything, "nope").Return(false).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/active", strings.NewReader(`{"id":"nope"}`))
		rr := httptest.NewRecorder()
		handler.SwitchSession(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Failure - Missing id", func(t *testing.T) {
		// ARRANGE
		handler, _, _ := setupChatHandler(t)

		// ACT
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/active", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		handler.SwitchSession(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'id' failed on the 'required' tag")
	})
}

func TestChatHandler_UpdateSessionTitle(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("UpdateSessionTitle", mock.Anything, "Trip to Osaka").Return(true).Once()
		mockSessions.On("ActiveSession").Return(model.ChatSession{ID: "s1", Title: "Trip to Osaka"}, true).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/active/title", strings.NewReader(`{"title":"Trip to Osaka"}`))
		rr := httptest.NewRecorder()
		handler.UpdateSessionTitle(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Trip to Osaka")
	})

	t.Run("Failure - Validation Error (empty title)", func(t *testing.T) {
		// ARRANGE
		handler, _, _ := setupChatHandler(t)

		// ACT
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/active/title", strings.NewReader(`{"title":""}`))
		rr := httptest.NewRecorder()
		handler.UpdateSessionTitle(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		// ARRANGE
		handler, _, _ := setupChatHandler(t)

		// ACT
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/active/title", strings.NewReader(`{invalid`))
		rr := httptest.NewRecorder()
		handler.UpdateSessionTitle(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid request payload")
	})
}

func TestChatHandler_UpdateSessionLocation(t *testing.T) {
	t.Run("Success - Sets location", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("UpdateSessionLocation", mock.Anything, mock.MatchedBy(func(loc *model.Location) bool {
			return loc != nil && loc.Name == "Tokyo" && loc.Lat == 35.68
		})).Return(true).Once()
		mockSessions.On("ActiveSession").Return(model.ChatSession{ID: "s1"}, true).Once()

		// ACT
		body := `{"location":{"name":"Tokyo","country":"JP","lat":35.68,"lon":139.69}}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/active/location", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.UpdateSessionLocation(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Success - Null clears location", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("UpdateSessionLocation", mock.Anything, (*model.Location)(nil)).Return(true).Once()
		mockSessions.On("ActiveSession").Return(model.ChatSession{ID: "s1"}, true).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/active/location", strings.NewReader(`{"location":null}`))
		rr := httptest.NewRecorder()
		handler.UpdateSessionLocation(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Latitude out of range", func(t *testing.T) {
		// ARRANGE
		handler, _, _ := setupChatHandler(t)

		// ACT
		body := `{"location":{"name":"Nowhere","lat":120,"lon":0}}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/active/location", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.UpdateSessionLocation(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "'lat'")
	})

	t.Run("Failure - No active session", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("UpdateSessionLocation", mock.Anything, mock.Anything).Return(false).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/active/location", strings.NewReader(`{"location":null}`))
		rr := httptest.NewRecorder()
		handler.UpdateSessionLocation(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestChatHandler_DeleteSession(t *testing.T) {
	sessionID := "s1"

	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("DeleteSession", mock.Anything, sessionID).Return(true).Once()

		// ACT
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+sessionID, nil)
		req = addChiURLParams(req, map[string]string{"sessionID": sessionID})
		rr := httptest.NewRecorder()
		handler.DeleteSession(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, _ := setupChatHandler(t)
		mockSessions.On("DeleteSession", mock.Anything, sessionID).Return(false).Once()

		// ACT
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+sessionID, nil)
		req = addChiURLParams(req, map[string]string{"sessionID": sessionID})
		rr := httptest.NewRecorder()
		handler.DeleteSession(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChatHandler_SendMessage(t *testing.T) {
	t.Run("Success - Returns state and transcript", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, mockChat := setupChatHandler(t)
		mockChat.On("SendMessage", mock.Anything, "Weather in Kyoto?").Return(nil).Once()
		mockChat.On("State").Return(chat.State{}).Once()
		mockSessions.On("ActiveSession").Return(model.ChatSession{
			ID: "s1",
			Messages: []model.ChatMessage{
				{ID: "m1", Role: model.RoleUser, Content: "Weather in Kyoto?"},
				{ID: "m2", Role: model.RoleAssistant, Content: "Sunny, 24°C."},
			},
		}, true).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{"message":"Weather in Kyoto?"}`))
		rr := httptest.NewRecorder()
		handler.SendMessage(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		var resp api.ChatResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Session)
		require.Len(t, resp.Session.Messages, 2)
		assert.Equal(t, "Sunny, 24°C.", resp.Session.Messages[1].Content)
		assert.False(t, resp.State.Loading)
	})

	t.Run("Failure - Busy", func(t *testing.T) {
		// ARRANGE
		handler, _, mockChat := setupChatHandler(t)
		mockChat.On("SendMessage", mock.Anything, "again").Return(app_errors.ErrBusy).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{"message":"again"}`))
		rr := httptest.NewRecorder()
		handler.SendMessage(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "already being sent")
	})

	t.Run("Failure - Empty message", func(t *testing.T) {
		// ARRANGE
		handler, _, _ := setupChatHandler(t)

		// ACT
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{"message":""}`))
		rr := httptest.NewRecorder()
		handler.SendMessage(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'message' failed on the 'required' tag")
	})
}

func TestChatHandler_ChatState(t *testing.T) {
	t.Run("Success - Get state", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, mockChat := setupChatHandler(t)
		mockChat.On("State").Return(chat.State{Loading: true}).Once()
		mockSessions.On("ActiveSession").Return(model.ChatSession{}, false).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/state", nil)
		rr := httptest.NewRecorder()
		handler.GetChatState(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"loading":true`)
		assert.NotContains(t, rr.Body.String(), `"session"`)
	})

	t.Run("Success - Clear error", func(t *testing.T) {
		// ARRANGE
		handler, mockSessions, mockChat := setupChatHandler(t)
		mockChat.On("ClearError").Return().Once()
		mockChat.On("State").Return(chat.State{}).Once()
		mockSessions.On("ActiveSession").Return(model.ChatSession{ID: "s1"}, true).Once()

		// ACT
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/chat/error", nil)
		rr := httptest.NewRecorder()
		handler.ClearChatError(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), `"error"`)
	})
}
