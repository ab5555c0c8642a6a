package api

import (
	"net/http"

	"weather-chatbot/client/internal/interfaces"
	"weather-chatbot/client/internal/model"
)

type PreferencesHandler struct {
	prefs interfaces.PreferencesService
}

func NewPreferencesHandler(prefs interfaces.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.prefs.Get())
}

// UpdatePreferences applies the fields that are set. Theme is applied first,
// so a failing language change still leaves the new theme in place.
func (h *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req UpdatePreferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if theme, ok := model.ParseTheme(req.Theme); ok {
		if err := h.prefs.SetTheme(r.Context(), theme); err != nil {
			respondWithError(w, err)
			return
		}
	}
	if lang, ok := model.ParseLanguage(req.Language); ok {
		if err := h.prefs.SetLanguage(r.Context(), lang); err != nil {
			respondWithError(w, err)
			return
		}
	}
	respondWithJSON(w, http.StatusOK, h.prefs.Get())
}
