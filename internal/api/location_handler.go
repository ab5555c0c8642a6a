package api

import (
	"net/http"

	"weather-chatbot/client/internal/interfaces"
)

// LocationHandler serves location search and the weather of the active
// location.
type LocationHandler struct {
	location interfaces.LocationService
	weather  interfaces.WeatherService
}

func NewLocationHandler(location interfaces.LocationService, weather interfaces.WeatherService) *LocationHandler {
	return &LocationHandler{location: location, weather: weather}
}

func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.location.State())
}

// SetQuery updates the search text. Results arrive after the debounce and
// are read back with GET /location.
func (h *LocationHandler) SetQuery(w http.ResponseWriter, r *http.Request) {
	var req LocationQueryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	h.location.SetQuery(req.Query)
	respondWithJSON(w, http.StatusOK, h.location.State())
}

func (h *LocationHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req LocationPayload
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.location.Select(r.Context(), req.toModel()); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.location.State())
}

func (h *LocationHandler) BeginChange(w http.ResponseWriter, r *http.Request) {
	h.location.BeginChange()
	respondWithJSON(w, http.StatusOK, h.location.State())
}

func (h *LocationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.location.Dismiss()
	respondWithJSON(w, http.StatusOK, h.location.State())
}

// UseCurrentLocation waits for the shell to answer the geolocation request.
func (h *LocationHandler) UseCurrentLocation(w http.ResponseWriter, r *http.Request) {
	if _, err := h.location.UseCurrentLocation(r.Context()); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.location.State())
}

func (h *LocationHandler) ClearLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.location.ClearLocation(r.Context()); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.location.State())
}

func (h *LocationHandler) DismissNotice(w http.ResponseWriter, r *http.Request) {
	h.location.DismissNotice()
	respondWithJSON(w, http.StatusOK, h.location.State())
}

// GetWeather returns the cached weather. Both parts are null until the first
// refresh for the active location completes.
func (h *LocationHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, WeatherResponse{
		Current:  h.weather.Snapshot(),
		Forecast: h.weather.Forecast(),
	})
}
