package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Chat        *ChatHandler
	Voice       *VoiceHandler
	Platform    *PlatformHandler
	Location    *LocationHandler
	Preferences *PreferencesHandler
}

// NewRouter creates the control API consumed by the UI shell.
func NewRouter(h Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes. Sending a message waits for the remote
		// completion, which the remote client bounds on its own.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Sessions ---
			r.Get("/sessions", h.Chat.GetSessions)
			r.Post("/sessions", h.Chat.CreateSession)
			r.Delete("/sessions", h.Chat.ClearSessions)
			r.Get("/sessions/active", h.Chat.GetActiveSession)
			r.Put("/sessions/active", h.Chat.SwitchSession)
			r.Put("/sessions/active/title", h.Chat.UpdateSessionTitle)
			r.Put("/sessions/active/location", h.Chat.UpdateSessionLocation)
			r.Delete("/sessions/{sessionID}", h.Chat.DeleteSession)

			// --- Chat ---
			r.Post("/chat/messages", h.Chat.SendMessage)
			r.Get("/chat/state", h.Chat.GetChatState)
			r.Delete("/chat/error", h.Chat.ClearChatError)

			// --- Voice input ---
			r.Get("/voice/input", h.Voice.GetInput)
			r.Post("/voice/input/start", h.Voice.StartListening)
			r.Post("/voice/input/stop", h.Voice.StopListening)
			r.Post("/voice/input/cancel", h.Voice.CancelListening)
			r.Post("/voice/input/reset", h.Voice.ResetTranscript)
			r.Post("/voice/input/retry", h.Voice.Retry)
			r.Post("/voice/input/send", h.Voice.SendTranscript)
			r.Post("/voice/input/events", h.Voice.PostRecognitionEvent)

			// --- Voice output ---
			r.Get("/voice/output", h.Voice.GetOutput)
			r.Put("/voice/output", h.Voice.SetOutput)
			r.Post("/voice/output/stop", h.Voice.StopOutput)
			r.Post("/voice/output/events", h.Voice.PostSynthesisEvent)
			r.Put("/voice/output/voices", h.Voice.SetVoices)

			// --- Platform ---
			r.Put("/platform/capabilities", h.Platform.SetCapabilities)
			r.Post("/platform/geolocation/{requestID}", h.Platform.ResolveGeolocation)

			// --- Location & weather ---
			r.Get("/location", h.Location.GetLocation)
			r.Put("/location/query", h.Location.SetQuery)
			r.Post("/location/select", h.Location.Select)
			r.Post("/location/change", h.Location.BeginChange)
			r.Post("/location/dismiss", h.Location.Dismiss)
			r.Post("/location/current", h.Location.UseCurrentLocation)
			r.Delete("/location", h.Location.ClearLocation)
			r.Delete("/location/notice", h.Location.DismissNotice)
			r.Get("/weather", h.Location.GetWeather)

			// --- Preferences ---
			r.Get("/preferences", h.Preferences.GetPreferences)
			r.Put("/preferences", h.Preferences.UpdatePreferences)
		})

		// The command stream stays open for as long as the shell runs, so it
		// must not have a timeout.
		r.Group(func(r chi.Router) {
			r.Get("/platform/commands", h.Platform.StreamCommands)
		})
	})

	return r
}
