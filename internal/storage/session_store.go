package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"weather-chatbot/client/internal/model"
)

// Stable slot keys. They match the keys the web client has always used so an
// exported browser profile can be imported as-is.
const (
	SessionsKey      = "weather-chatbot-sessions"
	ActiveSessionKey = "weather-chatbot-active"
	ThemeKey         = "weather-chatbot-theme"
	LanguageKey      = "weather-chatbot-language"
	VoiceOutputKey   = "weather-chatbot-voice-output"
)

// SessionStore is the Local Session Store: typed slots over a KV backend.
//
// Reads never fail. A missing or malformed slot is logged and the documented
// default is returned. Writes return the backend error so the caller can log
// it; in-memory state stays authoritative either way.
type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Sessions returns every stored session, most recently updated first.
func (s *SessionStore) Sessions(ctx context.Context) []model.ChatSession {
	sessions, err := s.readSessions(ctx)
	if err != nil {
		slog.Error("Failed to load sessions, starting empty", "key", SessionsKey, "error", err)
		return []model.ChatSession{}
	}
	slices.SortStableFunc(sessions, func(a, b model.ChatSession) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return sessions
}

func (s *SessionStore) readSessions(ctx context.Context) ([]model.ChatSession, error) {
	raw, err := s.kv.Get(ctx, SessionsKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []model.ChatSession{}, nil
		}
		return nil, err
	}
	var sessions []model.ChatSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, &StorageError{Op: "decode", Key: SessionsKey, Err: err}
	}
	if sessions == nil {
		sessions = []model.ChatSession{}
	}
	return sessions, nil
}

// SaveSession upserts one session. New sessions go to the front. When the
// stored collection cannot be read nothing is written, so the other sessions
// are never replaced by a partial collection.
func (s *SessionStore) SaveSession(ctx context.Context, session model.ChatSession) error {
	sessions, err := s.readSessions(ctx)
	if err != nil {
		return fmt.Errorf("could not read sessions before saving %s: %w", session.ID, err)
	}

	idx := slices.IndexFunc(sessions, func(existing model.ChatSession) bool { return existing.ID == session.ID })
	if idx >= 0 {
		sessions[idx] = session
	} else {
		sessions = append([]model.ChatSession{session}, sessions...)
	}
	return s.writeSessions(ctx, sessions)
}

// SaveAll replaces the whole collection.
func (s *SessionStore) SaveAll(ctx context.Context, sessions []model.ChatSession) error {
	return s.writeSessions(ctx, sessions)
}

func (s *SessionStore) DeleteSession(ctx context.Context, id string) error {
	sessions, err := s.readSessions(ctx)
	if err != nil {
		return err
	}
	sessions = slices.DeleteFunc(sessions, func(existing model.ChatSession) bool { return existing.ID == id })
	return s.writeSessions(ctx, sessions)
}

// ClearAllSessions drops the collection and the active pointer.
func (s *SessionStore) ClearAllSessions(ctx context.Context) error {
	return s.kv.Delete(ctx, SessionsKey, ActiveSessionKey)
}

func (s *SessionStore) writeSessions(ctx context.Context, sessions []model.ChatSession) error {
	normalized := make([]model.ChatSession, len(sessions))
	for i, session := range sessions {
		normalized[i] = normalize(session)
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return &StorageError{Op: "encode", Key: SessionsKey, Err: err}
	}
	return s.kv.Set(ctx, SessionsKey, string(data))
}

// normalize converts timestamps to UTC without monotonic readings and
// replaces nil messages with an empty list, so that a reload compares equal
// to what was written.
func normalize(session model.ChatSession) model.ChatSession {
	out := session.Clone()
	out.CreatedAt = out.CreatedAt.UTC()
	out.UpdatedAt = out.UpdatedAt.UTC()
	for i := range out.Messages {
		out.Messages[i].Timestamp = out.Messages[i].Timestamp.UTC()
	}
	if out.Messages == nil {
		out.Messages = []model.ChatMessage{}
	}
	return out
}

// ActiveSessionID returns the stored pointer, or "" when there is none.
func (s *SessionStore) ActiveSessionID(ctx context.Context) string {
	id, err := s.kv.Get(ctx, ActiveSessionKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Error("Failed to read active session id", "key", ActiveSessionKey, "error", err)
		}
		return ""
	}
	return id
}

// SetActiveSessionID stores the pointer. An empty id removes the slot.
func (s *SessionStore) SetActiveSessionID(ctx context.Context, id string) error {
	if id == "" {
		return s.kv.Delete(ctx, ActiveSessionKey)
	}
	return s.kv.Set(ctx, ActiveSessionKey, id)
}

// Theme returns the stored theme or fallback.
func (s *SessionStore) Theme(ctx context.Context, fallback model.Theme) model.Theme {
	raw, ok := s.readString(ctx, ThemeKey)
	if !ok {
		return fallback
	}
	theme, valid := model.ParseTheme(raw)
	if !valid {
		slog.Warn("Ignoring malformed theme preference", "key", ThemeKey, "value", raw)
		return fallback
	}
	return theme
}

func (s *SessionStore) SetTheme(ctx context.Context, theme model.Theme) error {
	return s.kv.Set(ctx, ThemeKey, string(theme))
}

// Language returns the stored language or fallback.
func (s *SessionStore) Language(ctx context.Context, fallback model.Language) model.Language {
	raw, ok := s.readString(ctx, LanguageKey)
	if !ok {
		return fallback
	}
	lang, valid := model.ParseLanguage(raw)
	if !valid {
		slog.Warn("Ignoring malformed language preference", "key", LanguageKey, "value", raw)
		return fallback
	}
	return lang
}

func (s *SessionStore) SetLanguage(ctx context.Context, lang model.Language) error {
	return s.kv.Set(ctx, LanguageKey, string(lang))
}

// VoiceOutputEnabled defaults to false.
func (s *SessionStore) VoiceOutputEnabled(ctx context.Context) bool {
	raw, ok := s.readString(ctx, VoiceOutputKey)
	if !ok {
		return false
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("Ignoring malformed voice output preference", "key", VoiceOutputKey, "value", raw)
		return false
	}
	return enabled
}

func (s *SessionStore) SetVoiceOutputEnabled(ctx context.Context, enabled bool) error {
	return s.kv.Set(ctx, VoiceOutputKey, strconv.FormatBool(enabled))
}

func (s *SessionStore) readString(ctx context.Context, key string) (string, bool) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Error("Failed to read preference", "key", key, "error", err)
		}
		return "", false
	}
	return raw, true
}
