package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"weather-chatbot/client/internal/model"
)

// Store is the persistence the Manager writes through to.
type Store interface {
	Sessions(ctx context.Context) []model.ChatSession
	SaveAll(ctx context.Context, sessions []model.ChatSession) error
	ClearAllSessions(ctx context.Context) error
	ActiveSessionID(ctx context.Context) string
	SetActiveSessionID(ctx context.Context, id string) error
}

// Localizer supplies the text for new sessions.
type Localizer interface {
	T(key string, params ...string) string
}

// ChangeKind tells subscribers what moved.
type ChangeKind int

const (
	// ChangeActive fires when the active pointer moves (including to none).
	ChangeActive ChangeKind = iota
	// ChangeLocation fires when the active session's location is replaced.
	ChangeLocation
)

// Change is delivered to subscribers after a mutation has been persisted.
// Session is nil when no session is active.
type Change struct {
	Kind    ChangeKind
	Session *model.ChatSession
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator replaces the uuid based id generator.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

// Manager is the in-memory session registry. Every mutation is written
// through to the Store before the call returns; storage failures are logged
// and the in-memory registry stays authoritative. The whole registry is
// written each time, so a failed write is repaired by the next one.
type Manager struct {
	store Store
	tr    Localizer
	now   func() time.Time
	newID func() string

	// opMu serializes whole mutations including their write-through, so the
	// store never sees two mutations interleaved.
	opMu sync.Mutex

	mu       sync.Mutex
	sessions []model.ChatSession
	activeID string

	subMu       sync.Mutex
	subscribers []func(Change)
}

func NewManager(store Store, tr Localizer, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		tr:       tr,
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: []model.ChatSession{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers fn for change notifications. Callbacks run on the
// goroutine that performed the mutation, after the registry lock is released.
func (m *Manager) Subscribe(fn func(Change)) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) publish(kind ChangeKind, session *model.ChatSession) {
	m.subMu.Lock()
	subs := slices.Clone(m.subscribers)
	m.subMu.Unlock()

	for _, fn := range subs {
		fn(Change{Kind: kind, Session: session})
	}
}

// Load hydrates the registry from the store. With no stored sessions the
// registry stays empty and no session is active; nothing is created.
func (m *Manager) Load(ctx context.Context) {
	m.opMu.Lock()
	stored := m.store.Sessions(ctx)
	storedActive := m.store.ActiveSessionID(ctx)

	m.mu.Lock()
	m.sessions = stored
	m.activeID = ""
	if len(stored) > 0 {
		m.activeID = stored[0].ID
		if storedActive != "" && m.indexOf(storedActive) >= 0 {
			m.activeID = storedActive
		}
	}
	activeID := m.activeID
	active := m.activeCopy()
	m.mu.Unlock()
	m.opMu.Unlock()

	slog.Info("Loaded chat sessions", "count", len(stored), "active_session_id", activeID)
	m.publish(ChangeActive, active)
}

// Sessions returns a copy of the registry in display order.
func (m *Manager) Sessions() []model.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.ChatSession, len(m.sessions))
	for i, s := range m.sessions {
		out[i] = s.Clone()
	}
	return out
}

// ActiveID returns the active session id, or "" when none is active.
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// ActiveSession returns a copy of the active session.
func (m *Manager) ActiveSession() (model.ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(m.activeID)
	if idx < 0 {
		return model.ChatSession{}, false
	}
	return m.sessions[idx].Clone(), true
}

// Session returns a copy of the session with id.
func (m *Manager) Session(id string) (model.ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return model.ChatSession{}, false
	}
	return m.sessions[idx].Clone(), true
}

// CreateSession adds a session seeded with the welcome message at the front
// of the registry and makes it active.
func (m *Manager) CreateSession(ctx context.Context) model.ChatSession {
	m.opMu.Lock()
	m.mu.Lock()
	session := m.newSession()
	m.sessions = append([]model.ChatSession{session}, m.sessions...)
	m.activeID = session.ID
	out := session.Clone()
	m.mu.Unlock()

	m.persistSessions(ctx)
	m.persistActive(ctx, out.ID)
	m.opMu.Unlock()
	slog.Debug("Created chat session", "session_id", out.ID)

	m.publish(ChangeActive, &out)
	return out.Clone()
}

func (m *Manager) newSession() model.ChatSession {
	now := m.now().UTC()
	return model.ChatSession{
		ID:    m.newID(),
		Title: m.tr.T("chat.newChat"),
		Messages: []model.ChatMessage{{
			ID:        m.newID(),
			Role:      model.RoleAssistant,
			Content:   m.tr.T("chat.welcome"),
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SwitchSession makes id active. Unknown ids are ignored. Only the pointer is
// persisted. It reports whether the switch happened.
func (m *Manager) SwitchSession(ctx context.Context, id string) bool {
	m.opMu.Lock()
	m.mu.Lock()
	if m.indexOf(id) < 0 {
		m.mu.Unlock()
		m.opMu.Unlock()
		slog.Debug("Ignoring switch to unknown session", "session_id", id)
		return false
	}
	m.activeID = id
	active := m.activeCopy()
	m.mu.Unlock()

	m.persistActive(ctx, id)
	m.opMu.Unlock()

	m.publish(ChangeActive, active)
	return true
}

// DeleteSession removes id. When it was active, the most recently updated
// remaining session becomes active, or none when the registry is now empty.
func (m *Manager) DeleteSession(ctx context.Context, id string) bool {
	m.opMu.Lock()
	m.mu.Lock()
	idx := m.indexOf(id)
	if idx < 0 {
		m.mu.Unlock()
		m.opMu.Unlock()
		return false
	}
	m.sessions = slices.Delete(m.sessions, idx, idx+1)

	wasActive := m.activeID == id
	if wasActive {
		m.activeID = m.mostRecentID()
	}
	newActive := m.activeID
	active := m.activeCopy()
	m.mu.Unlock()

	m.persistSessions(ctx)
	m.persistActive(ctx, newActive)
	m.opMu.Unlock()

	if wasActive {
		m.publish(ChangeActive, active)
	}
	return true
}

// ClearAllSessions replaces the registry with one fresh active session.
func (m *Manager) ClearAllSessions(ctx context.Context) model.ChatSession {
	m.opMu.Lock()
	m.mu.Lock()
	session := m.newSession()
	m.sessions = []model.ChatSession{session}
	m.activeID = session.ID
	out := session.Clone()
	m.mu.Unlock()

	if err := m.store.ClearAllSessions(context.WithoutCancel(ctx)); err != nil {
		slog.Error("Failed to clear stored sessions", "error", err)
	}
	m.persistSessions(ctx)
	m.persistActive(ctx, out.ID)
	m.opMu.Unlock()

	m.publish(ChangeActive, &out)
	return out.Clone()
}

// AddMessage appends msg to the active session. It is a no-op when no session
// is active.
func (m *Manager) AddMessage(ctx context.Context, msg model.ChatMessage) bool {
	return m.AddMessageTo(ctx, m.ActiveID(), msg)
}

// AddMessageTo appends msg to the session with id. The first user message of
// a session sets its title; later ones never do.
func (m *Manager) AddMessageTo(ctx context.Context, id string, msg model.ChatMessage) bool {
	if msg.ID == "" {
		msg.ID = m.newID()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = m.now().UTC()
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	_, ok := m.mutate(id, func(s *model.ChatSession) {
		if msg.Role == model.RoleUser && !s.HasUserMessage() {
			s.Title = model.GenerateTitle(msg.Content)
		}
		s.Messages = append(s.Messages, msg)
	})
	if !ok {
		slog.Debug("Dropping message, session not found", "session_id", id, "role", msg.Role)
		return false
	}

	m.persistSessions(ctx)
	return true
}

// UpdateSessionLocation replaces the active session's location. A nil loc
// clears it. No-op when no session is active.
func (m *Manager) UpdateSessionLocation(ctx context.Context, loc *model.Location) bool {
	var next *model.Location
	if loc != nil {
		value := *loc
		next = &value
	}

	m.opMu.Lock()
	updated, ok := m.mutate(m.ActiveID(), func(s *model.ChatSession) {
		s.Location = next
	})
	if ok {
		m.persistSessions(ctx)
	}
	m.opMu.Unlock()
	if !ok {
		return false
	}

	m.publish(ChangeLocation, &updated)
	return true
}

// UpdateSessionTitle renames the active session.
func (m *Manager) UpdateSessionTitle(ctx context.Context, title string) bool {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	_, ok := m.mutate(m.ActiveID(), func(s *model.ChatSession) {
		s.Title = title
	})
	if !ok {
		return false
	}
	m.persistSessions(ctx)
	return true
}

// mutate applies fn to the session with id under the lock and bumps
// UpdatedAt. It returns a copy of the result.
func (m *Manager) mutate(id string, fn func(s *model.ChatSession)) (model.ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return model.ChatSession{}, false
	}
	s := &m.sessions[idx]
	fn(s)
	s.UpdatedAt = m.nextTimestamp(s.UpdatedAt)
	return s.Clone(), true
}

// nextTimestamp keeps UpdatedAt strictly increasing even when the clock has
// not moved since the previous mutation.
func (m *Manager) nextTimestamp(prev time.Time) time.Time {
	now := m.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

func (m *Manager) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(m.sessions, func(s model.ChatSession) bool { return s.ID == id })
}

func (m *Manager) mostRecentID() string {
	if len(m.sessions) == 0 {
		return ""
	}
	best := m.sessions[0]
	for _, s := range m.sessions[1:] {
		if s.UpdatedAt.After(best.UpdatedAt) {
			best = s
		}
	}
	return best.ID
}

func (m *Manager) activeCopy() *model.ChatSession {
	idx := m.indexOf(m.activeID)
	if idx < 0 {
		return nil
	}
	out := m.sessions[idx].Clone()
	return &out
}

// persistSessions writes the whole registry. It runs detached from ctx: a
// caller that gives up after the in-memory change must not leave the store
// behind. Callers hold opMu.
func (m *Manager) persistSessions(ctx context.Context) {
	m.mu.Lock()
	snapshot := make([]model.ChatSession, len(m.sessions))
	for i, s := range m.sessions {
		snapshot[i] = s.Clone()
	}
	m.mu.Unlock()

	if err := m.store.SaveAll(context.WithoutCancel(ctx), snapshot); err != nil {
		slog.Error("Failed to persist sessions", "count", len(snapshot), "error", err)
	}
}

func (m *Manager) persistActive(ctx context.Context, id string) {
	if err := m.store.SetActiveSessionID(context.WithoutCancel(ctx), id); err != nil {
		slog.Error("Failed to persist active session", "session_id", id, "error", err)
	}
}
