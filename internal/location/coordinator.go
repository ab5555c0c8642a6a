// Package location keeps the active session's location and the weather shown
// for it in step.
package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/model"
	"weather-chatbot/client/internal/session"
	"weather-chatbot/client/internal/weather"
)

const (
	DefaultDebounce    = 300 * time.Millisecond
	DefaultMinChars    = 2
	DefaultSearchLimit = 5
)

// Geocoder looks places up by name and by coordinates.
type Geocoder interface {
	SearchLocations(ctx context.Context, query string, limit int) ([]model.Location, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (*model.Location, error)
}

// WeatherFetcher loads the weather for coordinates.
type WeatherFetcher interface {
	Weather(ctx context.Context, lat, lon float64) (*model.WeatherSnapshot, error)
	Forecast(ctx context.Context, lat, lon float64) (*model.Forecast, error)
}

// Sessions is the part of the session manager the coordinator uses.
type Sessions interface {
	ActiveSession() (model.ChatSession, bool)
	UpdateSessionLocation(ctx context.Context, loc *model.Location) bool
	Subscribe(fn func(session.Change))
}

type WeatherCache interface {
	SetSnapshot(s *model.WeatherSnapshot)
	SetForecast(f *model.Forecast)
	Clear()
}

type Localizer interface {
	T(key string, params ...string) string
}

// Mode is the location entry state.
type Mode int

const (
	// ModeViewing shows the current location, or the empty search box when
	// there is none.
	ModeViewing Mode = iota
	ModeSearching
	// ModeChanging is entered explicitly to replace a location that is
	// already set.
	ModeChanging
)

func (m Mode) String() string {
	switch m {
	case ModeSearching:
		return "searching"
	case ModeChanging:
		return "changing"
	default:
		return "viewing"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// State is a snapshot of the coordinator.
type State struct {
	Mode      Mode             `json:"mode"`
	Query     string           `json:"query"`
	Results   []model.Location `json:"results"`
	Searching bool             `json:"searching"`
	Detecting bool             `json:"detecting"`
	Notice    string           `json:"notice,omitempty"`
	Location  *model.Location  `json:"location"`
}

type Option func(*Coordinator)

func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) { c.sched = s }
}

func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.delay = d
		}
	}
}

func WithMinChars(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.minChars = n
		}
	}
}

func WithSearchLimit(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.limit = n
		}
	}
}

func WithPositionOptions(opts PositionOptions) Option {
	return func(c *Coordinator) { c.positionOpts = opts }
}

// Coordinator drives location search, geolocation and the weather refresh
// that follows every location change of the active session.
type Coordinator struct {
	sessions Sessions
	geocoder Geocoder
	weather  WeatherFetcher
	cache    WeatherCache
	geo      Geolocator
	tr       Localizer

	sched        Scheduler
	delay        time.Duration
	minChars     int
	limit        int
	positionOpts PositionOptions
	debounce     *Debouncer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	mode        Mode
	query       string
	results     []model.Location
	searchSeq   uint64
	searching   bool
	detecting   bool
	notice      string
	refreshGen  uint64
	stopRefresh context.CancelFunc
}

// NewCoordinator wires the coordinator to the session manager. geo may be nil
// when the platform has no geolocation.
func NewCoordinator(
	sessions Sessions,
	geocoder Geocoder,
	weatherFetcher WeatherFetcher,
	cache WeatherCache,
	geo Geolocator,
	tr Localizer,
	opts ...Option,
) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		sessions:     sessions,
		geocoder:     geocoder,
		weather:      weatherFetcher,
		cache:        cache,
		geo:          geo,
		tr:           tr,
		sched:        SystemScheduler(),
		delay:        DefaultDebounce,
		minChars:     DefaultMinChars,
		limit:        DefaultSearchLimit,
		positionOpts: DefaultPositionOptions,
		ctx:          ctx,
		cancel:       cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.debounce = NewDebouncer(c.sched, c.delay)
	sessions.Subscribe(c.onSessionChange)
	return c
}

func (c *Coordinator) State() State {
	var loc *model.Location
	if active, ok := c.sessions.ActiveSession(); ok && active.Location != nil {
		value := *active.Location
		loc = &value
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Mode:      c.mode,
		Query:     c.query,
		Results:   append([]model.Location{}, c.results...),
		Searching: c.searching,
		Detecting: c.detecting,
		Notice:    c.notice,
		Location:  loc,
	}
}

// SetQuery records the search text. Lookups are debounced; a query shorter
// than the minimum never reaches the geocoder and clears the results.
func (c *Coordinator) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query
	switch {
	case c.mode == ModeViewing && query != "":
		c.mode = ModeSearching
	case c.mode == ModeSearching && query == "":
		c.mode = ModeViewing
	}

	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < c.minChars {
		c.debounce.Cancel()
		c.searchSeq++
		c.results = nil
		c.searching = false
		return
	}

	c.searchSeq++
	seq := c.searchSeq
	c.debounce.Trigger(func() { c.search(seq, trimmed) })
}

func (c *Coordinator) search(seq uint64, query string) {
	c.mu.Lock()
	if seq != c.searchSeq {
		c.mu.Unlock()
		return
	}
	c.searching = true
	c.mu.Unlock()

	results, err := c.geocoder.SearchLocations(c.ctx, query, c.limit)
	if err != nil {
		slog.Warn("Location search failed", "query", query, "error", err)
		results = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.searchSeq {
		return
	}
	c.searching = false
	c.results = results
}

// Select makes loc the active session's location and closes the search.
func (c *Coordinator) Select(ctx context.Context, loc model.Location) error {
	if !c.sessions.UpdateSessionLocation(ctx, &loc) {
		return app_errors.ErrNoActiveSession
	}
	c.resetSearch()
	return nil
}

// BeginChange opens the search to replace the current location.
func (c *Coordinator) BeginChange() {
	c.resetSearch()
	c.mu.Lock()
	c.mode = ModeChanging
	c.mu.Unlock()
}

// Dismiss closes the search without selecting anything. The location is
// left as it was.
func (c *Coordinator) Dismiss() {
	c.resetSearch()
}

// ClearLocation removes the active session's location. The cached weather
// is dropped before this returns.
func (c *Coordinator) ClearLocation(ctx context.Context) error {
	if !c.sessions.UpdateSessionLocation(ctx, nil) {
		return app_errors.ErrNoActiveSession
	}
	c.resetSearch()
	return nil
}

// UseCurrentLocation asks the platform for a fix and resolves it to a place.
// A failure is also reported as a dismissible notice.
func (c *Coordinator) UseCurrentLocation(ctx context.Context) (model.Location, error) {
	if _, ok := c.sessions.ActiveSession(); !ok {
		return model.Location{}, app_errors.ErrNoActiveSession
	}
	if c.geo == nil {
		c.setNotice(c.tr.T("error.location"))
		return model.Location{}, fmt.Errorf("geolocation unavailable: %w", app_errors.ErrUnsupported)
	}

	c.mu.Lock()
	c.detecting = true
	c.notice = ""
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.detecting = false
		c.mu.Unlock()
	}()

	pos, err := c.geo.CurrentPosition(ctx, c.positionOpts)
	if err != nil {
		slog.Warn("Geolocation failed", "error", err)
		c.setNotice(c.tr.T("error.location"))
		return model.Location{}, fmt.Errorf("could not get current position: %w", err)
	}
	return c.UseCoordinates(ctx, pos.Lat, pos.Lon)
}

// UseCoordinates sets the location from coordinates. When no place name can
// be resolved the coordinates are kept under a placeholder name.
func (c *Coordinator) UseCoordinates(ctx context.Context, lat, lon float64) (model.Location, error) {
	loc, err := c.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		slog.Warn("Reverse geocoding failed, keeping coordinates", "lat", lat, "lon", lon, "error", err)
		loc = nil
	}
	if loc == nil {
		loc = &model.Location{Name: c.tr.T("location.currentLocation"), Country: "", Lat: lat, Lon: lon}
	}

	if !c.sessions.UpdateSessionLocation(ctx, loc) {
		return model.Location{}, app_errors.ErrNoActiveSession
	}
	c.resetSearch()
	return *loc, nil
}

func (c *Coordinator) DismissNotice() {
	c.setNotice("")
}

// Close cancels pending searches and refreshes and waits for them.
func (c *Coordinator) Close() {
	c.debounce.Cancel()
	c.cancel()
	c.wg.Wait()
}

func (c *Coordinator) setNotice(notice string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = notice
}

func (c *Coordinator) resetSearch() {
	c.debounce.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchSeq++
	c.mode = ModeViewing
	c.query = ""
	c.results = nil
	c.searching = false
}

// onSessionChange drops the weather of the previous location synchronously
// and loads the new one in the background. A refresh superseded by a later
// change is cancelled and its results discarded.
func (c *Coordinator) onSessionChange(change session.Change) {
	c.mu.Lock()
	c.refreshGen++
	gen := c.refreshGen
	c.cache.Clear()
	if c.stopRefresh != nil {
		c.stopRefresh()
		c.stopRefresh = nil
	}
	if change.Session == nil || change.Session.Location == nil {
		c.mu.Unlock()
		return
	}
	loc := *change.Session.Location
	ctx, cancel := context.WithCancel(c.ctx)
	c.stopRefresh = cancel
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		c.refresh(ctx, gen, loc)
	}()
}

func (c *Coordinator) refresh(ctx context.Context, gen uint64, loc model.Location) {
	snapshot, err := c.weather.Weather(ctx, loc.Lat, loc.Lon)
	if err != nil {
		slog.Warn("Failed to fetch weather", "location", loc.Name, "error", err)
	} else {
		c.applyIfCurrent(gen, func() { c.cache.SetSnapshot(snapshot) })
	}

	forecast, err := c.weather.Forecast(ctx, loc.Lat, loc.Lon)
	if err != nil {
		slog.Warn("Failed to fetch forecast", "location", loc.Name, "error", err)
		return
	}
	forecast.Items = weather.CondenseForecast(forecast.Items, weather.MaxForecastDays)
	c.applyIfCurrent(gen, func() { c.cache.SetForecast(forecast) })
}

func (c *Coordinator) applyIfCurrent(gen uint64, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.refreshGen {
		fn()
	}
}
