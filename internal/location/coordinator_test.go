package location_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weather-chatbot/client/internal/database"
	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/i18n"
	"weather-chatbot/client/internal/location"
	"weather-chatbot/client/internal/location/mocks"
	"weather-chatbot/client/internal/model"
	"weather-chatbot/client/internal/session"
	"weather-chatbot/client/internal/storage"
	"weather-chatbot/client/internal/weather"
)

// fakeWeather answers by latitude. A channel registered in gates holds the
// answer until it is closed.
type fakeWeather struct {
	mu    sync.Mutex
	gates map[float64]chan struct{}
	calls int
}

func (f *fakeWeather) wait(ctx context.Context, lat float64) error {
	f.mu.Lock()
	f.calls++
	gate := f.gates[lat]
	f.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeWeather) Weather(ctx context.Context, lat, lon float64) (*model.WeatherSnapshot, error) {
	if err := f.wait(ctx, lat); err != nil {
		return nil, err
	}
	if lat == 0 {
		return nil, errors.New("weather service down")
	}
	return &model.WeatherSnapshot{City: cityAt(lat), Temp: lat}, nil
}

func (f *fakeWeather) Forecast(ctx context.Context, lat, lon float64) (*model.Forecast, error) {
	if err := f.wait(ctx, lat); err != nil {
		return nil, err
	}
	return &model.Forecast{City: cityAt(lat), Items: []model.ForecastItem{
		{Date: "2024-05-01 09:00:00"},
		{Date: "2024-05-01 12:00:00"},
		{Date: "2024-05-02 12:00:00"},
	}}, nil
}

func cityAt(lat float64) string {
	switch lat {
	case 48.85:
		return "Paris"
	case 51.5:
		return "London"
	}
	return "Somewhere"
}

type fakeGeolocator struct {
	pos  location.Position
	err  error
	opts []location.PositionOptions
}

func (g *fakeGeolocator) CurrentPosition(_ context.Context, opts location.PositionOptions) (location.Position, error) {
	g.opts = append(g.opts, opts)
	return g.pos, g.err
}

type coordinatorFixture struct {
	coordinator *location.Coordinator
	sessions    *session.Manager
	geocoder    *mocks.MockGeocoder
	weather     *fakeWeather
	cache       *weather.Cache
	geo         *fakeGeolocator
	sched       *manualScheduler
}

var (
	paris  = model.Location{Name: "Paris", Country: "FR", Lat: 48.85, Lon: 2.35}
	london = model.Location{Name: "London", Country: "GB", Lat: 51.5, Lon: -0.12}
)

func setupCoordinator(t *testing.T) *coordinatorFixture {
	db, err := database.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tr, err := i18n.New(model.LanguageEnglish)
	require.NoError(t, err)

	f := &coordinatorFixture{
		sessions: session.NewManager(storage.NewSessionStore(storage.NewSQLiteKV(db)), tr),
		geocoder: mocks.NewMockGeocoder(t),
		weather:  &fakeWeather{gates: map[float64]chan struct{}{}},
		cache:    weather.NewCache(),
		geo:      &fakeGeolocator{},
		sched:    &manualScheduler{},
	}
	f.coordinator = location.NewCoordinator(f.sessions, f.geocoder, f.weather, f.cache, f.geo, tr,
		location.WithScheduler(f.sched))
	t.Cleanup(f.coordinator.Close)
	return f
}

func TestCoordinator_Search(t *testing.T) {
	t.Run("Success - Typing is debounced into one lookup", func(t *testing.T) {
		// ARRANGE
		f := setupCoordinator(t)
		results := []model.Location{paris, {Name: "Paray", Country: "FR"}}
		f.geocoder.On("SearchLocations", mock.Anything, "Par", location.DefaultSearchLimit).Return(results, nil).Once()

		// ACT
		f.coordinator.SetQuery("P")
		f.sched.Advance(80 * time.Millisecond)
		f.coordinator.SetQuery("Pa")
		f.sched.Advance(80 * time.Millisecond)
		f.coordinator.SetQuery("Par")
		f.sched.Advance(80 * time.Millisecond)

		// ASSERT
		f.geocoder.AssertNotCalled(t, "SearchLocations", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, location.ModeSearching, f.coordinator.State().Mode)

		f.sched.Advance(location.DefaultDebounce)

		state := f.coordinator.State()
		assert.Equal(t, results, state.Results)
		assert.False(t, state.Searching)
		assert.Equal(t, "Par", state.Query)
		f.geocoder.AssertNumberOfCalls(t, "SearchLocations", 1)
	})

	t.Run("Success - Short query clears results without a lookup", func(t *testing.T) {
		f := setupCoordinator(t)
		f.geocoder.On("SearchLocations", mock.Anything, "Paris", location.DefaultSearchLimit).Return([]model.Location{paris}, nil).Once()
		f.coordinator.SetQuery("Paris")
		f.sched.Advance(location.DefaultDebounce)
		require.Len(t, f.coordinator.State().Results, 1)

		f.coordinator.SetQuery("P")
		f.sched.Advance(time.Second)

		assert.Empty(t, f.coordinator.State().Results)
		f.geocoder.AssertNumberOfCalls(t, "SearchLocations", 1)
	})

	t.Run("Success - Multibyte query counts characters", func(t *testing.T) {
		f := setupCoordinator(t)
		f.geocoder.On("SearchLocations", mock.Anything, "東京", location.DefaultSearchLimit).Return([]model.Location{{Name: "Tokyo", Country: "JP"}}, nil).Once()

		f.coordinator.SetQuery("東")
		f.sched.Advance(time.Second)
		f.coordinator.SetQuery("東京")
		f.sched.Advance(time.Second)

		assert.Len(t, f.coordinator.State().Results, 1)
	})

	t.Run("Failure - Lookup error empties the results", func(t *testing.T) {
		f := setupCoordinator(t)
		f.geocoder.On("SearchLocations", mock.Anything, "Lon", location.DefaultSearchLimit).Return(nil, errors.New("geocoder down")).Once()

		f.coordinator.SetQuery("Lon")
		f.sched.Advance(location.DefaultDebounce)

		state := f.coordinator.State()
		assert.Empty(t, state.Results)
		assert.False(t, state.Searching)
		assert.Empty(t, state.Notice)
	})
}

func TestCoordinator_SelectAndChange(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Selecting sets the location and loads weather", func(t *testing.T) {
		f := setupCoordinator(t)
		f.sessions.CreateSession(ctx)
		f.coordinator.SetQuery("Paris")

		require.NoError(t, f.coordinator.Select(ctx, paris))

		state := f.coordinator.State()
		assert.Equal(t, location.ModeViewing, state.Mode)
		assert.Empty(t, state.Query)
		assert.Empty(t, state.Results)
		require.NotNil(t, state.Location)
		assert.Equal(t, paris, *state.Location)

		assert.Eventually(t, func() bool {
			s, fc := f.cache.Snapshot(), f.cache.Forecast()
			return s != nil && s.City == "Paris" && fc != nil
		}, time.Second, 5*time.Millisecond)
		assert.Len(t, f.cache.Forecast().Items, 2, "forecast is condensed to one item per day")
		assert.Equal(t, "2024-05-01 12:00:00", f.cache.Forecast().Items[0].Date)
	})

	t.Run("Success - Dismissing a change keeps the old location", func(t *testing.T) {
		f := setupCoordinator(t)
		f.sessions.CreateSession(ctx)
		require.NoError(t, f.coordinator.Select(ctx, paris))

		f.coordinator.BeginChange()
		assert.Equal(t, location.ModeChanging, f.coordinator.State().Mode)
		f.geocoder.On("SearchLocations", mock.Anything, "Lond", location.DefaultSearchLimit).Return([]model.Location{london}, nil).Once()
		f.coordinator.SetQuery("Lond")
		f.sched.Advance(location.DefaultDebounce)
		assert.Equal(t, location.ModeChanging, f.coordinator.State().Mode)

		f.coordinator.Dismiss()

		state := f.coordinator.State()
		assert.Equal(t, location.ModeViewing, state.Mode)
		assert.Empty(t, state.Results)
		require.NotNil(t, state.Location)
		assert.Equal(t, "Paris", state.Location.Name)
	})

	t.Run("Success - Dismiss cancels a pending lookup", func(t *testing.T) {
		f := setupCoordinator(t)
		f.coordinator.SetQuery("Berlin")

		f.coordinator.Dismiss()
		f.sched.Advance(time.Second)

		f.geocoder.AssertNotCalled(t, "SearchLocations", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - Clearing drops cached weather at once", func(t *testing.T) {
		f := setupCoordinator(t)
		f.sessions.CreateSession(ctx)
		require.NoError(t, f.coordinator.Select(ctx, paris))
		require.Eventually(t, func() bool { return f.cache.Snapshot() != nil }, time.Second, 5*time.Millisecond)

		require.NoError(t, f.coordinator.ClearLocation(ctx))

		assert.Nil(t, f.cache.Snapshot())
		assert.Nil(t, f.cache.Forecast())
		assert.Nil(t, f.coordinator.State().Location)
	})

	t.Run("Success - A superseded refresh is discarded", func(t *testing.T) {
		f := setupCoordinator(t)
		f.sessions.CreateSession(ctx)
		gate := make(chan struct{})
		f.weather.gates[paris.Lat] = gate

		require.NoError(t, f.coordinator.Select(ctx, paris))
		require.NoError(t, f.coordinator.Select(ctx, london))
		require.Eventually(t, func() bool {
			s := f.cache.Snapshot()
			return s != nil && s.City == "London"
		}, time.Second, 5*time.Millisecond)
		close(gate)

		f.coordinator.Close()
		assert.Equal(t, "London", f.cache.Snapshot().City)
		assert.Equal(t, "London", f.cache.Forecast().City)
	})

	t.Run("Success - Weather failure leaves the card empty", func(t *testing.T) {
		f := setupCoordinator(t)
		f.sessions.CreateSession(ctx)

		require.NoError(t, f.coordinator.Select(ctx, model.Location{Name: "Null Island", Lat: 0, Lon: 0}))
		require.Eventually(t, func() bool { return f.cache.Forecast() != nil }, time.Second, 5*time.Millisecond)

		assert.Nil(t, f.cache.Snapshot())
	})

	t.Run("Success - Switching sessions follows the new location", func(t *testing.T) {
		f := setupCoordinator(t)
		first := f.sessions.CreateSession(ctx)
		require.NoError(t, f.coordinator.Select(ctx, paris))
		f.sessions.CreateSession(ctx)
		assert.Nil(t, f.cache.Snapshot())

		f.sessions.SwitchSession(ctx, first.ID)

		assert.Eventually(t, func() bool {
			s := f.cache.Snapshot()
			return s != nil && s.City == "Paris"
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("Failure - No active session", func(t *testing.T) {
		f := setupCoordinator(t)

		assert.ErrorIs(t, f.coordinator.Select(ctx, paris), app_errors.ErrNoActiveSession)
		assert.ErrorIs(t, f.coordinator.ClearLocation(ctx), app_errors.ErrNoActiveSession)
	})
}

func TestCoordinator_CurrentLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Resolved place", func(t *testing.T) {
		f := setupCoordinator(t)
		f.sessions.CreateSession(ctx)
		f.geo.pos = location.Position{Lat: 35.66, Lon: 139.7}
		shibuya := &model.Location{Name: "Shibuya", Country: "JP", Lat: 35.66, Lon: 139.7}
		f.geocoder.On("ReverseGeocode", mock.Anything, 35.66, 139.7).Return(shibuya, nil).Once()

		loc, err := f.coordinator.UseCurrentLocation(ctx)

		require.NoError(t, err)
		assert.Equal(t, *shibuya, loc)
		require.Len(t, f.geo.opts, 1)
		assert.Equal(t, location.PositionOptions{EnableHighAccuracy: false, Timeout: 10 * time.Second, MaximumAge: 60 * time.Second}, f.geo.opts[0])
		assert.False(t, f.coordinator.State().Detecting)
	})

	t.Run("Success - Unresolved coordinates keep a placeholder name", func(t *testing.T) {
		// ARRANGE
		f := setupCoordinator(t)
		f.sessions.CreateSession(ctx)
		f.geo.pos = location.Position{Lat: 35.0, Lon: 139.0}
		f.geocoder.On("ReverseGeocode", mock.Anything, 35.0, 139.0).Return(nil, nil).Once()

		// ACT
		loc, err := f.coordinator.UseCurrentLocation(ctx)

		// ASSERT
		require.NoError(t, err)
		expected := model.Location{Name: "Current Location", Country: "", Lat: 35.0, Lon: 139.0}
		assert.Equal(t, expected, loc)
		active, ok := f.sessions.ActiveSession()
		require.True(t, ok)
		require.NotNil(t, active.Location)
		assert.Equal(t, expected, *active.Location)
	})

	t.Run("Success - Reverse geocoding error keeps the coordinates", func(t *testing.T) {
		f := setupCoordinator(t)
		f.sessions.CreateSession(ctx)
		f.geocoder.On("ReverseGeocode", mock.Anything, 1.5, 2.5).Return(nil, errors.New("timeout")).Once()

		loc, err := f.coordinator.UseCoordinates(ctx, 1.5, 2.5)

		require.NoError(t, err)
		assert.Equal(t, model.Location{Name: "Current Location", Lat: 1.5, Lon: 2.5}, loc)
	})

	t.Run("Failure - Permission denied shows a notice", func(t *testing.T) {
		f := setupCoordinator(t)
		f.sessions.CreateSession(ctx)
		f.geo.err = app_errors.ErrPermission

		_, err := f.coordinator.UseCurrentLocation(ctx)

		assert.ErrorIs(t, err, app_errors.ErrPermission)
		state := f.coordinator.State()
		assert.Equal(t, "Could not get your location", state.Notice)
		assert.False(t, state.Detecting)
		assert.Nil(t, state.Location)

		f.coordinator.DismissNotice()
		assert.Empty(t, f.coordinator.State().Notice)
	})

	t.Run("Failure - No geolocation capability", func(t *testing.T) {
		db, err := database.InitDB(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		tr, err := i18n.New(model.LanguageJapanese)
		require.NoError(t, err)
		sessions := session.NewManager(storage.NewSessionStore(storage.NewSQLiteKV(db)), tr)
		sessions.CreateSession(ctx)
		c := location.NewCoordinator(sessions, mocks.NewMockGeocoder(t), &fakeWeather{}, weather.NewCache(), nil, tr)
		t.Cleanup(c.Close)

		_, err = c.UseCurrentLocation(ctx)

		assert.ErrorIs(t, err, app_errors.ErrUnsupported)
		assert.Equal(t, "位置情報を取得できませんでした", c.State().Notice)
	})

	t.Run("Failure - No active session", func(t *testing.T) {
		f := setupCoordinator(t)

		_, err := f.coordinator.UseCurrentLocation(ctx)

		assert.ErrorIs(t, err, app_errors.ErrNoActiveSession)
		assert.Empty(t, f.geo.opts)
	})
}
