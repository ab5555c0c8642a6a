// Package weather holds the weather data shown next to the conversation.
package weather

import (
	"sync"

	"weather-chatbot/client/internal/model"
)

// Cache holds the snapshot and forecast for the active session's location.
type Cache struct {
	mu       sync.RWMutex
	snapshot *model.WeatherSnapshot
	forecast *model.Forecast
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Snapshot() *model.WeatherSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil
	}
	s := *c.snapshot
	return &s
}

// SetSnapshot replaces the cached snapshot. A nil snapshot clears it.
func (c *Cache) SetSnapshot(s *model.WeatherSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s == nil {
		c.snapshot = nil
		return
	}
	cp := *s
	c.snapshot = &cp
}

func (c *Cache) Forecast() *model.Forecast {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.forecast == nil {
		return nil
	}
	f := model.Forecast{City: c.forecast.City, Items: append([]model.ForecastItem(nil), c.forecast.Items...)}
	return &f
}

func (c *Cache) SetForecast(f *model.Forecast) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f == nil {
		c.forecast = nil
		return
	}
	c.forecast = &model.Forecast{City: f.City, Items: append([]model.ForecastItem(nil), f.Items...)}
}

// Clear drops both the snapshot and the forecast.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.forecast = nil
}
