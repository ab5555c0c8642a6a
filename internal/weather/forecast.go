package weather

import (
	"strings"

	"weather-chatbot/client/internal/model"
)

// MaxForecastDays is the number of days shown in the forecast card.
const MaxForecastDays = 5

const middayReading = "12:00"

// CondenseForecast keeps one item per calendar day, preferring the midday
// reading, and returns at most limit days in their original order. Items
// whose Date carries no time part are treated as already condensed.
func CondenseForecast(items []model.ForecastItem, limit int) []model.ForecastItem {
	if limit <= 0 {
		limit = MaxForecastDays
	}

	var days []string
	byDay := make(map[string]model.ForecastItem)
	for _, item := range items {
		day, clock := splitDate(item.Date)
		current, seen := byDay[day]
		if !seen {
			days = append(days, day)
			byDay[day] = item
			continue
		}
		_, currentClock := splitDate(current.Date)
		if !strings.HasPrefix(currentClock, middayReading) && strings.HasPrefix(clock, middayReading) {
			byDay[day] = item
		}
	}

	if len(days) > limit {
		days = days[:limit]
	}
	out := make([]model.ForecastItem, 0, len(days))
	for _, day := range days {
		out = append(out, byDay[day])
	}
	return out
}

// splitDate separates "2024-05-01 12:00:00" or "2024-05-01T12:00:00Z" into
// its day and clock parts.
func splitDate(date string) (string, string) {
	if i := strings.IndexAny(date, " T"); i >= 0 {
		return date[:i], date[i+1:]
	}
	return date, ""
}
