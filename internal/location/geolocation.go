package location

import (
	"context"
	"time"
)

// Position is a fix reported by the platform.
type Position struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Accuracy float64 `json:"accuracy,omitempty"`
}

// PositionOptions bound how hard the platform tries.
type PositionOptions struct {
	EnableHighAccuracy bool          `json:"enableHighAccuracy"`
	Timeout            time.Duration `json:"timeout"`
	MaximumAge         time.Duration `json:"maximumAge"`
}

// DefaultPositionOptions trades accuracy for a quick answer.
var DefaultPositionOptions = PositionOptions{
	EnableHighAccuracy: false,
	Timeout:            10 * time.Second,
	MaximumAge:         60 * time.Second,
}

// Geolocator is the platform geolocation capability.
type Geolocator interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
}
