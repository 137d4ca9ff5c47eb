package repository

import (
	"context"

	"github.com/festival-trip-planner/internal/domain"
)

// GeocodingRepository resolves free-text place names through the external
// geocoding provider. Single attempt per call; the resolver in front of it
// owns fallbacks.
type GeocodingRepository interface {
	// Geocode returns the first candidate coordinate for the query.
	Geocode(ctx context.Context, query string) (*domain.Point, error)
}
