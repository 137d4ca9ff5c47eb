package repository

import (
	"context"

	"github.com/festival-trip-planner/internal/domain"
)

// POIRepository is the read-only festival catalog, fed by the app's content
// store.
type POIRepository interface {
	// ListAll returns the full catalog for a planning session.
	ListAll(ctx context.Context) ([]*domain.PointOfInterest, error)

	// GetByIDs re-joins POI details for persisted plans. Missing ids are
	// silently absent from the result.
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.PointOfInterest, error)
}
