package dto

import (
	"github.com/paulmach/orb/geojson"

	"github.com/festival-trip-planner/internal/domain"
)

// GenerateRouteResponse carries everything the planner view needs after one
// generation run: the fresh plan, the corridor outline for the map, and the
// ranked catalog selection. NoNearbyEvents is set when even the fully relaxed
// date filter matched nothing; the route and corridor are still usable.
type GenerateRouteResponse struct {
	Plan           *domain.Plan       `json:"plan"`
	Corridor       *geojson.Geometry  `json:"corridor"`
	POIs           []domain.RankedPOI `json:"pois"`
	NoNearbyEvents bool               `json:"no_nearby_events"`
}

// PlanResponse wraps the live plan for read and mutation endpoints.
type PlanResponse struct {
	Plan *domain.Plan `json:"plan"`
}

// CatalogResponse lists the read-only POI catalog.
type CatalogResponse struct {
	POIs  []*domain.PointOfInterest `json:"pois"`
	Total int                       `json:"total"`
}
