package usecase

import (
	"go.uber.org/zap"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/pkg/errors"
	"github.com/festival-trip-planner/internal/pkg/utils"
)

// capSegments controls how finely the round caps are polygonized.
const capSegments = 32

// CorridorBuilder expands a route polyline into the buffered region within
// radiusKm of the driving path. The buffer is assembled as a multipolygon:
// one quad per route segment plus a disc cap at every vertex, which is
// equivalent to the unioned buffer for containment tests and free of
// self-intersection artifacts at any radius.
type CorridorBuilder struct {
	logger *zap.Logger
}

func NewCorridorBuilder(logger *zap.Logger) *CorridorBuilder {
	return &CorridorBuilder{logger: logger}
}

func (b *CorridorBuilder) Build(route *domain.Route, radiusKm float64) (*domain.Corridor, error) {
	if !utils.ValidateRadius(radiusKm) {
		return nil, errors.ErrInvalidRadius
	}
	if route == nil || len(route.Points) == 0 {
		return nil, errors.ErrRouteUnavailable
	}

	radiusM := radiusKm * 1000.0
	line := route.LineString()

	geometry := make(orb.MultiPolygon, 0, 2*len(line))

	// Disc caps around every vertex cover segment joints and the endpoints.
	for _, p := range line {
		geometry = append(geometry, orb.Polygon{discRing(p, radiusM)})
	}

	// One quad per segment, offset perpendicular to the segment bearing.
	for i := 0; i < len(line)-1; i++ {
		a, c := line[i], line[i+1]
		if a == c {
			continue
		}

		bearing := geo.Bearing(a, c)
		left := bearing - 90
		right := bearing + 90

		ring := orb.Ring{
			geo.PointAtBearingAndDistance(a, left, radiusM),
			geo.PointAtBearingAndDistance(c, left, radiusM),
			geo.PointAtBearingAndDistance(c, right, radiusM),
			geo.PointAtBearingAndDistance(a, right, radiusM),
		}
		ring = append(ring, ring[0])

		geometry = append(geometry, orb.Polygon{ring})
	}

	b.logger.Debug("Corridor built",
		zap.Float64("radius_km", radiusKm),
		zap.Int("route_points", len(line)),
		zap.Int("polygons", len(geometry)))

	return &domain.Corridor{
		Geometry: geometry,
		RadiusKm: radiusKm,
	}, nil
}

// discRing polygonizes a circle of radiusM meters around center as a closed
// ring.
func discRing(center orb.Point, radiusM float64) orb.Ring {
	ring := make(orb.Ring, 0, capSegments+1)
	for i := 0; i < capSegments; i++ {
		bearing := float64(i) * 360.0 / capSegments
		ring = append(ring, geo.PointAtBearingAndDistance(center, bearing, radiusM))
	}
	ring = append(ring, ring[0])
	return ring
}
