package usecase

import (
	"sort"

	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/pkg/utils"
)

// POISelector filters the festival catalog against the corridor and the
// travel window, and ranks survivors by how close they sit to the literal
// driving path.
type POISelector struct {
	logger *zap.Logger
}

func NewPOISelector(logger *zap.Logger) *POISelector {
	return &POISelector{logger: logger}
}

// Select applies the spatial filter, then a tiered temporal filter that
// relaxes rather than returning an empty list: exact travel window first,
// then same calendar month, then no date filter at all. Undated POIs pass
// every tier. Results are ordered by perpendicular distance to the route,
// closest first; ties keep catalog order.
func (s *POISelector) Select(
	catalog []*domain.PointOfInterest,
	corridor *domain.Corridor,
	route *domain.Route,
	req *domain.RouteRequest,
) []domain.RankedPOI {
	inCorridor := make([]*domain.PointOfInterest, 0, len(catalog))
	for _, poi := range catalog {
		if corridor.Contains(poi.Location()) {
			inCorridor = append(inCorridor, poi)
		}
	}

	selected := filterByWindow(inCorridor, req)
	tier := "window"
	if len(selected) == 0 {
		selected = filterByMonth(inCorridor, req)
		tier = "month"
	}
	if len(selected) == 0 {
		selected = inCorridor
		tier = "none"
	}

	polyline := route.PolylineLatLon()
	ranked := make([]domain.RankedPOI, 0, len(selected))
	for _, poi := range selected {
		ranked = append(ranked, domain.RankedPOI{
			POI:     poi,
			ScoreKm: utils.DistanceToPolyline(poi.Lat, poi.Lon, polyline),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScoreKm < ranked[j].ScoreKm
	})

	s.logger.Debug("POI selection finished",
		zap.Int("catalog", len(catalog)),
		zap.Int("in_corridor", len(inCorridor)),
		zap.Int("selected", len(ranked)),
		zap.String("date_tier", tier))

	return ranked
}

func filterByWindow(pois []*domain.PointOfInterest, req *domain.RouteRequest) []*domain.PointOfInterest {
	out := make([]*domain.PointOfInterest, 0, len(pois))
	for _, poi := range pois {
		if poi.Dates == nil || poi.Dates.Intersects(req.StartDate, req.WindowEnd()) {
			out = append(out, poi)
		}
	}
	return out
}

func filterByMonth(pois []*domain.PointOfInterest, req *domain.RouteRequest) []*domain.PointOfInterest {
	out := make([]*domain.PointOfInterest, 0, len(pois))
	for _, poi := range pois {
		if poi.Dates == nil || poi.Dates.SameMonth(req.StartDate) {
			out = append(out, poi)
		}
	}
	return out
}
