package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Route is the ordered driving polyline from origin to destination. It is
// replaced wholesale on every regeneration, never mutated in place.
type Route struct {
	Points     []Point `json:"points"`
	DistanceKm float64 `json:"distance_km"`
	DurationS  float64 `json:"duration_s"`
}

// LineString converts the polyline to orb's lon/lat representation.
func (r *Route) LineString() orb.LineString {
	ls := make(orb.LineString, 0, len(r.Points))
	for _, p := range r.Points {
		ls = append(ls, orb.Point{p.Lon, p.Lat})
	}
	return ls
}

// PolylineLatLon returns the polyline as (lat, lon) pairs for distance math.
func (r *Route) PolylineLatLon() [][2]float64 {
	out := make([][2]float64, 0, len(r.Points))
	for _, p := range r.Points {
		out = append(out, [2]float64{p.Lat, p.Lon})
	}
	return out
}

// Corridor is the buffered region within RadiusKm of a route. Derived value,
// rebuilt whenever the route or radius changes; never persisted.
type Corridor struct {
	Geometry orb.MultiPolygon `json:"geometry"`
	RadiusKm float64          `json:"radius_km"`
}

// Contains reports whether the point lies inside the corridor.
func (c *Corridor) Contains(p Point) bool {
	return planar.MultiPolygonContains(c.Geometry, orb.Point{p.Lon, p.Lat})
}
