package domain

import "time"

// DateRange is an inclusive span of calendar days. A single-day event has
// Start == End. Times are date-only, normalized to midnight UTC.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Intersects reports whether the range overlaps [from, to] (inclusive).
func (r DateRange) Intersects(from, to time.Time) bool {
	return !r.End.Before(from) && !r.Start.After(to)
}

// SameMonth reports whether any day of the range falls in the calendar month
// and year of t.
func (r DateRange) SameMonth(t time.Time) bool {
	monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	return r.Intersects(monthStart, monthEnd)
}

// PointOfInterest is a candidate stop from the festival catalog: a cultural
// event or landmark with coordinates and an optional event date range.
// Immutable once loaded for a planning session.
type PointOfInterest struct {
	ID           string     `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Lat          float64    `json:"lat" db:"lat"`
	Lon          float64    `json:"lon" db:"lon"`
	Dates        *DateRange `json:"dates,omitempty"`
	VisitMinutes int        `json:"visit_minutes" db:"visit_minutes"`
	Tags         []string   `json:"tags,omitempty"`
}

func (p *PointOfInterest) Location() Point {
	return Point{Lat: p.Lat, Lon: p.Lon}
}

// RankedPOI is a catalog entry paired with its rank score: the perpendicular
// distance in kilometers from the POI to the driving path. Lower is better.
type RankedPOI struct {
	POI     *PointOfInterest `json:"poi"`
	ScoreKm float64          `json:"score_km"`
}
