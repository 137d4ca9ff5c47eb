package domain

import "time"

// PacingMode scales how long the traveller lingers at each stop.
type PacingMode string

const (
	PaceRelaxed PacingMode = "relaxed"
	PaceNormal  PacingMode = "normal"
	PaceIntense PacingMode = "intense"
)

// DwellFactor is the multiplier applied to a stop's nominal visit duration.
func (m PacingMode) DwellFactor() float64 {
	switch m {
	case PaceRelaxed:
		return 1.2
	case PaceIntense:
		return 0.8
	default:
		return 1.0
	}
}

func (m PacingMode) Valid() bool {
	return m == PaceRelaxed || m == PaceNormal || m == PaceIntense
}

// RouteRequest captures the inputs of one planning run. It is snapshotted
// into the Plan and never persisted on its own.
type RouteRequest struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"start_date"`
	DayCount    int        `json:"day_count"`
	RadiusKm    float64    `json:"radius_km"`
	Pace        PacingMode `json:"pace"`
}

// WindowEnd is the last day of the travel window (inclusive).
func (r *RouteRequest) WindowEnd() time.Time {
	return r.StartDate.AddDate(0, 0, r.DayCount-1)
}

// Stop is a POI placed into a specific day. Schedule fields are filled in by
// estimation and recomputed from scratch on every change to the day.
type Stop struct {
	POI           *PointOfInterest `json:"poi"`
	Arrival       time.Time        `json:"arrival"`
	TravelMinutes int              `json:"travel_minutes"`
	DwellMinutes  int              `json:"dwell_minutes"`
	IsStart       bool             `json:"is_start"`
}

// DaySummary aggregates a day's schedule.
type DaySummary struct {
	DistanceKm   float64 `json:"distance_km"`
	TotalMinutes int     `json:"total_minutes"`
	StopCount    int     `json:"stop_count"`
}

// DayItinerary is one day's ordered stop list. Day indices are 0-based and
// strictly below the request's day count.
type DayItinerary struct {
	Day     int        `json:"day"`
	Stops   []*Stop    `json:"stops"`
	Summary DaySummary `json:"summary"`
}

// Plan is the single source of truth for a planning session: the request
// snapshot, the computed route, and every day's itinerary.
type Plan struct {
	ID        string          `json:"id"`
	Request   *RouteRequest   `json:"request"`
	Route     *Route          `json:"route"`
	Days      []*DayItinerary `json:"days"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewPlan allocates an empty plan with one itinerary per travel day.
func NewPlan(id string, req *RouteRequest, route *Route) *Plan {
	days := make([]*DayItinerary, req.DayCount)
	for i := range days {
		days[i] = &DayItinerary{Day: i, Stops: []*Stop{}}
	}
	return &Plan{
		ID:        id,
		Request:   req,
		Route:     route,
		Days:      days,
		UpdatedAt: time.Now().UTC(),
	}
}

// FindPOI returns the day index holding the POI, or -1. A POI id occurs in at
// most one day's stop list across the whole plan.
func (p *Plan) FindPOI(poiID string) int {
	for _, day := range p.Days {
		for _, s := range day.Stops {
			if s.POI.ID == poiID {
				return day.Day
			}
		}
	}
	return -1
}

// StopCount is the number of stops across all days.
func (p *Plan) StopCount() int {
	n := 0
	for _, day := range p.Days {
		n += len(day.Stops)
	}
	return n
}

// PlanRecord is the persisted shape of a plan: the request fields, the route
// polyline, and per day the ordered POI ids. Full POI details are re-joined
// from the catalog on load.
type PlanRecord struct {
	ID        string       `json:"id"`
	Request   RouteRequest `json:"request"`
	Route     Route        `json:"route"`
	DayStops  [][]string   `json:"day_stops"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ToRecord strips a plan down to its persisted form.
func (p *Plan) ToRecord() *PlanRecord {
	dayStops := make([][]string, len(p.Days))
	for i, day := range p.Days {
		ids := make([]string, 0, len(day.Stops))
		for _, s := range day.Stops {
			ids = append(ids, s.POI.ID)
		}
		dayStops[i] = ids
	}
	return &PlanRecord{
		ID:        p.ID,
		Request:   *p.Request,
		Route:     *p.Route,
		DayStops:  dayStops,
		UpdatedAt: p.UpdatedAt,
	}
}
