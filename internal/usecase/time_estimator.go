package usecase

import (
	"math"
	"time"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/pkg/utils"
)

const (
	dayStartHour   = 8
	dayStartMinute = 30

	// minTravelMinutes models minimum transit overhead even between adjacent
	// stops (parking, walking, getting back on the road).
	minTravelMinutes = 10
)

// TimeEstimator converts an ordered stop list into a schedule: arrival times,
// travel legs and pacing-scaled dwell durations. Travel time is a linear
// proxy over great-circle distance, not a routing-engine ETA.
type TimeEstimator struct{}

func NewTimeEstimator() *TimeEstimator {
	return &TimeEstimator{}
}

// Estimate fills schedule fields on every stop of the day in place and
// recomputes the day summary. date is the calendar day being scheduled; the
// day starts at 08:30.
func (e *TimeEstimator) Estimate(day *domain.DayItinerary, date time.Time, pace domain.PacingMode) {
	cursor := time.Date(date.Year(), date.Month(), date.Day(),
		dayStartHour, dayStartMinute, 0, 0, time.UTC)

	factor := pace.DwellFactor()
	totalMinutes := 0
	totalKm := 0.0

	for i, stop := range day.Stops {
		travel := 0
		if i > 0 {
			prev := day.Stops[i-1]
			km := utils.HaversineDistance(prev.POI.Lat, prev.POI.Lon, stop.POI.Lat, stop.POI.Lon)
			travel = travelMinutes(km)
			totalKm += km
		}

		cursor = cursor.Add(time.Duration(travel) * time.Minute)

		stop.TravelMinutes = travel
		stop.Arrival = cursor
		stop.DwellMinutes = int(math.Round(float64(stop.POI.VisitMinutes) * factor))
		stop.IsStart = i == 0

		cursor = cursor.Add(time.Duration(stop.DwellMinutes) * time.Minute)
		totalMinutes += travel + stop.DwellMinutes
	}

	day.Summary = domain.DaySummary{
		DistanceKm:   totalKm,
		TotalMinutes: totalMinutes,
		StopCount:    len(day.Stops),
	}
}

// travelMinutes approximates driving time as two minutes per kilometer,
// floored at the minimum transit overhead.
func travelMinutes(km float64) int {
	m := int(math.Round(km * 2))
	if m < minTravelMinutes {
		return minTravelMinutes
	}
	return m
}
