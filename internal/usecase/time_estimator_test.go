package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/usecase"
)

func TestTimeEstimator_Estimate(t *testing.T) {
	estimator := usecase.NewTimeEstimator()
	date, _ := time.Parse("2006-01-02", "2026-06-20")

	t.Run("first stop starts the day at 08:30", func(t *testing.T) {
		day := &domain.DayItinerary{
			Day:   0,
			Stops: stopsFromPOIs(testPOI("a", "A", -0.18, -78.47, nil)),
		}

		estimator.Estimate(day, date, domain.PaceNormal)

		stop := day.Stops[0]
		assert.True(t, stop.IsStart)
		assert.Equal(t, 0, stop.TravelMinutes)
		assert.Equal(t, time.Date(2026, 6, 20, 8, 30, 0, 0, time.UTC), stop.Arrival)
		assert.Equal(t, 60, stop.DwellMinutes)
	})

	t.Run("arrivals are strictly increasing along the day", func(t *testing.T) {
		day := &domain.DayItinerary{
			Stops: stopsFromPOIs(
				testPOI("a", "A", -0.18, -78.47, nil),
				testPOI("b", "B", -0.00, -78.46, nil),
				testPOI("c", "C", 0.23, -78.26, nil),
			),
		}

		estimator.Estimate(day, date, domain.PaceNormal)

		for i := 1; i < len(day.Stops); i++ {
			assert.True(t, day.Stops[i].Arrival.After(day.Stops[i-1].Arrival))
			assert.False(t, day.Stops[i].IsStart)
			assert.GreaterOrEqual(t, day.Stops[i].TravelMinutes, 10)
		}
	})

	t.Run("travel time floors at ten minutes for adjacent stops", func(t *testing.T) {
		// 300 m apart: the linear model would give ~1 minute.
		day := &domain.DayItinerary{
			Stops: stopsFromPOIs(
				testPOI("a", "A", 0.2343, -78.2610, nil),
				testPOI("b", "B", 0.2370, -78.2610, nil),
			),
		}

		estimator.Estimate(day, date, domain.PaceNormal)
		assert.Equal(t, 10, day.Stops[1].TravelMinutes)
	})

	t.Run("longer legs scale linearly with distance", func(t *testing.T) {
		// Quito to Otavalo is roughly 55 km great-circle, so about 110 min.
		day := &domain.DayItinerary{
			Stops: stopsFromPOIs(
				testPOI("a", "A", -0.1807, -78.4678, nil),
				testPOI("b", "B", 0.2343, -78.2610, nil),
			),
		}

		estimator.Estimate(day, date, domain.PaceNormal)
		assert.InDelta(t, 105, day.Stops[1].TravelMinutes, 15)
	})

	t.Run("pacing orders dwell durations", func(t *testing.T) {
		dwell := func(pace domain.PacingMode) int {
			day := &domain.DayItinerary{
				Stops: stopsFromPOIs(testPOI("a", "A", -0.18, -78.47, nil)),
			}
			estimator.Estimate(day, date, pace)
			return day.Stops[0].DwellMinutes
		}

		relaxed := dwell(domain.PaceRelaxed)
		normal := dwell(domain.PaceNormal)
		intense := dwell(domain.PaceIntense)

		assert.Equal(t, 72, relaxed)
		assert.Equal(t, 60, normal)
		assert.Equal(t, 48, intense)
		assert.Greater(t, relaxed, normal)
		assert.Greater(t, normal, intense)
	})

	t.Run("summary aggregates the day", func(t *testing.T) {
		day := &domain.DayItinerary{
			Stops: stopsFromPOIs(
				testPOI("a", "A", -0.1807, -78.4678, nil),
				testPOI("b", "B", -0.0022, -78.4558, nil),
			),
		}

		estimator.Estimate(day, date, domain.PaceNormal)

		require.Equal(t, 2, day.Summary.StopCount)
		assert.Greater(t, day.Summary.DistanceKm, 0.0)

		want := day.Stops[0].DwellMinutes + day.Stops[1].TravelMinutes + day.Stops[1].DwellMinutes
		assert.Equal(t, want, day.Summary.TotalMinutes)
	})

	t.Run("empty day", func(t *testing.T) {
		day := &domain.DayItinerary{Stops: []*domain.Stop{}}
		estimator.Estimate(day, date, domain.PaceNormal)
		assert.Equal(t, domain.DaySummary{}, day.Summary)
	})
}
