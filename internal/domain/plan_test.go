package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festival-trip-planner/internal/domain"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestDateRange(t *testing.T) {
	r := domain.DateRange{Start: day("2026-06-21"), End: day("2026-06-24")}

	t.Run("intersects", func(t *testing.T) {
		assert.True(t, r.Intersects(day("2026-06-20"), day("2026-06-22")))
		assert.True(t, r.Intersects(day("2026-06-24"), day("2026-06-30")))
		assert.True(t, r.Intersects(day("2026-06-01"), day("2026-06-21")))
		assert.False(t, r.Intersects(day("2026-06-10"), day("2026-06-20")))
		assert.False(t, r.Intersects(day("2026-06-25"), day("2026-06-30")))
	})

	t.Run("single day range", func(t *testing.T) {
		single := domain.DateRange{Start: day("2026-06-21"), End: day("2026-06-21")}
		assert.True(t, single.Intersects(day("2026-06-21"), day("2026-06-21")))
		assert.False(t, single.Intersects(day("2026-06-22"), day("2026-06-23")))
	})

	t.Run("same month", func(t *testing.T) {
		assert.True(t, r.SameMonth(day("2026-06-01")))
		assert.True(t, r.SameMonth(day("2026-06-30")))
		assert.False(t, r.SameMonth(day("2026-07-01")))
		assert.False(t, r.SameMonth(day("2025-06-15")))

		spansMonths := domain.DateRange{Start: day("2026-06-28"), End: day("2026-07-03")}
		assert.True(t, spansMonths.SameMonth(day("2026-07-15")))
	})
}

func TestPacingMode(t *testing.T) {
	assert.Equal(t, 1.2, domain.PaceRelaxed.DwellFactor())
	assert.Equal(t, 1.0, domain.PaceNormal.DwellFactor())
	assert.Equal(t, 0.8, domain.PaceIntense.DwellFactor())

	assert.True(t, domain.PaceRelaxed.Valid())
	assert.True(t, domain.PaceNormal.Valid())
	assert.True(t, domain.PaceIntense.Valid())
	assert.False(t, domain.PacingMode("frantic").Valid())
	assert.False(t, domain.PacingMode("").Valid())
}

func TestPlan(t *testing.T) {
	req := &domain.RouteRequest{
		Origin:      "Quito",
		Destination: "Otavalo",
		StartDate:   day("2026-06-20"),
		DayCount:    3,
		RadiusKm:    20,
		Pace:        domain.PaceNormal,
	}
	route := &domain.Route{Points: []domain.Point{
		{Lat: -0.1807, Lon: -78.4678},
		{Lat: 0.2343, Lon: -78.2610},
	}}

	t.Run("new plan has one empty itinerary per day", func(t *testing.T) {
		plan := domain.NewPlan("p1", req, route)
		require.Len(t, plan.Days, 3)
		for i, d := range plan.Days {
			assert.Equal(t, i, d.Day)
			assert.Empty(t, d.Stops)
		}
		assert.Equal(t, 0, plan.StopCount())
	})

	t.Run("window end is the last travel day", func(t *testing.T) {
		assert.Equal(t, day("2026-06-22"), req.WindowEnd())
	})

	t.Run("find poi", func(t *testing.T) {
		plan := domain.NewPlan("p1", req, route)
		plan.Days[1].Stops = append(plan.Days[1].Stops, &domain.Stop{
			POI: &domain.PointOfInterest{ID: "mitad"},
		})

		assert.Equal(t, 1, plan.FindPOI("mitad"))
		assert.Equal(t, -1, plan.FindPOI("ghost"))
		assert.Equal(t, 1, plan.StopCount())
	})

	t.Run("record keeps per-day stop order", func(t *testing.T) {
		plan := domain.NewPlan("p1", req, route)
		plan.Days[0].Stops = []*domain.Stop{
			{POI: &domain.PointOfInterest{ID: "b"}},
			{POI: &domain.PointOfInterest{ID: "a"}},
		}
		plan.Days[2].Stops = []*domain.Stop{
			{POI: &domain.PointOfInterest{ID: "c"}},
		}

		record := plan.ToRecord()
		assert.Equal(t, "p1", record.ID)
		assert.Equal(t, [][]string{{"b", "a"}, {}, {"c"}}, record.DayStops)
		assert.Equal(t, req.Origin, record.Request.Origin)
		assert.Len(t, record.Route.Points, 2)
	})
}
