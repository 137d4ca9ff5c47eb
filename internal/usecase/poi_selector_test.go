package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/usecase"
)

func selectorFixtures(t *testing.T) (*domain.Corridor, *domain.Route, *domain.RouteRequest) {
	t.Helper()

	route := quitoOtavaloRoute()
	corridor, err := usecase.NewCorridorBuilder(zap.NewNop()).Build(route, 20)
	require.NoError(t, err)

	start, _ := time.Parse("2006-01-02", "2026-06-20")
	req := &domain.RouteRequest{
		Origin:      "Quito",
		Destination: "Otavalo",
		StartDate:   start,
		DayCount:    3,
		RadiusKm:    20,
		Pace:        domain.PaceNormal,
	}
	return corridor, route, req
}

func TestPOISelector_Select(t *testing.T) {
	selector := usecase.NewPOISelector(zap.NewNop())

	t.Run("keeps corridor POIs and drops the rest", func(t *testing.T) {
		corridor, route, req := selectorFixtures(t)

		catalog := []*domain.PointOfInterest{
			testPOI("mitad", "Mitad del Mundo", -0.0022, -78.4558, nil),
			testPOI("mercado", "Mercado de Otavalo", 0.2333, -78.2617, nil),
			testPOI("malecon", "Malecon 2000", -2.1935, -79.8807, nil),
		}

		ranked := selector.Select(catalog, corridor, route, req)
		require.Len(t, ranked, 2)
		for _, r := range ranked {
			assert.NotEqual(t, "malecon", r.POI.ID)
			assert.True(t, corridor.Contains(r.POI.Location()))
		}
	})

	t.Run("ranked by distance to the driving path ascending", func(t *testing.T) {
		corridor, route, req := selectorFixtures(t)

		catalog := []*domain.PointOfInterest{
			testPOI("far", "Laguna de Mojanda", 0.1333, -78.2667, nil),
			testPOI("near", "Cayambe Centro", 0.0430, -78.1440, nil),
		}

		ranked := selector.Select(catalog, corridor, route, req)
		require.Len(t, ranked, 2)
		assert.Equal(t, "near", ranked[0].POI.ID)
		assert.Equal(t, "far", ranked[1].POI.ID)
		assert.LessOrEqual(t, ranked[0].ScoreKm, ranked[1].ScoreKm)
	})

	t.Run("exact window tier wins when it has matches", func(t *testing.T) {
		corridor, route, req := selectorFixtures(t)

		catalog := []*domain.PointOfInterest{
			testPOI("inti", "Inti Raymi", 0.2343, -78.2610, dateRange("2026-06-21", "2026-06-24")),
			testPOI("later", "Fiesta del Yamor", 0.2343, -78.2610, dateRange("2026-09-01", "2026-09-08")),
		}

		ranked := selector.Select(catalog, corridor, route, req)
		require.Len(t, ranked, 1)
		assert.Equal(t, "inti", ranked[0].POI.ID)
	})

	t.Run("relaxes to same month when the window is empty", func(t *testing.T) {
		corridor, route, req := selectorFixtures(t)

		catalog := []*domain.PointOfInterest{
			// Ends before the June 20-22 window but inside June.
			testPOI("early", "Feria de Junio", 0.2343, -78.2610, dateRange("2026-06-05", "2026-06-07")),
			testPOI("sept", "Fiesta del Yamor", 0.2343, -78.2610, dateRange("2026-09-01", "2026-09-08")),
		}

		ranked := selector.Select(catalog, corridor, route, req)
		require.Len(t, ranked, 1)
		assert.Equal(t, "early", ranked[0].POI.ID)
	})

	t.Run("relaxes to no date filter as the last resort", func(t *testing.T) {
		corridor, route, req := selectorFixtures(t)

		catalog := []*domain.PointOfInterest{
			testPOI("sept", "Fiesta del Yamor", 0.2343, -78.2610, dateRange("2026-09-01", "2026-09-08")),
		}

		ranked := selector.Select(catalog, corridor, route, req)
		require.Len(t, ranked, 1)
		assert.Equal(t, "sept", ranked[0].POI.ID)
	})

	t.Run("undated POIs pass every tier", func(t *testing.T) {
		corridor, route, req := selectorFixtures(t)

		catalog := []*domain.PointOfInterest{
			testPOI("inti", "Inti Raymi", 0.2343, -78.2610, dateRange("2026-06-21", "2026-06-24")),
			testPOI("mitad", "Mitad del Mundo", -0.0022, -78.4558, nil),
		}

		ranked := selector.Select(catalog, corridor, route, req)
		assert.Len(t, ranked, 2)
	})

	t.Run("empty catalog yields empty ranking", func(t *testing.T) {
		corridor, route, req := selectorFixtures(t)

		ranked := selector.Select(nil, corridor, route, req)
		assert.Empty(t, ranked)
	})
}
