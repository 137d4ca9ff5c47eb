package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/festival-trip-planner/internal/domain/repository"
	"github.com/festival-trip-planner/internal/repository/postgres"
	"github.com/festival-trip-planner/internal/repository/postgres/testhelpers"
)

// POIRepositorySuite tests the POI repository with a real database
type POIRepositorySuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.POIRepository
	ctx    context.Context
}

func (s *POIRepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")

	s.repo = postgres.NewPOIRepository(
		postgres.NewDBForTest(s.testDB.DB, s.testDB.Logger),
	)
}

func (s *POIRepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *POIRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))

	_, err := s.testDB.DB.Exec(`
		INSERT INTO pois (id, name, lat, lon, event_start, event_end, visit_minutes, tags) VALUES
		('mitad', 'Mitad del Mundo', -0.0022, -78.4558, NULL, NULL, 90, '{landmark}'),
		('inti', 'Inti Raymi', 0.2343, -78.2610, '2026-06-21', '2026-06-24', 120, '{festival,music}'),
		('yamor', 'Fiesta del Yamor', 0.2343, -78.2610, '2026-09-01', NULL, 60, '{festival}')
	`)
	s.Require().NoError(err)
}

func (s *POIRepositorySuite) TestListAll() {
	pois, err := s.repo.ListAll(s.ctx)
	s.NoError(err)
	s.Len(pois, 3)

	// Ordered by id.
	s.Equal("inti", pois[0].ID)
	s.Equal("mitad", pois[1].ID)
	s.Equal("yamor", pois[2].ID)

	s.Equal("Mitad del Mundo", pois[1].Name)
	s.Equal(-0.0022, pois[1].Lat)
	s.Equal(-78.4558, pois[1].Lon)
	s.Equal(90, pois[1].VisitMinutes)
	s.Nil(pois[1].Dates)
	s.Equal([]string{"landmark"}, []string(pois[1].Tags))
}

func (s *POIRepositorySuite) TestListAll_DateRanges() {
	pois, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)

	inti := pois[0]
	s.Require().NotNil(inti.Dates)
	s.Equal(time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC), inti.Dates.Start)
	s.Equal(time.Date(2026, 6, 24, 0, 0, 0, 0, time.UTC), inti.Dates.End)

	// A start date with no end reads as a single-day event.
	yamor := pois[2]
	s.Require().NotNil(yamor.Dates)
	s.Equal(yamor.Dates.Start, yamor.Dates.End)
}

func (s *POIRepositorySuite) TestGetByIDs() {
	pois, err := s.repo.GetByIDs(s.ctx, []string{"mitad", "inti"})
	s.NoError(err)
	s.Len(pois, 2)
	s.Equal("Mitad del Mundo", pois["mitad"].Name)
	s.Equal("Inti Raymi", pois["inti"].Name)
}

func (s *POIRepositorySuite) TestGetByIDs_MissingIdsAbsent() {
	pois, err := s.repo.GetByIDs(s.ctx, []string{"mitad", "ghost"})
	s.NoError(err)
	s.Len(pois, 1)
	s.Contains(pois, "mitad")
	s.NotContains(pois, "ghost")
}

func (s *POIRepositorySuite) TestGetByIDs_Empty() {
	pois, err := s.repo.GetByIDs(s.ctx, nil)
	s.NoError(err)
	s.Empty(pois)
}

func TestPOIRepositorySuite(t *testing.T) {
	suite.Run(t, new(POIRepositorySuite))
}
