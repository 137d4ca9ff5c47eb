package usecase

import (
	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/pkg/errors"
)

// DayScheduler is the sole writer of a plan's day itineraries. Every mutation
// re-runs sequencing and estimation for the affected day only; stop order is
// never edited by hand.
type DayScheduler struct {
	optimizer *SequenceOptimizer
	estimator *TimeEstimator
	logger    *zap.Logger
}

func NewDayScheduler(
	optimizer *SequenceOptimizer,
	estimator *TimeEstimator,
	logger *zap.Logger,
) *DayScheduler {
	return &DayScheduler{
		optimizer: optimizer,
		estimator: estimator,
		logger:    logger,
	}
}

// AddStop appends the POI to the given day and reschedules it. Adding a POI
// that already sits in any day of the plan is a silent no-op, which keeps the
// global uniqueness invariant and makes the operation idempotent.
func (s *DayScheduler) AddStop(plan *domain.Plan, poi *domain.PointOfInterest, day int) error {
	if day < 0 || day >= len(plan.Days) {
		return errors.ErrInvalidDayIndex
	}

	if existing := plan.FindPOI(poi.ID); existing >= 0 {
		s.logger.Debug("POI already placed, ignoring add",
			zap.String("poi_id", poi.ID),
			zap.Int("day", existing))
		return nil
	}

	itinerary := plan.Days[day]
	itinerary.Stops = append(itinerary.Stops, &domain.Stop{POI: poi})

	s.Recompute(plan, day)
	return nil
}

// RemoveStop removes the POI from whichever day contains it and reschedules
// that day. Removing an absent POI is a no-op.
func (s *DayScheduler) RemoveStop(plan *domain.Plan, poiID string) error {
	day := plan.FindPOI(poiID)
	if day < 0 {
		s.logger.Debug("POI not in plan, ignoring remove", zap.String("poi_id", poiID))
		return nil
	}

	itinerary := plan.Days[day]
	stops := make([]*domain.Stop, 0, len(itinerary.Stops)-1)
	for _, stop := range itinerary.Stops {
		if stop.POI.ID != poiID {
			stops = append(stops, stop)
		}
	}
	itinerary.Stops = stops

	s.Recompute(plan, day)
	return nil
}

// Recompute re-runs the optimizer and the estimator for one day.
func (s *DayScheduler) Recompute(plan *domain.Plan, day int) {
	itinerary := plan.Days[day]
	itinerary.Stops = s.optimizer.Order(itinerary.Stops)

	date := plan.Request.StartDate.AddDate(0, 0, day)
	s.estimator.Estimate(itinerary, date, plan.Request.Pace)
}

// Reschedule refreshes schedule fields for one day without reordering stops.
// Used when restoring a persisted plan, where the stored order is the source
// of truth.
func (s *DayScheduler) Reschedule(plan *domain.Plan, day int) {
	date := plan.Request.StartDate.AddDate(0, 0, day)
	s.estimator.Estimate(plan.Days[day], date, plan.Request.Pace)
}
