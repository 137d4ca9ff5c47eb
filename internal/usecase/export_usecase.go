package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/domain/repository"
	"github.com/festival-trip-planner/internal/pkg/errors"
)

// ExportUseCase prepares the printable itinerary for the external document
// formatter: it re-joins a saved plan with the catalog, computes the final
// schedule and parks the document in the cache for pickup.
type ExportUseCase struct {
	planRepo  repository.PlanRepository
	poiRepo   repository.POIRepository
	cacheRepo repository.CacheRepository
	estimator *TimeEstimator
	exportTTL time.Duration
	logger    *zap.Logger
}

func NewExportUseCase(
	planRepo repository.PlanRepository,
	poiRepo repository.POIRepository,
	cacheRepo repository.CacheRepository,
	estimator *TimeEstimator,
	exportTTL time.Duration,
	logger *zap.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		planRepo:  planRepo,
		poiRepo:   poiRepo,
		cacheRepo: cacheRepo,
		estimator: estimator,
		exportTTL: exportTTL,
		logger:    logger,
	}
}

// ExportKey is where the prepared document waits for the formatter.
func ExportKey(userID string) string {
	return "export:itinerary:" + userID
}

// PrepareItinerary builds and stores the itinerary document for a user's
// saved plan.
func (uc *ExportUseCase) PrepareItinerary(ctx context.Context, userID string) (*domain.ItineraryDocument, error) {
	record, err := uc.planRepo.Load(ctx, userID)
	if err != nil {
		return nil, errors.ErrDatabaseError
	}
	if record == nil {
		return nil, errors.ErrPlanNotFound
	}

	ids := make([]string, 0)
	for _, day := range record.DayStops {
		ids = append(ids, day...)
	}
	pois, err := uc.poiRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.ErrDatabaseError
	}

	doc := &domain.ItineraryDocument{
		PlanID:      record.ID,
		UserID:      userID,
		Origin:      record.Request.Origin,
		Destination: record.Request.Destination,
		StartDate:   record.Request.StartDate,
		Pace:        record.Request.Pace,
		Days:        make([]domain.ItineraryDocDay, 0, len(record.DayStops)),
		GeneratedAt: time.Now().UTC(),
	}

	for dayIndex, stopIDs := range record.DayStops {
		itinerary := &domain.DayItinerary{Day: dayIndex, Stops: []*domain.Stop{}}
		for _, id := range stopIDs {
			if poi, ok := pois[id]; ok {
				itinerary.Stops = append(itinerary.Stops, &domain.Stop{POI: poi})
			}
		}

		date := record.Request.StartDate.AddDate(0, 0, dayIndex)
		uc.estimator.Estimate(itinerary, date, record.Request.Pace)

		doc.Days = append(doc.Days, domain.ItineraryDocDay{
			Day:     dayIndex,
			Date:    date,
			Stops:   itinerary.Stops,
			Summary: itinerary.Summary,
		})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		uc.logger.Error("Failed to marshal itinerary document", zap.Error(err))
		return nil, errors.ErrInternalServer
	}
	if err := uc.cacheRepo.Set(ctx, ExportKey(userID), data, uc.exportTTL); err != nil {
		return nil, errors.ErrCacheError
	}

	uc.logger.Info("Itinerary document prepared",
		zap.String("user_id", userID),
		zap.String("plan_id", record.ID),
		zap.Int("days", len(doc.Days)))

	return doc, nil
}
