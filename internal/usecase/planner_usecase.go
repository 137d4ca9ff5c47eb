package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/domain/repository"
	"github.com/festival-trip-planner/internal/pkg/errors"
	"github.com/festival-trip-planner/internal/pkg/utils"
	"github.com/festival-trip-planner/internal/usecase/dto"
)

// planSession holds the single live plan of one user session. All access
// goes through its mutex; the generation counter discards results of
// superseded pipeline runs.
type planSession struct {
	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	plan       *domain.Plan
	corridor   *domain.Corridor
}

// beginGeneration cancels any in-flight pipeline run and opens a new one.
func (s *planSession) beginGeneration(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.generation++
	return runCtx, s.generation
}

// commit installs the pipeline result unless a newer run has started since.
func (s *planSession) commit(generation uint64, plan *domain.Plan, corridor *domain.Corridor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}
	s.plan = plan
	s.corridor = corridor
	s.cancel = nil
	return true
}

// PlannerUseCase runs the trip-corridor pipeline and owns all live plans:
// resolve endpoints, trace the driving route, buffer it into a corridor,
// select and rank catalog POIs, then let the scheduler place them into days.
type PlannerUseCase struct {
	resolver        *GeoResolver
	routingRepo     repository.RoutingRepository
	corridorBuilder *CorridorBuilder
	selector        *POISelector
	scheduler       *DayScheduler
	poiRepo         repository.POIRepository
	planRepo        repository.PlanRepository
	streamRepo      repository.StreamRepository
	cacheRepo       repository.CacheRepository
	routeCacheTTL   time.Duration
	defaultRadiusKm float64
	logger          *zap.Logger

	mu       sync.Mutex
	sessions map[string]*planSession
}

func NewPlannerUseCase(
	resolver *GeoResolver,
	routingRepo repository.RoutingRepository,
	corridorBuilder *CorridorBuilder,
	selector *POISelector,
	scheduler *DayScheduler,
	poiRepo repository.POIRepository,
	planRepo repository.PlanRepository,
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	routeCacheTTL time.Duration,
	defaultRadiusKm float64,
	logger *zap.Logger,
) *PlannerUseCase {
	return &PlannerUseCase{
		resolver:        resolver,
		routingRepo:     routingRepo,
		corridorBuilder: corridorBuilder,
		selector:        selector,
		scheduler:       scheduler,
		poiRepo:         poiRepo,
		planRepo:        planRepo,
		streamRepo:      streamRepo,
		cacheRepo:       cacheRepo,
		routeCacheTTL:   routeCacheTTL,
		defaultRadiusKm: defaultRadiusKm,
		logger:          logger,
		sessions:        make(map[string]*planSession),
	}
}

func (uc *PlannerUseCase) session(sessionID string) *planSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[sessionID]
	if !ok {
		s = &planSession{}
		uc.sessions[sessionID] = s
	}
	return s
}

// GenerateRoute runs the sequential planning pipeline for one session. If the
// user re-triggers generation before the previous run completes, the previous
// run is cancelled and its result discarded, never merged.
func (uc *PlannerUseCase) GenerateRoute(
	ctx context.Context,
	sessionID string,
	req dto.GenerateRouteRequest,
) (*dto.GenerateRouteResponse, error) {
	request, err := uc.normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	session := uc.session(sessionID)
	runCtx, generation := session.beginGeneration(ctx)

	origin, err := uc.resolver.Resolve(runCtx, request.Origin)
	if err != nil {
		return nil, errors.ErrPlaceNotFound.WithDetails(map[string]interface{}{
			"query": request.Origin,
		})
	}

	destination, err := uc.resolver.Resolve(runCtx, request.Destination)
	if err != nil {
		return nil, errors.ErrPlaceNotFound.WithDetails(map[string]interface{}{
			"query": request.Destination,
		})
	}

	route, err := uc.computeRoute(runCtx, *origin, *destination)
	if err != nil {
		uc.logger.Warn("Routing provider unavailable",
			zap.String("origin", request.Origin),
			zap.String("destination", request.Destination),
			zap.Error(err))
		return nil, errors.ErrRouteUnavailable
	}

	corridor, err := uc.corridorBuilder.Build(route, request.RadiusKm)
	if err != nil {
		return nil, err
	}

	catalog, err := uc.poiRepo.ListAll(runCtx)
	if err != nil {
		uc.logger.Error("Failed to load POI catalog", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	ranked := uc.selector.Select(catalog, corridor, route, request)

	if runCtx.Err() != nil {
		return nil, errors.ErrGenerationCancelled
	}

	plan := domain.NewPlan(uuid.NewString(), request, route)
	if !session.commit(generation, plan, corridor) {
		return nil, errors.ErrGenerationCancelled
	}

	uc.logger.Info("Route generated",
		zap.String("session", sessionID),
		zap.String("plan_id", plan.ID),
		zap.Int("route_points", len(route.Points)),
		zap.Int("pois", len(ranked)))

	return &dto.GenerateRouteResponse{
		Plan:           plan,
		Corridor:       geojson.NewGeometry(corridor.Geometry),
		POIs:           ranked,
		NoNearbyEvents: len(ranked) == 0,
	}, nil
}

func (uc *PlannerUseCase) normalizeRequest(req dto.GenerateRouteRequest) (*domain.RouteRequest, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"start_date": req.StartDate,
		})
	}

	if req.DayCount < 1 {
		return nil, errors.ErrInvalidDayCount
	}

	radius := req.RadiusKm
	if radius == 0 {
		radius = uc.defaultRadiusKm
	}
	if !utils.ValidateRadius(radius) {
		return nil, errors.ErrInvalidRadius
	}

	pace := domain.PacingMode(req.Pace)
	if pace == "" {
		pace = domain.PaceNormal
	}
	if !pace.Valid() {
		return nil, errors.ErrInvalidPacingMode
	}

	return &domain.RouteRequest{
		Origin:      req.Origin,
		Destination: req.Destination,
		StartDate:   startDate,
		DayCount:    req.DayCount,
		RadiusKm:    radius,
		Pace:        pace,
	}, nil
}

// computeRoute fronts the single-attempt routing provider with the cache, so
// a re-click after a transient failure does not burn provider quota when the
// same leg was already traced.
func (uc *PlannerUseCase) computeRoute(ctx context.Context, origin, destination domain.Point) (*domain.Route, error) {
	key := fmt.Sprintf("route:%.5f,%.5f|%.5f,%.5f",
		origin.Lat, origin.Lon, destination.Lat, destination.Lon)

	if uc.cacheRepo != nil {
		if data, err := uc.cacheRepo.Get(ctx, key); err == nil && data != nil {
			var route domain.Route
			if err := json.Unmarshal(data, &route); err == nil {
				return &route, nil
			}
		}
	}

	route, err := uc.routingRepo.ComputeRoute(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	if uc.cacheRepo != nil {
		if data, err := json.Marshal(route); err == nil {
			if err := uc.cacheRepo.Set(ctx, key, data, uc.routeCacheTTL); err != nil {
				uc.logger.Warn("Failed to cache route", zap.Error(err))
			}
		}
	}

	return route, nil
}

// AddStop places a catalog POI into the given day of the session's plan.
func (uc *PlannerUseCase) AddStop(ctx context.Context, sessionID, poiID string, day int) (*domain.Plan, error) {
	pois, err := uc.poiRepo.GetByIDs(ctx, []string{poiID})
	if err != nil {
		uc.logger.Error("Failed to look up POI", zap.String("poi_id", poiID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	poi, ok := pois[poiID]
	if !ok {
		return nil, errors.ErrPOINotFound
	}

	session := uc.session(sessionID)
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.plan == nil {
		return nil, errors.ErrNoActivePlan
	}
	if err := uc.scheduler.AddStop(session.plan, poi, day); err != nil {
		return nil, err
	}
	session.plan.UpdatedAt = time.Now().UTC()
	return session.plan, nil
}

// RemoveStop removes a POI from whichever day of the session's plan holds it.
func (uc *PlannerUseCase) RemoveStop(sessionID, poiID string) (*domain.Plan, error) {
	session := uc.session(sessionID)
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.plan == nil {
		return nil, errors.ErrNoActivePlan
	}
	if err := uc.scheduler.RemoveStop(session.plan, poiID); err != nil {
		return nil, err
	}
	session.plan.UpdatedAt = time.Now().UTC()
	return session.plan, nil
}

// GetPlan returns the session's live plan.
func (uc *PlannerUseCase) GetPlan(sessionID string) (*domain.Plan, error) {
	session := uc.session(sessionID)
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.plan == nil {
		return nil, errors.ErrNoActivePlan
	}
	return session.plan, nil
}

// SavePlan persists the session's plan into the user's single slot and
// notifies the export stream. A stream failure does not fail the save.
func (uc *PlannerUseCase) SavePlan(ctx context.Context, sessionID, userID string) error {
	session := uc.session(sessionID)
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.plan == nil {
		return errors.ErrNoActivePlan
	}

	record := session.plan.ToRecord()
	if err := uc.planRepo.Save(ctx, userID, record); err != nil {
		uc.logger.Error("Failed to save plan", zap.String("user_id", userID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if uc.streamRepo != nil {
		event := domain.PlanSavedEvent{
			UserID:  userID,
			PlanID:  record.ID,
			SavedAt: time.Now().UTC(),
		}
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamPlanSaved, event); err != nil {
			uc.logger.Warn("Failed to publish plan saved event", zap.Error(err))
		}
	}

	uc.logger.Info("Plan saved",
		zap.String("user_id", userID),
		zap.String("plan_id", record.ID),
		zap.Int("stops", session.plan.StopCount()))
	return nil
}

// LoadPlan restores the user's saved plan into the session. POI details are
// re-joined from the catalog; the stored stop order is kept as-is and only
// schedule times are refreshed.
func (uc *PlannerUseCase) LoadPlan(ctx context.Context, sessionID, userID string) (*domain.Plan, error) {
	record, err := uc.planRepo.Load(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to load plan", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if record == nil {
		return nil, errors.ErrPlanNotFound
	}

	plan, err := uc.recordToPlan(ctx, record)
	if err != nil {
		return nil, err
	}

	session := uc.session(sessionID)
	session.mu.Lock()
	defer session.mu.Unlock()
	session.plan = plan
	session.corridor = nil

	return plan, nil
}

func (uc *PlannerUseCase) recordToPlan(ctx context.Context, record *domain.PlanRecord) (*domain.Plan, error) {
	ids := make([]string, 0)
	for _, day := range record.DayStops {
		ids = append(ids, day...)
	}

	pois, err := uc.poiRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("Failed to re-join plan POIs", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	request := record.Request
	route := record.Route
	plan := domain.NewPlan(record.ID, &request, &route)
	plan.UpdatedAt = record.UpdatedAt

	for day, stopIDs := range record.DayStops {
		if day >= len(plan.Days) {
			break
		}
		for _, id := range stopIDs {
			poi, ok := pois[id]
			if !ok {
				// The catalog entry disappeared since the plan was saved.
				uc.logger.Warn("Dropping stop missing from catalog", zap.String("poi_id", id))
				continue
			}
			plan.Days[day].Stops = append(plan.Days[day].Stops, &domain.Stop{POI: poi})
		}
		uc.scheduler.Reschedule(plan, day)
	}

	return plan, nil
}

// Catalog lists the full read-only POI catalog.
func (uc *PlannerUseCase) Catalog(ctx context.Context) (*dto.CatalogResponse, error) {
	pois, err := uc.poiRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to list catalog", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &dto.CatalogResponse{POIs: pois, Total: len(pois)}, nil
}
