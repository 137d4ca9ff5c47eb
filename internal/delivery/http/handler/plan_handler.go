package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/pkg/errors"
	"github.com/festival-trip-planner/internal/pkg/utils"
	"github.com/festival-trip-planner/internal/pkg/validator"
	"github.com/festival-trip-planner/internal/usecase"
	"github.com/festival-trip-planner/internal/usecase/dto"
)

// PlanHandler exposes the trip-corridor planner: route generation, stop
// placement and plan persistence.
type PlanHandler struct {
	plannerUC *usecase.PlannerUseCase
	logger    *zap.Logger
}

func NewPlanHandler(plannerUC *usecase.PlannerUseCase, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		plannerUC: plannerUC,
		logger:    logger,
	}
}

// sessionID identifies the caller's planning session. Exactly one plan is
// live per session.
func sessionID(c *fiber.Ctx) string {
	if id := c.Get("X-Session-ID"); id != "" {
		return id
	}
	return "default"
}

// GenerateRoute godoc
// @Summary Generate the trip corridor and candidate stops
// @Description Resolves origin and destination, traces the driving route, buffers it into a corridor of the requested radius and returns catalog POIs inside it ranked by distance to the route. Re-triggering cancels any generation still in flight for the session.
// @Tags Plan
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Planning session id"
// @Param request body dto.GenerateRouteRequest true "Trip parameters"
// @Success 200 {object} utils.SuccessResponse{data=dto.GenerateRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/plan/route [post]
func (h *PlanHandler) GenerateRoute(c *fiber.Ctx) error {
	var req dto.GenerateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	resp, err := h.plannerUC.GenerateRoute(c.Context(), sessionID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	meta := &utils.Meta{Total: len(resp.POIs)}
	if resp.NoNearbyEvents {
		meta.Message = "no nearby events found"
	}
	return utils.SendSuccess(c, resp, meta)
}

// GetPlan godoc
// @Summary Current in-session plan
// @Tags Plan
// @Produce json
// @Param X-Session-ID header string false "Planning session id"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlanResponse}
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/plan [get]
func (h *PlanHandler) GetPlan(c *fiber.Ctx) error {
	plan, err := h.plannerUC.GetPlan(sessionID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.PlanResponse{Plan: plan}, nil)
}

// AddStop godoc
// @Summary Add a POI to a day of the itinerary
// @Description Appends the POI to the day's stop list, then re-runs sequencing and time estimation for that day. Adding a POI already placed anywhere in the plan is a no-op.
// @Tags Plan
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Planning session id"
// @Param day path int true "0-based day index"
// @Param request body dto.AddStopRequest true "POI to place"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlanResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/plan/days/{day}/stops [post]
func (h *PlanHandler) AddStop(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidDayIndex)
	}

	var req dto.AddStopRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	plan, err := h.plannerUC.AddStop(c.Context(), sessionID(c), req.POIID, day)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.PlanResponse{Plan: plan}, nil)
}

// RemoveStop godoc
// @Summary Remove a POI from the itinerary
// @Description Removes the POI from whichever day holds it and re-runs sequencing and estimation for that day.
// @Tags Plan
// @Produce json
// @Param X-Session-ID header string false "Planning session id"
// @Param poi_id path string true "POI id"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlanResponse}
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/plan/stops/{poi_id} [delete]
func (h *PlanHandler) RemoveStop(c *fiber.Ctx) error {
	plan, err := h.plannerUC.RemoveStop(sessionID(c), c.Params("poi_id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.PlanResponse{Plan: plan}, nil)
}

// SavePlan godoc
// @Summary Persist the session's plan
// @Description Writes the plan into the user's single saved-plan slot (last write wins) and notifies the itinerary export stream.
// @Tags Plan
// @Produce json
// @Param X-Session-ID header string false "Planning session id"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/plan/save [post]
func (h *PlanHandler) SavePlan(c *fiber.Ctx) error {
	if err := h.plannerUC.SavePlan(c.Context(), sessionID(c), sessionID(c)); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"saved": true}, nil)
}

// LoadPlan godoc
// @Summary Restore the saved plan into the session
// @Description Loads the user's saved plan, re-joins POI details from the catalog and refreshes schedule times without reordering stops.
// @Tags Plan
// @Produce json
// @Param X-Session-ID header string false "Planning session id"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlanResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/plan/load [post]
func (h *PlanHandler) LoadPlan(c *fiber.Ctx) error {
	plan, err := h.plannerUC.LoadPlan(c.Context(), sessionID(c), sessionID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.PlanResponse{Plan: plan}, nil)
}
