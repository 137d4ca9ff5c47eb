package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/pkg/utils"
	"github.com/festival-trip-planner/internal/usecase"
)

// POIHandler serves the read-only festival catalog.
type POIHandler struct {
	plannerUC *usecase.PlannerUseCase
	logger    *zap.Logger
}

func NewPOIHandler(plannerUC *usecase.PlannerUseCase, logger *zap.Logger) *POIHandler {
	return &POIHandler{
		plannerUC: plannerUC,
		logger:    logger,
	}
}

// GetCatalog godoc
// @Summary List the festival catalog
// @Tags POI
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CatalogResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/pois [get]
func (h *POIHandler) GetCatalog(c *fiber.Ctx) error {
	resp, err := h.plannerUC.Catalog(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}
