package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pasteleria-api/internal/application/dto"
	"github.com/jhoicas/pasteleria-api/internal/application/usecase"
	"github.com/jhoicas/pasteleria-api/internal/domain"
)

// ProductionHandler expone la vista de producción agregada por día.
type ProductionHandler struct {
	uc *usecase.OrderUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *usecase.OrderUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Plan godoc
// @Summary      Plan de producción de los próximos días
// @Tags         production
// @Produce      json
// @Param        days  query  int  false  "horizonte: 2 (default), 30 o 60"
// @Success      200   {array}   production.DayPlan
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production [get]
func (h *ProductionHandler) Plan(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "2"))
	if err != nil || (days != 2 && days != 30 && days != 60) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "days debe ser 2, 30 o 60"})
	}
	plan, err := h.uc.ProductionPlan(days, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén no disponible"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(plan)
}
