package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pasteleria-api/internal/application/dto"
	"github.com/jhoicas/pasteleria-api/internal/application/usecase"
	"github.com/jhoicas/pasteleria-api/internal/domain"
)

// RecipeHandler maneja las peticiones HTTP del catálogo de recetas (protegido).
type RecipeHandler struct {
	uc *usecase.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *usecase.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// List GET /api/recipes
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	recipes, err := h.uc.List()
	if err != nil {
		return recipeError(c, err)
	}
	return c.JSON(dto.NewRecipeResponses(recipes))
}

// GetByID GET /api/recipes/:id
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	recipe, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return recipeError(c, err)
	}
	if recipe == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "receta no encontrada"})
	}
	return c.JSON(dto.NewRecipeResponse(recipe))
}

// Create POST /api/recipes
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	recipe, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, category válida y servings >= 1 son requeridos"})
		}
		return recipeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRecipeResponse(recipe))
}

// Update PUT /api/recipes/:id
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	recipe, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campos inválidos en la actualización"})
		}
		return recipeError(c, err)
	}
	return c.JSON(dto.NewRecipeResponse(recipe))
}

// Delete DELETE /api/recipes/:id
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return recipeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func recipeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "receta no encontrada"})
	}
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén no disponible"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
