package dto

import (
	"time"

	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
)

// IngredientRequest ingrediente entrante (amount y unit son texto libre).
type IngredientRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// CreateRecipeRequest alta de receta.
type CreateRecipeRequest struct {
	Name         string              `json:"name"`
	Category     string              `json:"category"` // cookie | cake | other
	Servings     int                 `json:"servings"`
	PrepTime     int                 `json:"prep_time"`
	CookTime     int                 `json:"cook_time"`
	Ingredients  []IngredientRequest `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	Image        string              `json:"image"`
}

// UpdateRecipeRequest actualización parcial; nil significa "sin cambio".
type UpdateRecipeRequest struct {
	Name         *string              `json:"name"`
	Category     *string              `json:"category"`
	Servings     *int                 `json:"servings"`
	PrepTime     *int                 `json:"prep_time"`
	CookTime     *int                 `json:"cook_time"`
	Ingredients  *[]IngredientRequest `json:"ingredients"`
	Instructions *[]string            `json:"instructions"`
	Image        *string              `json:"image"`
}

// RecipeResponse receta completa.
type RecipeResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	Servings     int                 `json:"servings"`
	PrepTime     int                 `json:"prep_time"`
	CookTime     int                 `json:"cook_time"`
	Ingredients  []entity.Ingredient `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	Image        string              `json:"image,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewRecipeResponse mapea la entidad a la respuesta HTTP.
func NewRecipeResponse(r *entity.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.Category,
		Servings:     r.Servings,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Image:        r.Image,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// NewRecipeResponses mapea una lista de recetas.
func NewRecipeResponses(recipes []*entity.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, NewRecipeResponse(r))
	}
	return out
}
