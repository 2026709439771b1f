package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pasteleria-api/internal/application/dto"
	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/pasteleria-api/internal/domain/repository"
)

// RecipeUseCase reglas de negocio del catálogo de recetas.
type RecipeUseCase struct {
	repo repository.RecipeRepository
}

// NewRecipeUseCase construye el caso de uso con el puerto de persistencia.
func NewRecipeUseCase(repo repository.RecipeRepository) *RecipeUseCase {
	return &RecipeUseCase{repo: repo}
}

// List devuelve el catálogo ordenado por created_at descendente.
func (uc *RecipeUseCase) List() ([]*entity.Recipe, error) {
	return uc.repo.List()
}

// GetByID obtiene una receta por ID. Devuelve (nil, nil) si no existe.
func (uc *RecipeUseCase) GetByID(id string) (*entity.Recipe, error) {
	return uc.repo.GetByID(id)
}

// Create valida y persiste una receta nueva.
func (uc *RecipeUseCase) Create(in dto.CreateRecipeRequest) (*entity.Recipe, error) {
	if in.Name == "" || !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.Servings < 1 || in.PrepTime < 0 || in.CookTime < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	recipe := &entity.Recipe{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		Servings:     in.Servings,
		PrepTime:     in.PrepTime,
		CookTime:     in.CookTime,
		Ingredients:  buildIngredients(in.Ingredients),
		Instructions: in.Instructions,
		Image:        in.Image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update aplica una actualización parcial de campos.
func (uc *RecipeUseCase) Update(id string, in dto.UpdateRecipeRequest) (*entity.Recipe, error) {
	recipe, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		recipe.Name = *in.Name
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, domain.ErrInvalidInput
		}
		recipe.Category = *in.Category
	}
	if in.Servings != nil {
		if *in.Servings < 1 {
			return nil, domain.ErrInvalidInput
		}
		recipe.Servings = *in.Servings
	}
	if in.PrepTime != nil {
		if *in.PrepTime < 0 {
			return nil, domain.ErrInvalidInput
		}
		recipe.PrepTime = *in.PrepTime
	}
	if in.CookTime != nil {
		if *in.CookTime < 0 {
			return nil, domain.ErrInvalidInput
		}
		recipe.CookTime = *in.CookTime
	}
	if in.Ingredients != nil {
		recipe.Ingredients = buildIngredients(*in.Ingredients)
	}
	if in.Instructions != nil {
		recipe.Instructions = *in.Instructions
	}
	if in.Image != nil {
		recipe.Image = *in.Image
	}

	recipe.UpdatedAt = time.Now()
	if err := uc.repo.Update(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete elimina la receta.
func (uc *RecipeUseCase) Delete(id string) error {
	recipe, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func buildIngredients(in []dto.IngredientRequest) []entity.Ingredient {
	out := make([]entity.Ingredient, 0, len(in))
	for _, ing := range in {
		out = append(out, entity.Ingredient{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit})
	}
	return out
}
