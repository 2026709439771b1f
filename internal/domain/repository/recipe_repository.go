package repository

import "github.com/jhoicas/pasteleria-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para Recipe.
// List devuelve las recetas ordenadas por created_at descendente.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	List() ([]*entity.Recipe, error)
	Update(recipe *entity.Recipe) error
	Delete(id string) error
}
