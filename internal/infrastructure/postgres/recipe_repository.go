package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/pasteleria-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository. Ingredientes e instrucciones
// se guardan como JSONB para conservar su orden.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste una receta nueva.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}
	instructions, err := json.Marshal(recipe.Instructions)
	if err != nil {
		return fmt.Errorf("marshal instructions: %w", err)
	}
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		INSERT INTO recipes (id, name, category, servings, prep_time, cook_time, ingredients, instructions, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		recipe.ID, recipe.Name, recipe.Category, recipe.Servings, recipe.PrepTime,
		recipe.CookTime, ingredients, instructions, recipe.Image, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("insert recipe", err)
	}
	return nil
}

// GetByID obtiene una receta por ID. Devuelve (nil, nil) si no existe.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		SELECT id, name, category, servings, prep_time, cook_time, ingredients, instructions, image, created_at, updated_at
		FROM recipes WHERE id = $1`
	recipe, err := scanRecipe(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get recipe", err)
	}
	return recipe, nil
}

// List devuelve las recetas ordenadas por created_at descendente.
func (r *RecipeRepo) List() ([]*entity.Recipe, error) {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		SELECT id, name, category, servings, prep_time, cook_time, ingredients, instructions, image, created_at, updated_at
		FROM recipes ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr("list recipes", err)
	}
	defer rows.Close()

	var list []*entity.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, wrapStoreErr("scan recipe", err)
		}
		list = append(list, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list recipes", err)
	}
	return list, nil
}

// Update actualiza todos los campos mutables de la receta.
func (r *RecipeRepo) Update(recipe *entity.Recipe) error {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}
	instructions, err := json.Marshal(recipe.Instructions)
	if err != nil {
		return fmt.Errorf("marshal instructions: %w", err)
	}
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		UPDATE recipes
		SET name = $2, category = $3, servings = $4, prep_time = $5, cook_time = $6,
		    ingredients = $7, instructions = $8, image = $9, updated_at = $10
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		recipe.ID, recipe.Name, recipe.Category, recipe.Servings, recipe.PrepTime,
		recipe.CookTime, ingredients, instructions, recipe.Image, recipe.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("update recipe", err)
	}
	return nil
}

// Delete elimina una receta por ID.
func (r *RecipeRepo) Delete(id string) error {
	ctx, cancel := storeCtx()
	defer cancel()
	if _, err := r.q.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id); err != nil {
		return wrapStoreErr("delete recipe", err)
	}
	return nil
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var rec entity.Recipe
	var ingredients, instructions []byte
	err := row.Scan(&rec.ID, &rec.Name, &rec.Category, &rec.Servings, &rec.PrepTime,
		&rec.CookTime, &ingredients, &instructions, &rec.Image, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &rec.Ingredients); err != nil {
			return nil, fmt.Errorf("unmarshal ingredients: %w", err)
		}
	}
	if len(instructions) > 0 {
		if err := json.Unmarshal(instructions, &rec.Instructions); err != nil {
			return nil, fmt.Errorf("unmarshal instructions: %w", err)
		}
	}
	return &rec, nil
}
