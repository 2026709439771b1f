package entity

import "time"

// Categorías válidas para Recipe.
const (
	CategoryCookie = "cookie"
	CategoryCake   = "cake"
	CategoryOther  = "other"
)

// ValidCategory indica si c es una categoría de receta conocida.
func ValidCategory(c string) bool {
	switch c {
	case CategoryCookie, CategoryCake, CategoryOther:
		return true
	}
	return false
}

// Ingredient ingrediente de una receta. Amount y Unit son texto libre
// ("2 1/2", "tazas") tal como lo escribe el personal de cocina.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Recipe receta del catálogo. Ingredients e Instructions conservan el orden de inserción.
type Recipe struct {
	ID           string
	Name         string
	Category     string // cookie, cake, other
	Servings     int
	PrepTime     int // minutos
	CookTime     int // minutos
	Ingredients  []Ingredient
	Instructions []string
	Image        string // referencia opcional a la imagen
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
