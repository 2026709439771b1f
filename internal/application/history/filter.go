package history

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
)

// Mode filtro de la vista de historial. Exactamente uno activo a la vez.
type Mode string

const (
	ModeAll       Mode = "all"
	ModeCompleted Mode = "completed"
	ModeThisWeek  Mode = "this-week"  // createdAt >= reference - 7*24h (inclusivo)
	ModeThisMonth Mode = "this-month" // createdAt >= reference - 30*24h (inclusivo)
)

// ParseMode valida el valor recibido por query param. Vacío equivale a "all".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeCompleted, ModeThisWeek, ModeThisMonth:
		return Mode(s), nil
	}
	return "", domain.ErrInvalidInput
}

// Filter produce la vista de historial: búsqueda de texto libre sobre el nombre
// del cliente o de cualquier item, intersectada con el filtro de modo, y
// ordenada por fecha de creación descendente (empates conservan el orden de
// entrada). Función pura: no modifica la lista recibida.
func Filter(orders []*entity.Order, query string, mode Mode, reference time.Time) []*entity.Order {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]*entity.Order, 0, len(orders))
	for _, o := range orders {
		if q != "" && !matchesQuery(o, q) {
			continue
		}
		if !matchesMode(o, mode, reference) {
			continue
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func matchesQuery(o *entity.Order, q string) bool {
	if strings.Contains(strings.ToLower(o.CustomerName), q) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			return true
		}
	}
	return false
}

func matchesMode(o *entity.Order, mode Mode, reference time.Time) bool {
	switch mode {
	case ModeCompleted:
		return o.Status == entity.StatusCompleted
	case ModeThisWeek:
		return !o.CreatedAt.Before(reference.Add(-7 * 24 * time.Hour))
	case ModeThisMonth:
		return !o.CreatedAt.Before(reference.Add(-30 * 24 * time.Hour))
	}
	return true
}
