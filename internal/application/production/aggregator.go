package production

import (
	"math"
	"sort"
	"time"

	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
)

// ShortHorizon horizonte máximo (en días) para el que el plan conserva
// entradas de días sin producción. La vista corta de cocina muestra
// "sin pedidos para este día"; las vistas de 30/60 días comprimen la lista
// omitiendo días vacíos.
const ShortHorizon = 2

// ProductQuantity cantidad total a producir de un producto en un día.
type ProductQuantity struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// DayPlan producción agregada de un día calendario.
type DayPlan struct {
	Date     string            `json:"date"`  // YYYY-MM-DD
	Label    string            `json:"label"` // ej. "Monday, Sep 1"
	Products []ProductQuantity `json:"products"`
}

// Aggregate responde "cuánto hay que tener listo de cada producto, por día
// calendario, durante los próximos horizonDays días" a partir del instante
// reference. Función pura: determinista y sin I/O.
//
// Reglas:
//   - Los pedidos completed se excluyen siempre.
//   - El día de cada pedido es su deadline truncado a fecha local (la zona
//     horaria de reference); la hora del día no afecta al bucket.
//   - Solo cuentan días estrictamente futuros: reference+1 .. reference+horizonDays.
//     Un deadline en el día de reference o más allá del horizonte se descarta.
//   - Dentro de cada día se suman las cantidades por nombre exacto de producto
//     (sin case folding ni trim) y se ordenan alfabéticamente.
func Aggregate(orders []*entity.Order, reference time.Time, horizonDays int) []DayPlan {
	loc := reference.Location()
	refDay := truncateToDay(reference, loc)

	// índice 0 = reference + 1 día
	buckets := make([]map[string]int, horizonDays)

	for _, o := range orders {
		if o.Status == entity.StatusCompleted {
			continue
		}
		day := truncateToDay(o.Deadline.In(loc), loc)
		offset := daysBetween(refDay, day)
		if offset < 1 || offset > horizonDays {
			continue
		}
		m := buckets[offset-1]
		if m == nil {
			m = make(map[string]int)
			buckets[offset-1] = m
		}
		for _, it := range o.Items {
			m[it.Name] += it.Quantity
		}
	}

	includeEmpty := horizonDays <= ShortHorizon
	plans := make([]DayPlan, 0, horizonDays)
	for i, m := range buckets {
		if len(m) == 0 && !includeEmpty {
			continue
		}
		day := refDay.AddDate(0, 0, i+1)
		plans = append(plans, DayPlan{
			Date:     day.Format("2006-01-02"),
			Label:    day.Format("Monday, Jan 2"),
			Products: sortedProducts(m),
		})
	}
	return plans
}

func truncateToDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// daysBetween días calendario entre dos medianoches de la misma zona.
// Se redondea para absorber los saltos de ±1h por horario de verano.
func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

func sortedProducts(m map[string]int) []ProductQuantity {
	out := make([]ProductQuantity, 0, len(m))
	for name, qty := range m {
		out = append(out, ProductQuantity{ProductName: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out
}
