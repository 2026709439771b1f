package production_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pasteleria-api/internal/application/production"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
)

// reference fija para todos los tests: 15 de junio de 2025, 10:30 local.
var ref = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func order(status string, deadline time.Time, items ...entity.OrderItem) *entity.Order {
	return &entity.Order{
		ID:           "o-" + deadline.Format("20060102-150405"),
		CustomerName: "Cliente",
		Items:        items,
		Status:       status,
		Deadline:     deadline,
		CreatedAt:    ref.Add(-time.Hour),
		UpdatedAt:    ref.Add(-time.Hour),
	}
}

func item(name string, qty int) entity.OrderItem {
	return entity.OrderItem{ID: name, Name: name, Quantity: qty}
}

// Los pedidos completed nunca aparecen en ningún bucket, sin importar el deadline.
func TestAggregate_ExcluyePedidosCompletados(t *testing.T) {
	orders := []*entity.Order{
		order(entity.StatusCompleted, ref.AddDate(0, 0, 1), item("Croissant", 10)),
		order(entity.StatusPending, ref.AddDate(0, 0, 1), item("Croissant", 3)),
	}

	plans := production.Aggregate(orders, ref, 2)
	require.Len(t, plans, 2, "horizonte corto conserva los dos días aunque estén vacíos")

	require.Len(t, plans[0].Products, 1)
	assert.Equal(t, 3, plans[0].Products[0].Quantity,
		"solo cuenta el pedido pending; el completed se excluye")
}

// Un deadline en el día +1 cae en el bucket +1 sin importar la hora;
// un deadline en el mismo día de referencia se excluye por completo.
func TestAggregate_FronteraDeDia(t *testing.T) {
	orders := []*entity.Order{
		order(entity.StatusPending, time.Date(2025, 6, 16, 23, 59, 0, 0, time.UTC), item("Torta", 1)),
		order(entity.StatusPending, time.Date(2025, 6, 16, 0, 0, 1, 0, time.UTC), item("Torta", 1)),
		order(entity.StatusPending, time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC), item("Torta", 5)), // hoy: fuera
	}

	plans := production.Aggregate(orders, ref, 2)
	require.Len(t, plans, 2)

	require.Len(t, plans[0].Products, 1)
	assert.Equal(t, 2, plans[0].Products[0].Quantity,
		"ambas horas del día +1 suman en el mismo bucket; el pedido de hoy no cuenta")
	assert.Empty(t, plans[1].Products)
}

// Dos pedidos con el mismo producto para el mismo día suman cantidades.
func TestAggregate_SumaCantidadesPorProducto(t *testing.T) {
	orders := []*entity.Order{
		order(entity.StatusPending, ref.AddDate(0, 0, 1), item("Cookie", 3)),
		order(entity.StatusPending, ref.AddDate(0, 0, 1), item("Cookie", 5)),
	}

	plans := production.Aggregate(orders, ref, 2)
	require.NotEmpty(t, plans)
	require.Len(t, plans[0].Products, 1)
	assert.Equal(t, "Cookie", plans[0].Products[0].ProductName)
	assert.Equal(t, 8, plans[0].Products[0].Quantity)
}

// El nombre del producto se compara de forma exacta: mayúsculas distintas
// producen buckets distintos, ordenados alfabéticamente.
func TestAggregate_NombreExactoYOrdenAlfabetico(t *testing.T) {
	orders := []*entity.Order{
		order(entity.StatusPending, ref.AddDate(0, 0, 1),
			item("muffin", 1), item("Muffin", 2), item("Brownie", 4)),
	}

	plans := production.Aggregate(orders, ref, 2)
	require.NotEmpty(t, plans)
	require.Len(t, plans[0].Products, 3)
	assert.Equal(t, "Brownie", plans[0].Products[0].ProductName)
	assert.Equal(t, "Muffin", plans[0].Products[1].ProductName)
	assert.Equal(t, "muffin", plans[0].Products[2].ProductName)
}

// Escenario completo de la vista de cocina: dos muffins para mañana a distintas
// horas, una torta a +3 días fuera del horizonte de 2.
func TestAggregate_EscenarioVistaCocina(t *testing.T) {
	orders := []*entity.Order{
		order(entity.StatusPending, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), item("Muffin", 2)),
		order(entity.StatusPending, time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC), item("Muffin", 1)),
		order(entity.StatusPending, ref.AddDate(0, 0, 3), item("Cake", 1)),
	}

	plans := production.Aggregate(orders, ref, 2)
	require.Len(t, plans, 2)

	require.Len(t, plans[0].Products, 1)
	assert.Equal(t, "Muffin", plans[0].Products[0].ProductName)
	assert.Equal(t, 3, plans[0].Products[0].Quantity)

	assert.Empty(t, plans[1].Products, "el día +2 queda vacío")
	for _, p := range plans {
		for _, pq := range p.Products {
			assert.NotEqual(t, "Cake", pq.ProductName, "el pedido a +3 días no entra en ningún bucket")
		}
	}
}

// Horizonte largo: los días sin producción se omiten de la respuesta.
func TestAggregate_HorizonteLargoOmiteDiasVacios(t *testing.T) {
	orders := []*entity.Order{
		order(entity.StatusPending, ref.AddDate(0, 0, 5), item("Pan", 12)),
		order(entity.StatusPending, ref.AddDate(0, 0, 40), item("Tarta", 2)),
	}

	plans := production.Aggregate(orders, ref, 60)
	require.Len(t, plans, 2, "solo los días con producción aparecen")
	assert.Equal(t, ref.AddDate(0, 0, 5).Format("2006-01-02"), plans[0].Date)
	assert.Equal(t, ref.AddDate(0, 0, 40).Format("2006-01-02"), plans[1].Date)
}

// Lista vacía: el horizonte corto devuelve días vacíos, el largo nada.
func TestAggregate_SinPedidos(t *testing.T) {
	short := production.Aggregate(nil, ref, 2)
	require.Len(t, short, 2)
	assert.Empty(t, short[0].Products)
	assert.Empty(t, short[1].Products)

	long := production.Aggregate(nil, ref, 30)
	assert.Empty(t, long)
}

// Deadlines más allá del horizonte se descartan en silencio, no se acumulan
// en el último bucket.
func TestAggregate_FueraDeHorizonteSeDescarta(t *testing.T) {
	orders := []*entity.Order{
		order(entity.StatusPending, ref.AddDate(0, 0, 10), item("Donut", 6)),
	}
	plans := production.Aggregate(orders, ref, 2)
	require.Len(t, plans, 2)
	assert.Empty(t, plans[0].Products)
	assert.Empty(t, plans[1].Products)
}

// Determinismo: el mismo input produce exactamente el mismo output.
func TestAggregate_Determinista(t *testing.T) {
	orders := []*entity.Order{
		order(entity.StatusPending, ref.AddDate(0, 0, 1), item("Cookie", 3), item("Alfajor", 2)),
		order(entity.StatusReady, ref.AddDate(0, 0, 2), item("Cookie", 1)),
	}
	a := production.Aggregate(orders, ref, 2)
	b := production.Aggregate(orders, ref, 2)
	assert.Equal(t, a, b)
}
