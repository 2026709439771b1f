package orderstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pasteleria-api/internal/application/orderstore"
	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
)

var base = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func storeOrder(id string, createdAt time.Time) *entity.Order {
	return &entity.Order{
		ID:           id,
		CustomerName: "Cliente " + id,
		Status:       entity.StatusPending,
		Deadline:     createdAt.AddDate(0, 0, 2),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func insertEv(o *entity.Order) domain.ChangeEvent {
	return domain.ChangeEvent{Type: domain.EventInsert, OrderID: o.ID, Order: o}
}

// Un insert de un id ya presente es un no-op: la conciliación del alta
// optimista con el evento autoritativo posterior no duplica.
func TestStore_InsertDuplicadoEsNoOp(t *testing.T) {
	s := orderstore.New()
	o := storeOrder("1", base)

	s.Apply(insertEv(o))
	s.Apply(insertEv(storeOrder("1", base))) // evento remoto para el mismo id

	assert.Equal(t, 1, s.Len())
}

// Un update reemplaza la entrada existente por id.
func TestStore_UpdateReemplaza(t *testing.T) {
	s := orderstore.New()
	s.Apply(insertEv(storeOrder("1", base)))

	updated := storeOrder("1", base)
	updated.Status = entity.StatusReady
	s.Apply(domain.ChangeEvent{Type: domain.EventUpdate, OrderID: "1", Order: updated})

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, entity.StatusReady, snap[0].Status)
}

// Un update para un id desconocido se incorpora como alta (el evento llegó
// antes que el snapshot inicial).
func TestStore_UpdateDesconocidoIncorpora(t *testing.T) {
	s := orderstore.New()
	s.Apply(domain.ChangeEvent{Type: domain.EventUpdate, OrderID: "9", Order: storeOrder("9", base)})
	assert.Equal(t, 1, s.Len())
}

// Un delete elimina por id; repetirlo es un no-op.
func TestStore_DeleteIdempotente(t *testing.T) {
	s := orderstore.New()
	s.Apply(insertEv(storeOrder("1", base)))
	s.Apply(insertEv(storeOrder("2", base.Add(time.Minute))))

	del := domain.ChangeEvent{Type: domain.EventDelete, OrderID: "1"}
	s.Apply(del)
	s.Apply(del)

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "2", snap[0].ID)
}

// Replace impone el snapshot autoritativo ordenado por created_at descendente.
func TestStore_ReplaceOrdenaPorFecha(t *testing.T) {
	s := orderstore.New()
	s.Replace([]*entity.Order{
		storeOrder("viejo", base),
		storeOrder("nuevo", base.Add(2*time.Hour)),
		storeOrder("medio", base.Add(time.Hour)),
	})

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "nuevo", snap[0].ID)
	assert.Equal(t, "medio", snap[1].ID)
	assert.Equal(t, "viejo", snap[2].ID)
}

// Los suscriptores reciben solo los eventos con efecto real; el replay no
// vuelve a notificar. La baja detiene las notificaciones.
func TestStore_SuscripcionYBaja(t *testing.T) {
	s := orderstore.New()
	var got []string
	unsubscribe := s.Subscribe(func(ev domain.ChangeEvent) {
		got = append(got, ev.Type+":"+ev.OrderID)
	})

	s.Apply(insertEv(storeOrder("1", base)))
	s.Apply(insertEv(storeOrder("1", base))) // replay: sin notificación
	s.Apply(domain.ChangeEvent{Type: domain.EventDelete, OrderID: "1"})

	assert.Equal(t, []string{"insert:1", "delete:1"}, got)

	unsubscribe()
	s.Apply(insertEv(storeOrder("2", base)))
	assert.Len(t, got, 2, "tras la baja no llegan más eventos")
}

// El snapshot es una copia: mutar el slice devuelto no toca el Store.
func TestStore_SnapshotEsCopia(t *testing.T) {
	s := orderstore.New()
	s.Apply(insertEv(storeOrder("1", base)))

	snap := s.Snapshot()
	snap[0] = nil

	assert.Equal(t, "1", s.Snapshot()[0].ID)
}
