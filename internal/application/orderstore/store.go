package orderstore

import (
	"sort"
	"sync"

	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
)

// Store lista canónica de pedidos en memoria. Es el único dueño del slice:
// las mutaciones entran por Replace y Apply, las lecturas salen como copia
// vía Snapshot. Los suscriptores reciben cada evento ya conciliado.
//
// Apply es la función de conciliación exigida por el feed de cambios: se llama
// tanto desde la ruta de mutación directa (actualización optimista) como desde
// el consumidor de eventos remotos, y es idempotente bajo replay: un insert de
// un id ya presente no hace nada, un update reemplaza, un delete elimina.
type Store struct {
	mu     sync.RWMutex
	orders []*entity.Order
	subs   []func(domain.ChangeEvent)
}

// New crea un Store vacío.
func New() *Store {
	return &Store{}
}

// Replace sustituye la lista completa por el snapshot autoritativo del
// servidor (resultado de un List), reordenado por created_at descendente.
func (s *Store) Replace(orders []*entity.Order) {
	cp := make([]*entity.Order, len(orders))
	copy(cp, orders)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].CreatedAt.After(cp[j].CreatedAt)
	})

	s.mu.Lock()
	s.orders = cp
	s.mu.Unlock()
}

// Apply concilia un evento de cambio contra la lista local y notifica a los
// suscriptores solo si hubo efecto real (el replay de un evento ya aplicado
// es un no-op silencioso).
func (s *Store) Apply(ev domain.ChangeEvent) {
	s.mu.Lock()
	applied := s.applyLocked(ev)
	subs := s.subs
	s.mu.Unlock()

	if !applied {
		return
	}
	for _, fn := range subs {
		fn(ev)
	}
}

func (s *Store) applyLocked(ev domain.ChangeEvent) bool {
	idx := s.indexOf(ev.OrderID)
	switch ev.Type {
	case domain.EventInsert:
		if ev.Order == nil || idx >= 0 {
			return false // ya conciliado (p.ej. alta optimista + evento remoto)
		}
		s.orders = append([]*entity.Order{ev.Order}, s.orders...)
		return true
	case domain.EventUpdate:
		if ev.Order == nil {
			return false
		}
		if idx < 0 {
			// Update de un id desconocido: el evento llegó antes que el
			// snapshot; se incorpora como alta.
			s.orders = append([]*entity.Order{ev.Order}, s.orders...)
			return true
		}
		s.orders[idx] = ev.Order
		return true
	case domain.EventDelete:
		if idx < 0 {
			return false
		}
		s.orders = append(s.orders[:idx], s.orders[idx+1:]...)
		return true
	}
	return false
}

func (s *Store) indexOf(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// Snapshot devuelve una copia de la lista actual, segura de recorrer mientras
// el Store sigue recibiendo eventos.
func (s *Store) Snapshot() []*entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]*entity.Order, len(s.orders))
	copy(cp, s.orders)
	return cp
}

// Len cantidad de pedidos en la lista local.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// Subscribe registra un callback que recibirá cada evento con efecto real.
// Devuelve la función para darse de baja.
func (s *Store) Subscribe(fn func(domain.ChangeEvent)) (unsubscribe func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.subs) {
			s.subs[idx] = func(domain.ChangeEvent) {} // baja sin recomponer el slice
		}
	}
}
