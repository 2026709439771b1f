package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pasteleria-api/internal/application/dto"
	"github.com/jhoicas/pasteleria-api/internal/application/history"
	"github.com/jhoicas/pasteleria-api/internal/application/orderstore"
	"github.com/jhoicas/pasteleria-api/internal/application/production"
	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/pasteleria-api/internal/domain/repository"
	"github.com/jhoicas/pasteleria-api/pkg/logger"
)

// OrderUseCase reglas de negocio de pedidos. Cada mutación actualiza el
// repositorio, concilia la lista local de forma optimista y publica el evento
// para otros consumidores del feed.
type OrderUseCase struct {
	repo   repository.OrderRepository
	store  *orderstore.Store
	events EventPublisher
	log    *logger.Logger
}

// NewOrderUseCase construye el caso de uso. events puede ser nil.
func NewOrderUseCase(repo repository.OrderRepository, store *orderstore.Store, events EventPublisher, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{repo: repo, store: store, events: events, log: log}
}

// List recarga el snapshot autoritativo desde el repositorio y lo impone en la
// lista local.
func (uc *OrderUseCase) List() ([]*entity.Order, error) {
	orders, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	uc.store.Replace(orders)
	return orders, nil
}

// GetByID obtiene un pedido por ID. Devuelve (nil, nil) si no existe.
func (uc *OrderUseCase) GetByID(id string) (*entity.Order, error) {
	return uc.repo.GetByID(id)
}

// Create valida y persiste un pedido nuevo con id y timestamps del servidor.
func (uc *OrderUseCase) Create(in dto.CreateOrderRequest) (*entity.Order, error) {
	if in.CustomerName == "" || in.Deadline.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	items, err := buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		CustomerName: in.CustomerName,
		Items:        items,
		Status:       entity.StatusPending,
		Deadline:     in.Deadline,
		SpecialNotes: in.SpecialNotes,
		Paid:         false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(order); err != nil {
		return nil, err
	}
	uc.emit(domain.ChangeEvent{Type: domain.EventInsert, OrderID: order.ID, Order: order})
	return order, nil
}

// Update aplica una actualización parcial de campos.
func (uc *OrderUseCase) Update(id string, in dto.UpdateOrderRequest) (*entity.Order, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	if in.CustomerName != nil {
		if *in.CustomerName == "" {
			return nil, domain.ErrInvalidInput
		}
		order.CustomerName = *in.CustomerName
	}
	if in.Items != nil {
		items, err := buildItems(*in.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	if in.Deadline != nil {
		order.Deadline = *in.Deadline
	}
	if in.SpecialNotes != nil {
		order.SpecialNotes = *in.SpecialNotes
	}
	return uc.persistUpdate(order)
}

// UpdateStatus cambia el estado del ciclo de vida.
func (uc *OrderUseCase) UpdateStatus(id, status string) (*entity.Order, error) {
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	order.Status = status
	return uc.persistUpdate(order)
}

// UpdatePaid marca o desmarca el pedido como pagado.
func (uc *OrderUseCase) UpdatePaid(id string, paid bool) (*entity.Order, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	order.Paid = paid
	return uc.persistUpdate(order)
}

// Delete elimina el pedido (borrado duro, sin tombstone).
func (uc *OrderUseCase) Delete(id string) error {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.emit(domain.ChangeEvent{Type: domain.EventDelete, OrderID: id})
	return nil
}

// ProductionPlan agrega la producción de los próximos days días sobre el
// snapshot fresco de pedidos.
func (uc *OrderUseCase) ProductionPlan(days int, reference time.Time) ([]production.DayPlan, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidInput
	}
	orders, err := uc.List()
	if err != nil {
		return nil, err
	}
	return production.Aggregate(orders, reference, days), nil
}

// History produce la vista de historial filtrada y ordenada.
func (uc *OrderUseCase) History(query string, mode history.Mode, reference time.Time) ([]*entity.Order, error) {
	orders, err := uc.List()
	if err != nil {
		return nil, err
	}
	return history.Filter(orders, query, mode, reference), nil
}

// ApplyRemote concilia un evento llegado por el feed de cambios. El Store es
// idempotente, así que el eco de una mutación propia no duplica nada.
func (uc *OrderUseCase) ApplyRemote(ev domain.ChangeEvent) {
	uc.store.Apply(ev)
}

// persistUpdate actualiza updated_at, persiste y propaga el evento.
func (uc *OrderUseCase) persistUpdate(order *entity.Order) (*entity.Order, error) {
	order.UpdatedAt = time.Now()
	if err := uc.repo.Update(order); err != nil {
		return nil, err
	}
	uc.emit(domain.ChangeEvent{Type: domain.EventUpdate, OrderID: order.ID, Order: order})
	return order, nil
}

// emit concilia localmente y publica. Un fallo de publicación no tumba la
// mutación: el dato ya está persistido y el snapshot siguiente lo recoge.
func (uc *OrderUseCase) emit(ev domain.ChangeEvent) {
	uc.store.Apply(ev)
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ev); err != nil {
		uc.log.Warn().Err(err).Str("order_id", ev.OrderID).Str("type", ev.Type).
			Msg("no se pudo publicar el evento de cambio")
	}
}

// buildItems valida y materializa las líneas del pedido con ids de servidor.
func buildItems(in []dto.OrderItemRequest) ([]entity.OrderItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		if it.Name == "" || it.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.OrderItem{
			ID:       uuid.New().String(),
			Name:     it.Name,
			Quantity: it.Quantity,
			Notes:    it.Notes,
		})
	}
	return items, nil
}
