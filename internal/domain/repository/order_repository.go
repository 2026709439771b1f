package repository

import "github.com/jhoicas/pasteleria-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order.
// List devuelve los pedidos ordenados por created_at descendente.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List() ([]*entity.Order, error)
	Update(order *entity.Order) error
	Delete(id string) error
}
