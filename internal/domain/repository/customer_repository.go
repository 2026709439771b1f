package repository

import "github.com/jhoicas/pasteleria-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// List devuelve los clientes ordenados por nombre ascendente.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
