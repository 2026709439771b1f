package repository

import "github.com/jhoicas/pasteleria-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
// List devuelve los usuarios ordenados por created_at ascendente.
// FindByPIN devuelve (nil, nil) si ningún usuario tiene ese PIN.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	FindByPIN(pin string) (*entity.User, error)
}
