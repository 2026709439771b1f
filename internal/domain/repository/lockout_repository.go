package repository

import "github.com/jhoicas/pasteleria-api/internal/domain/entity"

// LockoutRepository persiste el estado del bloqueo de login para que un
// reinicio del proceso no lo salte. Get devuelve el estado cero si nunca
// se ha guardado nada.
type LockoutRepository interface {
	Get() (entity.LockoutState, error)
	Save(state entity.LockoutState) error
	Clear() error
}
