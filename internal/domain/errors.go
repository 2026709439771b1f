package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidPIN       = errors.New("el PIN debe ser de 4 dígitos")
	ErrLockedOut        = errors.New("acceso bloqueado por intentos fallidos")
	ErrStoreUnavailable = errors.New("almacén de datos no disponible")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
)
