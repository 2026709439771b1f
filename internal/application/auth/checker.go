package auth

import (
	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/pasteleria-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

var _ CredentialChecker = (*PlainPINChecker)(nil)
var _ CredentialChecker = (*BcryptPINChecker)(nil)

// PlainPINChecker compara el PIN en texto plano contra la columna pin
// (el diseño observado de la herramienta interna).
type PlainPINChecker struct {
	users repository.UserRepository
}

// NewPlainPINChecker construye el verificador plano.
func NewPlainPINChecker(users repository.UserRepository) *PlainPINChecker {
	return &PlainPINChecker{users: users}
}

// Authenticate busca el usuario cuyo PIN coincide exactamente.
func (c *PlainPINChecker) Authenticate(pin string) (*entity.User, error) {
	user, err := c.users.FindByPIN(pin)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// BcryptPINChecker compara el PIN contra hashes bcrypt almacenados en la
// columna pin (modo AUTH_HASH_PINS). Recorre todos los usuarios porque el PIN
// no es buscable una vez hasheado; con una plantilla de personal de pastelería
// la lista es corta.
type BcryptPINChecker struct {
	users repository.UserRepository
}

// NewBcryptPINChecker construye el verificador con hashing.
func NewBcryptPINChecker(users repository.UserRepository) *BcryptPINChecker {
	return &BcryptPINChecker{users: users}
}

// Authenticate compara el PIN contra cada hash hasta encontrar coincidencia.
func (c *BcryptPINChecker) Authenticate(pin string) (*entity.User, error) {
	users, err := c.users.List()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if bcrypt.CompareHashAndPassword([]byte(u.PIN), []byte(pin)) == nil {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// HashPIN genera el hash bcrypt de un PIN para almacenarlo (modo AUTH_HASH_PINS).
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
