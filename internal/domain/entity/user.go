package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User miembro del personal. PIN es la credencial de acceso: texto plano por
// defecto (diseño heredado de la herramienta interna) o hash bcrypt si
// AUTH_HASH_PINS está activo.
type User struct {
	ID        string
	Name      string
	Role      string // admin, employee
	PIN       string
	CreatedAt time.Time
}
