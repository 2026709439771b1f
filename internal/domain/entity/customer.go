package entity

import "time"

// Customer cliente de la pastelería. Solo Name es obligatorio.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
