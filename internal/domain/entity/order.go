package entity

import "time"

// Estados válidos para Order.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusReady      = "ready"
	StatusCompleted  = "completed"
)

// ValidStatus indica si s es uno de los estados del ciclo de vida del pedido.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// OrderItem línea de un pedido. Name es texto libre que se cruza por nombre
// con el catálogo de productos (no es una FK).
type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"` // mínimo 1
	Notes    string `json:"notes,omitempty"`
}

// Order pedido de un cliente. Invariante: UpdatedAt >= CreatedAt.
// Los items conservan el orden de inserción (orden de presentación).
type Order struct {
	ID           string
	CustomerName string
	Items        []OrderItem
	Status       string // pending, in-progress, ready, completed
	Deadline     time.Time
	SpecialNotes string
	Paid         bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
