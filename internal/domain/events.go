package domain

import "github.com/jhoicas/pasteleria-api/internal/domain/entity"

// Tipos de evento de cambio sobre la colección de pedidos.
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// ChangeEvent evento de cambio emitido tras cada mutación de pedidos.
// Para delete solo viaja OrderID; insert y update llevan el registro completo.
type ChangeEvent struct {
	Type    string        `json:"type"` // insert | update | delete
	OrderID string        `json:"order_id"`
	Order   *entity.Order `json:"order,omitempty"`
}
