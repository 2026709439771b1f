package dto

import (
	"time"

	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
)

// OrderItemRequest línea de pedido entrante.
type OrderItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// CreateOrderRequest alta de pedido. Deadline en RFC 3339.
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Items        []OrderItemRequest `json:"items"`
	Deadline     time.Time          `json:"deadline"`
	SpecialNotes string             `json:"special_notes"`
}

// UpdateOrderRequest actualización parcial; nil significa "sin cambio".
type UpdateOrderRequest struct {
	CustomerName *string             `json:"customer_name"`
	Items        *[]OrderItemRequest `json:"items"`
	Deadline     *time.Time          `json:"deadline"`
	SpecialNotes *string             `json:"special_notes"`
}

// UpdateStatusRequest cambio de estado del ciclo de vida.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePaidRequest marca o desmarca el pedido como pagado.
type UpdatePaidRequest struct {
	Paid bool `json:"paid"`
}

// OrderItemResponse línea de pedido saliente.
type OrderItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// OrderResponse pedido completo.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customer_name"`
	Items        []OrderItemResponse `json:"items"`
	Status       string              `json:"status"`
	Deadline     time.Time           `json:"deadline"`
	SpecialNotes string              `json:"special_notes,omitempty"`
	Paid         bool                `json:"paid"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewOrderResponse mapea la entidad a la respuesta HTTP.
func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{ID: it.ID, Name: it.Name, Quantity: it.Quantity, Notes: it.Notes})
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Items:        items,
		Status:       o.Status,
		Deadline:     o.Deadline,
		SpecialNotes: o.SpecialNotes,
		Paid:         o.Paid,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// NewOrderResponses mapea una lista de pedidos.
func NewOrderResponses(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
