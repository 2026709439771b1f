package usecase

import "github.com/jhoicas/pasteleria-api/internal/domain"

// EventPublisher puerto de notificación de cambios de pedidos (RabbitMQ en
// infraestructura). Puede ser nil: la aplicación funciona sin feed.
type EventPublisher interface {
	Publish(ev domain.ChangeEvent) error
}
