package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/pasteleria-api/internal/application/usecase"
	"github.com/jhoicas/pasteleria-api/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

var _ usecase.EventPublisher = (*Publisher)(nil)

// publishTimeout plazo máximo para entregar un evento al broker.
const publishTimeout = 5 * time.Second

// Publisher emite los eventos de cambio de pedidos al exchange del feed.
// Routing key: order.<tipo> (order.insert, order.update, order.delete).
type Publisher struct {
	client *Client
}

// NewPublisher construye el publicador sobre una conexión existente.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish serializa el evento como JSON y lo publica con entrega persistente.
func (p *Publisher) Publish(ev domain.ChangeEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal evento: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = p.client.Channel().PublishWithContext(
		ctx,
		p.client.Exchange(),
		"order."+ev.Type,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publicar evento %s: %w", ev.Type, err)
	}
	return nil
}
