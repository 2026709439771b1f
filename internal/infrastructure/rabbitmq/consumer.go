package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/pkg/logger"
)

// Consumer recibe el feed de cambios de pedidos y lo entrega al handler.
// Cada instancia usa una cola exclusiva auto-delete ligada a order.*: todas
// reciben todos los eventos y la cola desaparece al desconectar.
type Consumer struct {
	client *Client
	log    *logger.Logger
}

// NewConsumer construye el consumidor sobre una conexión existente.
func NewConsumer(client *Client, log *logger.Logger) *Consumer {
	return &Consumer{client: client, log: log}
}

// Start declara la cola, la liga al exchange y consume hasta que ctx se
// cancele o el canal se cierre. Bloquea: lanzar en goroutine.
func (c *Consumer) Start(ctx context.Context, handler func(domain.ChangeEvent)) error {
	ch := c.client.Channel()

	queue, err := ch.QueueDeclare(
		"",    // nombre generado por el broker
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declarar cola: %w", err)
	}

	if err := ch.QueueBind(queue.Name, "order.*", c.client.Exchange(), false, nil); err != nil {
		return fmt.Errorf("ligar cola: %w", err)
	}

	deliveries, err := ch.Consume(
		queue.Name,
		"",    // consumer tag generado
		true,  // auto-ack: el evento es idempotente, perderlo no corrompe nada
		true,  // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consumir cola: %w", err)
	}

	c.log.Info().Str("queue", queue.Name).Msg("feed de pedidos conectado")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("canal de entregas cerrado")
			}
			var ev domain.ChangeEvent
			if err := json.Unmarshal(delivery.Body, &ev); err != nil {
				c.log.Warn().Err(err).Msg("evento de pedido ilegible, descartado")
				continue
			}
			handler(ev)
		}
	}
}
