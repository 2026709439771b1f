package rabbitmq

import (
	"errors"
	"fmt"

	"github.com/jhoicas/pasteleria-api/pkg/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Client conexión a RabbitMQ para el feed de cambios de pedidos.
// Declara un exchange topic compartido: el publicador emite order.insert,
// order.update y order.delete, y cada instancia consume order.* para
// reconciliar su colección local.
type Client struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// Dial conecta al broker y declara el exchange del feed.
func Dial(cfg config.AMQPConfig) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("conectar a rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declarar exchange %s: %w", cfg.Exchange, err)
	}

	return &Client{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

// Channel expone el canal AMQP para publicador y consumidor.
func (c *Client) Channel() *amqp.Channel { return c.ch }

// Exchange nombre del exchange declarado.
func (c *Client) Exchange() string { return c.exchange }

// Ping verifica que la conexión sigue viva.
func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("conexión rabbitmq cerrada")
	}
	return nil
}

// Close cierra canal y conexión.
func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
