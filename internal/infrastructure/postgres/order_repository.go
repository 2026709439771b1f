package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/pasteleria-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository. Las líneas del pedido se
// guardan como JSONB en la columna items, igual que en el esquema original.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido nuevo.
func (r *OrderRepo) Create(order *entity.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		INSERT INTO orders (id, customer_name, items, status, deadline, special_notes, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.CustomerName, items, order.Status, order.Deadline,
		order.SpecialNotes, order.Paid, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("insert order", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		SELECT id, customer_name, items, status, deadline, special_notes, paid, created_at, updated_at
		FROM orders WHERE id = $1`
	order, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get order", err)
	}
	return order, nil
}

// List devuelve todos los pedidos ordenados por created_at descendente.
func (r *OrderRepo) List() ([]*entity.Order, error) {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		SELECT id, customer_name, items, status, deadline, special_notes, paid, created_at, updated_at
		FROM orders ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr("list orders", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, wrapStoreErr("scan order", err)
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list orders", err)
	}
	return list, nil
}

// Update actualiza todos los campos mutables del pedido.
func (r *OrderRepo) Update(order *entity.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		UPDATE orders
		SET customer_name = $2, items = $3, status = $4, deadline = $5,
		    special_notes = $6, paid = $7, updated_at = $8
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.CustomerName, items, order.Status, order.Deadline,
		order.SpecialNotes, order.Paid, order.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("update order", err)
	}
	return nil
}

// Delete elimina un pedido por ID (borrado duro).
func (r *OrderRepo) Delete(id string) error {
	ctx, cancel := storeCtx()
	defer cancel()
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return wrapStoreErr("delete order", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var items []byte
	err := row.Scan(&o.ID, &o.CustomerName, &items, &o.Status, &o.Deadline,
		&o.SpecialNotes, &o.Paid, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &o, nil
}
