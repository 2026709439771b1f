package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/pasteleria-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un cliente nuevo.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		INSERT INTO customers (id, name, phone, email, address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.Name, customer.Phone, customer.Email,
		customer.Address, customer.Notes, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapStoreErr("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		SELECT id, name, phone, email, address, notes, created_at, updated_at
		FROM customers WHERE id = $1`
	customer, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get customer", err)
	}
	return customer, nil
}

// List devuelve los clientes ordenados alfabéticamente por nombre.
func (r *CustomerRepo) List() ([]*entity.Customer, error) {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		SELECT id, name, phone, email, address, notes, created_at, updated_at
		FROM customers ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr("list customers", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, wrapStoreErr("scan customer", err)
		}
		list = append(list, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list customers", err)
	}
	return list, nil
}

// Update actualiza todos los campos mutables del cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		UPDATE customers
		SET name = $2, phone = $3, email = $4, address = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.Name, customer.Phone, customer.Email,
		customer.Address, customer.Notes, customer.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("update customer", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(id string) error {
	ctx, cancel := storeCtx()
	defer cancel()
	if _, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return wrapStoreErr("delete customer", err)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
