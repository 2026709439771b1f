package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/pasteleria-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(user *entity.User) error {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		INSERT INTO users (id, name, role, pin, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, user.ID, user.Name, user.Role, user.PIN, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapStoreErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `SELECT id, name, role, pin, created_at FROM users WHERE id = $1`
	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get user", err)
	}
	return user, nil
}

// List devuelve los usuarios ordenados por fecha de alta.
func (r *UserRepo) List() ([]*entity.User, error) {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `SELECT id, name, role, pin, created_at FROM users ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr("list users", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, wrapStoreErr("scan user", err)
		}
		list = append(list, user)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list users", err)
	}
	return list, nil
}

// Update actualiza nombre, rol y PIN del usuario.
func (r *UserRepo) Update(user *entity.User) error {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `UPDATE users SET name = $2, role = $3, pin = $4 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, user.ID, user.Name, user.Role, user.PIN); err != nil {
		return wrapStoreErr("update user", err)
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(id string) error {
	ctx, cancel := storeCtx()
	defer cancel()
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return wrapStoreErr("delete user", err)
	}
	return nil
}

// FindByPIN busca el usuario cuyo PIN en claro coincide exactamente.
// Devuelve (nil, nil) si ninguno coincide. Solo aplica cuando los PINs se
// guardan en texto plano; con hashes bcrypt el verificador recorre List.
func (r *UserRepo) FindByPIN(pin string) (*entity.User, error) {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `SELECT id, name, role, pin, created_at FROM users WHERE pin = $1 LIMIT 1`
	user, err := scanUser(r.q.QueryRow(ctx, query, pin))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("find user by pin", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Name, &u.Role, &u.PIN, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
