package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/pasteleria-api/internal/domain/repository"
)

var _ repository.LockoutRepository = (*LockoutRepo)(nil)

// LockoutRepo persiste el estado del bloqueo de login en la tabla
// auth_lockout. El bloqueo es global (un solo terminal compartido), así que
// la tabla tiene una única fila con id fijo 1.
type LockoutRepo struct {
	q Querier
}

// NewLockoutRepository construye el adaptador.
func NewLockoutRepository(q Querier) *LockoutRepo {
	return &LockoutRepo{q: q}
}

// Get devuelve el estado guardado, o el estado cero si la fila no existe.
func (r *LockoutRepo) Get() (entity.LockoutState, error) {
	ctx, cancel := storeCtx()
	defer cancel()
	var state entity.LockoutState
	query := `SELECT failed_attempts, locked_until FROM auth_lockout WHERE id = 1`
	err := r.q.QueryRow(ctx, query).Scan(&state.FailedAttempts, &state.LockedUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.LockoutState{}, nil
		}
		return entity.LockoutState{}, wrapStoreErr("get lockout", err)
	}
	return state, nil
}

// Save guarda el estado con upsert sobre la fila única.
func (r *LockoutRepo) Save(state entity.LockoutState) error {
	ctx, cancel := storeCtx()
	defer cancel()
	query := `
		INSERT INTO auth_lockout (id, failed_attempts, locked_until)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET failed_attempts = EXCLUDED.failed_attempts, locked_until = EXCLUDED.locked_until`
	if _, err := r.q.Exec(ctx, query, state.FailedAttempts, state.LockedUntil); err != nil {
		return wrapStoreErr("save lockout", err)
	}
	return nil
}

// Clear restablece el estado a cero.
func (r *LockoutRepo) Clear() error {
	return r.Save(entity.LockoutState{})
}
