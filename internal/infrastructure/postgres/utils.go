package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/pasteleria-api/internal/domain"
)

// storeTimeout tiempo máximo por llamada al almacén; pasado este plazo la
// llamada se trata como fallida (el cliente no se queda colgado del backend).
const storeTimeout = 5 * time.Second

// storeCtx contexto con el timeout de cliente para una llamada al almacén.
func storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// wrapStoreErr envuelve errores de infraestructura. Timeouts y fallos de
// conexión se traducen a domain.ErrStoreUnavailable para que la capa HTTP
// los presente como "almacén no disponible" en lugar de un 500 opaco.
func wrapStoreErr(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Clase 08: connection exception
		return len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08"
	}
	return pgconn.Timeout(err)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
