package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeAdminShutdown        = "57P01"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return err != nil && strings.Contains(err.Error(), codeUniqueViolation)
}

// mapError traduce errores de pgx a los sentinels del dominio:
// unicidad, serialización y deadlock -> ErrConflict; conexión caída -> ErrStoreUnavailable.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrStoreUnavailable) ||
		errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation,
			pgErr.Code == codeSerializationFailure,
			pgErr.Code == codeDeadlockDetected:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrConflict, pgErr.Message)
		case pgErr.Code == codeForeignKeyViolation, pgErr.Code == codeCheckViolation:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrValidation, pgErr.ConstraintName)
		case strings.HasPrefix(pgErr.Code, "08"), pgErr.Code == codeAdminShutdown:
			return domain.Unavailable(op, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.Unavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affectedOne: una actualización sobre un id inexistente es domain.ErrNotFound.
func affectedOne(op string, rows int64, err error) error {
	if err != nil {
		return mapError(op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// count ejecuta SELECT COUNT(*) con las condiciones del filtro.
func count(ctx context.Context, q Querier, table string, w *where) (int, error) {
	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM `+table+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, mapError("count "+table, err)
	}
	return n, nil
}
