package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED
// más locks de fila explícitos en contadores y registros).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un Store atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(store repository.Store) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return unavailableOrMapped("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return unavailableOrMapped("commit transaction", err)
	}
	return nil
}

// unavailableOrMapped: un conflicto al confirmar sigue siendo ErrConflict; cualquier otro
// fallo de begin/commit es ErrStoreUnavailable.
func unavailableOrMapped(op string, err error) error {
	if mapped := mapError(op, err); errors.Is(mapped, domain.ErrConflict) {
		return mapped
	}
	return domain.Unavailable(op, err)
}
