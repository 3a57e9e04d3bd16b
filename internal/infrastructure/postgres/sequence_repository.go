package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo consecutivos por tipo sobre business_counters.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next bloquea la fila del tipo (SELECT FOR UPDATE) y la incrementa. El lock se
// mantiene hasta el Commit de la transacción que inserta el registro, así dos
// creaciones concurrentes del mismo tipo se serializan y nunca leen el mismo valor.
// Fuera de una transacción el lock dura solo la sentencia: usar siempre vía TxRunner.
func (r *SequenceRepo) Next(ctx context.Context, t domain.EntityType) (int64, error) {
	var issued int64
	err := r.q.QueryRow(ctx,
		`SELECT issued FROM business_counters WHERE entity_type = $1 FOR UPDATE`, string(t),
	).Scan(&issued)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("consecutivo: tipo %q sin contador", t)
		}
		return 0, mapError("lock business counter", err)
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE business_counters SET issued = issued + 1 WHERE entity_type = $1`, string(t),
	); err != nil {
		return 0, mapError("advance business counter", err)
	}
	return issued, nil
}
