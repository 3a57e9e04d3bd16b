package repository

import (
	"context"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
)

// SequenceRepository reserva consecutivos de número de negocio.
// Next debe ejecutarse en la misma transacción que inserta el registro: bloquea
// el contador del tipo hasta el Commit, de modo que dos creaciones concurrentes
// nunca lean el mismo valor.
type SequenceRepository interface {
	// Next devuelve cuántos números del tipo se habían emitido antes de esta llamada.
	Next(ctx context.Context, t domain.EntityType) (issued int64, err error)
}
