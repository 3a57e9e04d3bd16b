package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
)

// ActorRepository define el puerto de persistencia para Actor (DIP).
type ActorRepository interface {
	Create(ctx context.Context, actor *entity.Actor) error
	GetByID(ctx context.Context, id string) (*entity.Actor, error)
	GetByUsername(ctx context.Context, username string) (*entity.Actor, error)
	// SetActive alterna la activación; devuelve domain.ErrNotFound si no existe.
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
	List(ctx context.Context, limit, offset int) ([]*entity.Actor, error)
	Count(ctx context.Context) (int, error)
}
