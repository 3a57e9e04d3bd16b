// Package actors administra las cuentas del personal (solo owner).
package actors

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	"github.com/jhoicas/Phoneshop-api/pkg/clock"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// ActorUseCase alta, listado y activación de actores.
type ActorUseCase struct {
	store    repository.Store
	tx       ports.TxRunner
	hasher   ports.PasswordHasher
	recorder *audit.Recorder
	clock    clock.Clock
	log      *logger.Logger
}

// NewActorUseCase construye el caso de uso.
func NewActorUseCase(
	store repository.Store,
	tx ports.TxRunner,
	hasher ports.PasswordHasher,
	recorder *audit.Recorder,
	clk clock.Clock,
	log *logger.Logger,
) *ActorUseCase {
	return &ActorUseCase{store: store, tx: tx, hasher: hasher, recorder: recorder, clock: clk, log: log}
}

func requireManager(actor *entity.Actor) error {
	if err := actor.EnsureActive(); err != nil {
		return err
	}
	if !domain.CanManageActors(actor.Role) {
		return domain.ErrForbidden
	}
	return nil
}

// Create da de alta un actor. Username duplicado -> ErrConflict.
func (uc *ActorUseCase) Create(ctx context.Context, by *entity.Actor, in dto.CreateActorRequest) (*dto.ActorResponse, error) {
	if err := requireManager(by); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	a, err := uc.newActor(in)
	if err != nil {
		return nil, err
	}

	var ev *entity.AuditEvent
	err = uc.tx.Run(ctx, func(s repository.Store) error {
		if err := s.Actors().Create(ctx, a); err != nil {
			return err
		}
		var rerr error
		ev, rerr = uc.recorder.Record(ctx, s, audit.Entry{
			ActorID:    by.ID,
			Action:     entity.ActionActorCreated,
			EntityType: domain.EntityActor,
			EntityID:   a.ID,
			Detail:     fmt.Sprintf("%s (%s)", a.Username, a.Role),
			At:         a.CreatedAt,
		})
		return rerr
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Committed(ev)
	uc.log.Info().Str("actor_id", by.ID).Str("created_id", a.ID).Str("role", string(a.Role)).Msg("actor creado")
	out := dto.ActorFromEntity(a)
	return &out, nil
}

// Bootstrap crea el primer owner sin actor previo (CLI de administración).
// Falla con ErrConflict si ya existe algún actor.
func (uc *ActorUseCase) Bootstrap(ctx context.Context, in dto.CreateActorRequest) (*dto.ActorResponse, error) {
	in.Role = string(domain.RoleOwner)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	a, err := uc.newActor(in)
	if err != nil {
		return nil, err
	}
	var ev *entity.AuditEvent
	err = uc.tx.Run(ctx, func(s repository.Store) error {
		existing, err := s.Actors().List(ctx, 1, 0)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("bootstrap: ya existen actores: %w", domain.ErrConflict)
		}
		if err := s.Actors().Create(ctx, a); err != nil {
			return err
		}
		var rerr error
		ev, rerr = uc.recorder.Record(ctx, s, audit.Entry{
			ActorID:    a.ID,
			Action:     entity.ActionActorCreated,
			EntityType: domain.EntityActor,
			EntityID:   a.ID,
			Detail:     "bootstrap " + a.Username,
			At:         a.CreatedAt,
		})
		return rerr
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Committed(ev)
	out := dto.ActorFromEntity(a)
	return &out, nil
}

func (uc *ActorUseCase) newActor(in dto.CreateActorRequest) (*entity.Actor, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	return &entity.Actor{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(in.Username),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// List devuelve los actores paginados.
func (uc *ActorUseCase) List(ctx context.Context, by *entity.Actor, page dto.PageRequest) (*dto.ListResponse[dto.ActorResponse], error) {
	if err := requireManager(by); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.store.Actors().List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.store.Actors().Count(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ListResponse[dto.ActorResponse]{
		Items: make([]dto.ActorResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, a := range list {
		out.Items = append(out.Items, dto.ActorFromEntity(a))
	}
	return out, nil
}

// Deactivate bloquea el acceso del actor. Un owner no puede desactivarse a sí mismo.
func (uc *ActorUseCase) Deactivate(ctx context.Context, by *entity.Actor, id string) (*dto.ActorResponse, error) {
	if by != nil && by.ID == id {
		return nil, domain.NewValidationError("id", "no puede desactivar su propia cuenta")
	}
	return uc.setActive(ctx, by, id, false)
}

// Reactivate restablece el acceso del actor.
func (uc *ActorUseCase) Reactivate(ctx context.Context, by *entity.Actor, id string) (*dto.ActorResponse, error) {
	return uc.setActive(ctx, by, id, true)
}

func (uc *ActorUseCase) setActive(ctx context.Context, by *entity.Actor, id string, active bool) (*dto.ActorResponse, error) {
	if err := requireManager(by); err != nil {
		return nil, err
	}
	action := entity.ActionActorDeactivated
	if active {
		action = entity.ActionActorReactivated
	}

	var (
		target *entity.Actor
		ev     *entity.AuditEvent
	)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		var err error
		target, err = s.Actors().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.ErrNotFound
		}
		now := uc.clock.Now()
		if err := s.Actors().SetActive(ctx, id, active, now); err != nil {
			return err
		}
		target.Active = active
		target.UpdatedAt = now
		ev, err = uc.recorder.Record(ctx, s, audit.Entry{
			ActorID:    by.ID,
			Action:     action,
			EntityType: domain.EntityActor,
			EntityID:   id,
			Detail:     target.Username,
			At:         now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Committed(ev)
	uc.log.Info().Str("actor_id", by.ID).Str("target_id", id).Bool("active", active).Msg("actor actualizado")
	out := dto.ActorFromEntity(target)
	return &out, nil
}
