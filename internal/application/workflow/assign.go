package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

// Assign cambia el responsable de una reparación, lead o domicilio (requiere CanAssignWork).
// Los registros cerrados no se reasignan.
func (uc *UseCase) Assign(ctx context.Context, actor *entity.Actor, t domain.EntityType, id string, in dto.AssignRequest) (any, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	if !domain.CanAssignWork(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var (
		result any
		ev     *entity.AuditEvent
	)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := checkAssignee(ctx, s, actor, in.AssigneeID); err != nil {
			return err
		}
		now := uc.clock.Now()
		number, previous, err := uc.applyAssignee(ctx, s, actor, t, id, in.AssigneeID, now, &result)
		if err != nil {
			return err
		}
		ev, err = uc.recorder.Record(ctx, s, audit.Entry{
			ActorID:    actor.ID,
			Action:     entity.EntityAction(t, entity.ActionAssigned),
			EntityType: t,
			EntityID:   id,
			Detail:     fmt.Sprintf("%s: %s -> %s", number, orNone(previous), orNone(in.AssigneeID)),
			At:         now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Committed(ev)
	uc.log.Info().
		Str("actor_id", actor.ID).
		Str("entity_type", string(t)).
		Str("entity_id", id).
		Str("assignee_id", in.AssigneeID).
		Msg("asignación")
	return result, nil
}

func (uc *UseCase) applyAssignee(
	ctx context.Context,
	s repository.Store,
	actor *entity.Actor,
	t domain.EntityType,
	id, assigneeID string,
	now time.Time,
	result *any,
) (number, previous string, err error) {
	switch t {
	case domain.EntityRepair:
		r, err := s.Repairs().GetForUpdate(ctx, id)
		if err != nil {
			return "", "", err
		}
		if r == nil {
			return "", "", domain.ErrNotFound
		}
		if r.ClosedAt != nil {
			return "", "", domain.NewValidationError("assignee_id", "la reparación está cerrada")
		}
		previous = r.AssigneeID
		r.AssigneeID = assigneeID
		r.Touch(actor.ID, now)
		if err := s.Repairs().Update(ctx, r); err != nil {
			return "", "", err
		}
		*result = dto.RepairFromEntity(r)
		return r.Number, previous, nil

	case domain.EntityLead:
		l, err := s.Leads().GetForUpdate(ctx, id)
		if err != nil {
			return "", "", err
		}
		if l == nil {
			return "", "", domain.ErrNotFound
		}
		if l.ClosedAt != nil {
			return "", "", domain.NewValidationError("assignee_id", "el lead está cerrado")
		}
		previous = l.AssigneeID
		l.AssigneeID = assigneeID
		l.Touch(actor.ID, now)
		if err := s.Leads().Update(ctx, l); err != nil {
			return "", "", err
		}
		*result = dto.LeadFromEntity(l, now)
		return l.Number, previous, nil

	case domain.EntityDelivery:
		d, err := s.Deliveries().GetForUpdate(ctx, id)
		if err != nil {
			return "", "", err
		}
		if d == nil {
			return "", "", domain.ErrNotFound
		}
		if d.ClosedAt != nil {
			return "", "", domain.NewValidationError("assignee_id", "el domicilio está cerrado")
		}
		previous = d.AssigneeID
		d.AssigneeID = assigneeID
		d.Touch(actor.ID, now)
		if err := s.Deliveries().Update(ctx, d); err != nil {
			return "", "", err
		}
		*result = dto.DeliveryFromEntity(d)
		return d.Number, previous, nil
	}
	return "", "", domain.NewValidationError("entity_type", "el tipo no admite asignación: "+string(t))
}

func orNone(id string) string {
	if id == "" {
		return "(sin asignar)"
	}
	return id
}
