package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	states "github.com/jhoicas/Phoneshop-api/internal/domain/workflow"
)

// outcome resultado de evaluar una transición dentro de la transacción.
type outcome struct {
	from, to string
	repeated bool
}

// Transition despacha por tipo y devuelve el DTO del registro resultante.
func (uc *UseCase) Transition(ctx context.Context, actor *entity.Actor, t domain.EntityType, id string, in dto.TransitionRequest) (any, error) {
	switch t {
	case domain.EntityTradeIn:
		return uc.TransitionTradeIn(ctx, actor, id, in)
	case domain.EntityRepair:
		return uc.TransitionRepair(ctx, actor, id, in)
	case domain.EntityLead:
		return uc.TransitionLead(ctx, actor, id, in)
	case domain.EntityDelivery:
		return uc.TransitionDelivery(ctx, actor, id, in)
	}
	return nil, domain.NewValidationError("entity_type", "el tipo no tiene estados: "+string(t))
}

// runTransition encapsula la disciplina común: lock de la fila, auditoría en la
// misma transacción y métricas tras el Commit. step decide y aplica el cambio.
func (uc *UseCase) runTransition(
	ctx context.Context,
	actor *entity.Actor,
	t domain.EntityType,
	id string,
	in dto.TransitionRequest,
	step func(s repository.Store, now time.Time) (number string, o outcome, err error),
) error {
	if err := actor.EnsureActive(); err != nil {
		return err
	}
	if err := dto.Validate(in); err != nil {
		return err
	}

	var (
		o  outcome
		ev *entity.AuditEvent
	)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		now := uc.clock.Now()
		number, res, err := step(s, now)
		if err != nil {
			return err
		}
		o = res
		action := entity.ActionTransitioned
		if o.repeated {
			action = entity.ActionTransitionRepeated
		}
		ev, err = uc.recorder.Record(ctx, s, audit.Entry{
			ActorID:    actor.ID,
			Action:     entity.EntityAction(t, action),
			EntityType: t,
			EntityID:   id,
			Detail:     transitionDetail(number, o.from, o.to, strings.TrimSpace(in.Note)),
			At:         now,
		})
		return err
	})
	if err != nil {
		var te *domain.TransitionError
		if errors.As(err, &te) {
			uc.metrics.TransitionRejected(t, "invalid_transition")
		} else if errors.Is(err, domain.ErrForbidden) {
			uc.metrics.TransitionRejected(t, "forbidden")
		}
		return err
	}
	uc.recorder.Committed(ev)
	if !o.repeated {
		uc.metrics.Transitioned(t, o.from, o.to)
	}
	uc.log.Info().
		Str("actor_id", actor.ID).
		Str("entity_type", string(t)).
		Str("entity_id", id).
		Str("from", o.from).
		Str("status", o.to).
		Bool("repeated", o.repeated).
		Msg("transición")
	return nil
}

// TransitionTradeIn revisa (approved/rejected, requiere CanAssignWork) o paga (paid_out) un trade-in.
func (uc *UseCase) TransitionTradeIn(ctx context.Context, actor *entity.Actor, id string, in dto.TransitionRequest) (*dto.TradeInResponse, error) {
	var ti *entity.TradeIn
	err := uc.runTransition(ctx, actor, domain.EntityTradeIn, id, in, func(s repository.Store, now time.Time) (string, outcome, error) {
		var err error
		ti, err = s.TradeIns().GetForUpdate(ctx, id)
		if err != nil {
			return "", outcome{}, err
		}
		if ti == nil {
			return "", outcome{}, domain.ErrNotFound
		}
		if !actor.CanSee(ti.OwnerID, ti.AssigneeID) {
			return "", outcome{}, domain.ErrForbidden
		}
		to, err := states.TradeIn.Parse(in.Status)
		if err != nil {
			return "", outcome{}, err
		}
		review := to == entity.TradeInApproved || to == entity.TradeInRejected
		if review && !domain.CanAssignWork(actor.Role) {
			return "", outcome{}, domain.ErrForbidden
		}
		o := outcome{from: string(ti.Status), to: string(to)}
		if to == ti.Status {
			o.repeated = true
			return ti.Number, o, nil
		}
		if err := states.TradeIn.Check(ti.Status, to); err != nil {
			return "", outcome{}, err
		}

		switch to {
		case entity.TradeInApproved, entity.TradeInRejected:
			offer := ti.CalculatedOffer
			if in.FinalOffer != nil {
				if err := nonNegative("final_offer", *in.FinalOffer); err != nil {
					return "", outcome{}, err
				}
				offer = *in.FinalOffer
			}
			if to == entity.TradeInApproved {
				ti.FinalOffer = &offer
			}
			reviewed := now
			ti.ReviewedBy = actor.ID
			ti.ReviewedAt = &reviewed
		case entity.TradeInPaidOut:
			if in.PayoutMethod == "" {
				return "", outcome{}, domain.NewValidationError("payout_method", "es obligatorio al pagar")
			}
			ti.PayoutMethod = in.PayoutMethod
		}
		ti.Status = to
		ti.Touch(actor.ID, now)
		if states.TradeIn.IsTerminal(to) {
			ti.Close(actor.ID, now)
		}
		return ti.Number, o, s.TradeIns().Update(ctx, ti)
	})
	if err != nil {
		return nil, err
	}
	out := dto.TradeInFromEntity(ti)
	return &out, nil
}

// TransitionRepair avanza una reparación. Diagnosis y costos del payload se aplican
// en cualquier transición mientras la orden siga abierta.
func (uc *UseCase) TransitionRepair(ctx context.Context, actor *entity.Actor, id string, in dto.TransitionRequest) (*dto.RepairResponse, error) {
	var r *entity.Repair
	err := uc.runTransition(ctx, actor, domain.EntityRepair, id, in, func(s repository.Store, now time.Time) (string, outcome, error) {
		var err error
		r, err = s.Repairs().GetForUpdate(ctx, id)
		if err != nil {
			return "", outcome{}, err
		}
		if r == nil {
			return "", outcome{}, domain.ErrNotFound
		}
		if !actor.CanSee(r.OwnerID, r.AssigneeID) {
			return "", outcome{}, domain.ErrForbidden
		}
		to, err := states.Repair.Parse(in.Status)
		if err != nil {
			return "", outcome{}, err
		}
		o := outcome{from: string(r.Status), to: string(to)}
		if to == r.Status {
			o.repeated = true
			return r.Number, o, nil
		}
		if err := states.Repair.Check(r.Status, to); err != nil {
			return "", outcome{}, err
		}

		if in.Diagnosis != nil {
			r.Diagnosis = strings.TrimSpace(*in.Diagnosis)
		}
		if in.RepairCost != nil || in.PartsCost != nil {
			labor, parts := r.RepairCost, r.PartsCost
			if in.RepairCost != nil {
				labor = *in.RepairCost
			}
			if in.PartsCost != nil {
				parts = *in.PartsCost
			}
			if err := nonNegative("repair_cost", labor); err != nil {
				return "", outcome{}, err
			}
			if err := nonNegative("parts_cost", parts); err != nil {
				return "", outcome{}, err
			}
			r.SetCosts(labor, parts)
		}
		if to == entity.RepairCompleted {
			done := now
			r.CompletedAt = &done
			r.CompletedBy = actor.ID
		}
		r.Status = to
		r.Touch(actor.ID, now)
		if states.Repair.IsTerminal(to) {
			r.Close(actor.ID, now)
		}
		return r.Number, o, s.Repairs().Update(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	out := dto.RepairFromEntity(r)
	return &out, nil
}

// TransitionLead avanza un prospecto. follow_up -> follow_up reprograma el
// seguimiento y exige follow_up_date; sin fecha se trata como repetición.
func (uc *UseCase) TransitionLead(ctx context.Context, actor *entity.Actor, id string, in dto.TransitionRequest) (*dto.LeadResponse, error) {
	var (
		l   *entity.Lead
		now time.Time
	)
	err := uc.runTransition(ctx, actor, domain.EntityLead, id, in, func(s repository.Store, at time.Time) (string, outcome, error) {
		now = at
		var err error
		l, err = s.Leads().GetForUpdate(ctx, id)
		if err != nil {
			return "", outcome{}, err
		}
		if l == nil {
			return "", outcome{}, domain.ErrNotFound
		}
		if !actor.CanSee(l.OwnerID, l.AssigneeID) {
			return "", outcome{}, domain.ErrForbidden
		}
		to, err := states.Lead.Parse(in.Status)
		if err != nil {
			return "", outcome{}, err
		}
		o := outcome{from: string(l.Status), to: string(to)}
		reschedule := to == entity.LeadFollowUp && l.Status == entity.LeadFollowUp && in.FollowUpDate != nil
		if to == l.Status && !reschedule {
			o.repeated = true
			return l.Number, o, nil
		}
		if err := states.Lead.Check(l.Status, to); err != nil {
			return "", outcome{}, err
		}

		if to == entity.LeadFollowUp && in.FollowUpDate != nil {
			d := *in.FollowUpDate
			l.FollowUpDate = &d
		}
		l.Status = to
		l.Touch(actor.ID, now)
		if states.Lead.IsTerminal(to) {
			l.Close(actor.ID, now)
		}
		return l.Number, o, s.Leads().Update(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	out := dto.LeadFromEntity(l, now)
	return &out, nil
}

// TransitionDelivery avanza un domicilio. failed exige failure_reason.
func (uc *UseCase) TransitionDelivery(ctx context.Context, actor *entity.Actor, id string, in dto.TransitionRequest) (*dto.DeliveryResponse, error) {
	var d *entity.Delivery
	err := uc.runTransition(ctx, actor, domain.EntityDelivery, id, in, func(s repository.Store, now time.Time) (string, outcome, error) {
		var err error
		d, err = s.Deliveries().GetForUpdate(ctx, id)
		if err != nil {
			return "", outcome{}, err
		}
		if d == nil {
			return "", outcome{}, domain.ErrNotFound
		}
		if !actor.CanSee(d.OwnerID, d.AssigneeID) {
			return "", outcome{}, domain.ErrForbidden
		}
		to, err := states.Delivery.Parse(in.Status)
		if err != nil {
			return "", outcome{}, err
		}
		o := outcome{from: string(d.Status), to: string(to)}
		if to == d.Status {
			o.repeated = true
			return d.Number, o, nil
		}
		if err := states.Delivery.Check(d.Status, to); err != nil {
			return "", outcome{}, err
		}

		if to == entity.DeliveryFailed {
			reason := strings.TrimSpace(in.FailureReason)
			if reason == "" {
				return "", outcome{}, domain.NewValidationError("failure_reason", "es obligatorio al marcar failed")
			}
			d.FailureReason = reason
		}
		d.Status = to
		d.Touch(actor.ID, now)
		if states.Delivery.IsTerminal(to) {
			d.Close(actor.ID, now)
		}
		return d.Number, o, s.Deliveries().Update(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	out := dto.DeliveryFromEntity(d)
	return &out, nil
}
