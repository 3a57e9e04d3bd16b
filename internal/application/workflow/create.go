package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	states "github.com/jhoicas/Phoneshop-api/internal/domain/workflow"
)

// create ejecuta el alta común: número consecutivo, inserción y evento "<tipo>.created",
// todo en una transacción. insert recibe el número ya reservado y la hora leída
// después de reservarlo, así el orden de números sigue el de created_at.
func (uc *UseCase) create(
	ctx context.Context,
	actor *entity.Actor,
	t domain.EntityType,
	id string,
	insert func(s repository.Store, number string, now time.Time) error,
) (string, time.Time, error) {
	var (
		number string
		now    time.Time
		ev     *entity.AuditEvent
	)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		var err error
		number, err = nextNumber(ctx, s, t)
		if err != nil {
			return err
		}
		now = uc.clock.Now()
		if err := insert(s, number, now); err != nil {
			return err
		}
		ev, err = uc.recorder.Record(ctx, s, audit.Entry{
			ActorID:    actor.ID,
			Action:     entity.EntityAction(t, entity.ActionCreated),
			EntityType: t,
			EntityID:   id,
			Detail:     number,
			At:         now,
		})
		return err
	})
	if err != nil {
		return "", time.Time{}, err
	}
	uc.recorder.Committed(ev)
	uc.metrics.EntityCreated(t)
	uc.log.Info().
		Str("actor_id", actor.ID).
		Str("entity_type", string(t)).
		Str("entity_id", id).
		Str("number", number).
		Msg("registro creado")
	return number, now, nil
}

func newWorkflow(actor *entity.Actor, assigneeID string) entity.Workflow {
	return entity.Workflow{
		ID:         uuid.New().String(),
		OwnerID:    actor.ID,
		AssigneeID: assigneeID,
		UpdatedBy:  actor.ID,
	}
}

// stamp fija las fechas de alta de un registro.
func stamp(w *entity.Workflow, now time.Time) {
	w.CreatedAt = now
	w.UpdatedAt = now
}

// CreateTradeIn registra un equipo usado en estado pending.
func (uc *UseCase) CreateTradeIn(ctx context.Context, actor *entity.Actor, in dto.CreateTradeInRequest) (*dto.TradeInResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := nonNegative("base_value", in.BaseValue); err != nil {
		return nil, err
	}
	score := 100
	if in.ConditionScore != nil {
		score = *in.ConditionScore
	}
	offer := in.BaseValue.Mul(decimal.NewFromInt(int64(score))).Div(decimal.NewFromInt(100)).Round(2)
	if in.CalculatedOffer != nil {
		if err := nonNegative("calculated_offer", *in.CalculatedOffer); err != nil {
			return nil, err
		}
		offer = *in.CalculatedOffer
	}

	ti := &entity.TradeIn{
		Workflow:        newWorkflow(actor, ""),
		Status:          states.TradeIn.Initial(),
		Brand:           strings.TrimSpace(in.Brand),
		Model:           strings.TrimSpace(in.Model),
		Storage:         in.Storage,
		Color:           in.Color,
		IMEI:            strings.TrimSpace(in.IMEI),
		SerialNumber:    strings.TrimSpace(in.SerialNumber),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   in.CustomerPhone,
		CustomerEmail:   in.CustomerEmail,
		BaseValue:       in.BaseValue,
		ConditionScore:  score,
		CalculatedOffer: offer,
	}
	number, _, err := uc.create(ctx, actor, domain.EntityTradeIn, ti.ID, func(s repository.Store, number string, now time.Time) error {
		stamp(&ti.Workflow, now)
		ti.Number = number
		return s.TradeIns().Create(ctx, ti)
	})
	if err != nil {
		return nil, err
	}
	ti.Number = number
	out := dto.TradeInFromEntity(ti)
	return &out, nil
}

// CreateRepair abre una orden de reparación en estado received.
func (uc *UseCase) CreateRepair(ctx context.Context, actor *entity.Actor, in dto.CreateRepairRequest) (*dto.RepairResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := nonNegative("repair_cost", in.RepairCost); err != nil {
		return nil, err
	}
	if err := nonNegative("parts_cost", in.PartsCost); err != nil {
		return nil, err
	}

	r := &entity.Repair{
		Workflow:         newWorkflow(actor, in.AssigneeID),
		Status:           states.Repair.Initial(),
		DeviceBrand:      strings.TrimSpace(in.DeviceBrand),
		DeviceModel:      strings.TrimSpace(in.DeviceModel),
		DeviceSerial:     strings.TrimSpace(in.DeviceSerial),
		CustomerName:     strings.TrimSpace(in.CustomerName),
		CustomerPhone:    in.CustomerPhone,
		IssueDescription: in.IssueDescription,
	}
	r.SetCosts(in.RepairCost, in.PartsCost)

	number, _, err := uc.create(ctx, actor, domain.EntityRepair, r.ID, func(s repository.Store, number string, now time.Time) error {
		stamp(&r.Workflow, now)
		if err := checkAssignee(ctx, s, actor, in.AssigneeID); err != nil {
			return err
		}
		r.Number = number
		return s.Repairs().Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	r.Number = number
	out := dto.RepairFromEntity(r)
	return &out, nil
}

// CreateLead registra un prospecto en estado new.
func (uc *UseCase) CreateLead(ctx context.Context, actor *entity.Actor, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := nonNegative("estimated_value", in.EstimatedValue); err != nil {
		return nil, err
	}

	l := &entity.Lead{
		Workflow:       newWorkflow(actor, in.AssigneeID),
		Status:         states.Lead.Initial(),
		CustomerName:   strings.TrimSpace(in.CustomerName),
		CustomerPhone:  in.CustomerPhone,
		CustomerEmail:  in.CustomerEmail,
		Interest:       in.Interest,
		Source:         in.Source,
		Notes:          in.Notes,
		EstimatedValue: in.EstimatedValue,
		FollowUpDate:   in.FollowUpDate,
	}
	number, now, err := uc.create(ctx, actor, domain.EntityLead, l.ID, func(s repository.Store, number string, now time.Time) error {
		stamp(&l.Workflow, now)
		if err := checkAssignee(ctx, s, actor, in.AssigneeID); err != nil {
			return err
		}
		l.Number = number
		return s.Leads().Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	l.Number = number
	out := dto.LeadFromEntity(l, now)
	return &out, nil
}

// CreateDelivery programa un domicilio en estado pending. SaleID, si viene, debe existir.
func (uc *UseCase) CreateDelivery(ctx context.Context, actor *entity.Actor, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := nonNegative("fee", in.Fee); err != nil {
		return nil, err
	}

	d := &entity.Delivery{
		Workflow:      newWorkflow(actor, in.AssigneeID),
		Status:        states.Delivery.Initial(),
		SaleID:        in.SaleID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: in.CustomerPhone,
		Address:       strings.TrimSpace(in.Address),
		ScheduledFor:  in.ScheduledFor,
		Fee:           in.Fee,
	}
	number, _, err := uc.create(ctx, actor, domain.EntityDelivery, d.ID, func(s repository.Store, number string, now time.Time) error {
		stamp(&d.Workflow, now)
		if err := checkAssignee(ctx, s, actor, in.AssigneeID); err != nil {
			return err
		}
		if d.SaleID != "" {
			sale, err := s.Sales().GetByID(ctx, d.SaleID)
			if err != nil {
				return err
			}
			if sale == nil {
				return domain.NewValidationError("sale_id", "la venta no existe")
			}
		}
		d.Number = number
		return s.Deliveries().Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	d.Number = number
	out := dto.DeliveryFromEntity(d)
	return &out, nil
}

// CreateSale registra una venta. Profit = total - qty*cost (0 si el costo es desconocido).
func (uc *UseCase) CreateSale(ctx context.Context, actor *entity.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := nonNegative("unit_price", in.UnitPrice); err != nil {
		return nil, err
	}
	if in.CostPrice != nil {
		if err := nonNegative("cost_price", *in.CostPrice); err != nil {
			return nil, err
		}
	}

	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		name = in.ProductID
	}
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		ProductID:     strings.TrimSpace(in.ProductID),
		ProductName:   name,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		CostPrice:     in.CostPrice,
		PaymentMethod: in.PaymentMethod,
		OwnerID:       actor.ID,
	}
	sale.ComputeAmounts()

	number, _, err := uc.create(ctx, actor, domain.EntitySale, sale.ID, func(s repository.Store, number string, now time.Time) error {
		sale.CreatedAt = now
		sale.Number = number
		return s.Sales().Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	sale.Number = number
	out := dto.SaleFromEntity(sale, domain.CanViewFinancials(actor.Role))
	return &out, nil
}
