package dto

import (
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
)

// ActorFromEntity convierte un actor a su representación pública.
func ActorFromEntity(a *entity.Actor) ActorResponse {
	return ActorResponse{
		ID:        a.ID,
		Username:  a.Username,
		Name:      a.Name,
		Role:      string(a.Role),
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AuditEventFromEntity convierte un evento de auditoría.
func AuditEventFromEntity(e *entity.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		ID:         e.Seq,
		ActorID:    e.ActorID,
		Action:     e.Action,
		EntityType: string(e.EntityType),
		EntityID:   e.EntityID,
		Detail:     e.Detail,
		CreatedAt:  e.CreatedAt,
	}
}

func workflowFields(w entity.Workflow, status string) WorkflowFields {
	return WorkflowFields{
		ID:         w.ID,
		Number:     w.Number,
		Status:     status,
		OwnerID:    w.OwnerID,
		AssigneeID: w.AssigneeID,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
		UpdatedBy:  w.UpdatedBy,
		ClosedAt:   w.ClosedAt,
		ClosedBy:   w.ClosedBy,
	}
}

// TradeInFromEntity convierte un trade-in.
func TradeInFromEntity(t *entity.TradeIn) TradeInResponse {
	return TradeInResponse{
		WorkflowFields:  workflowFields(t.Workflow, string(t.Status)),
		Brand:           t.Brand,
		Model:           t.Model,
		Storage:         t.Storage,
		Color:           t.Color,
		IMEI:            t.IMEI,
		SerialNumber:    t.SerialNumber,
		CustomerName:    t.CustomerName,
		CustomerPhone:   t.CustomerPhone,
		CustomerEmail:   t.CustomerEmail,
		BaseValue:       t.BaseValue,
		ConditionScore:  t.ConditionScore,
		CalculatedOffer: t.CalculatedOffer,
		FinalOffer:      t.FinalOffer,
		PayoutMethod:    t.PayoutMethod,
		ReviewedBy:      t.ReviewedBy,
		ReviewedAt:      t.ReviewedAt,
	}
}

// RepairFromEntity convierte una reparación.
func RepairFromEntity(r *entity.Repair) RepairResponse {
	return RepairResponse{
		WorkflowFields:   workflowFields(r.Workflow, string(r.Status)),
		DeviceBrand:      r.DeviceBrand,
		DeviceModel:      r.DeviceModel,
		DeviceSerial:     r.DeviceSerial,
		CustomerName:     r.CustomerName,
		CustomerPhone:    r.CustomerPhone,
		IssueDescription: r.IssueDescription,
		Diagnosis:        r.Diagnosis,
		RepairCost:       r.RepairCost,
		PartsCost:        r.PartsCost,
		TotalCost:        r.TotalCost,
		CompletedAt:      r.CompletedAt,
		CompletedBy:      r.CompletedBy,
	}
}

// LeadFromEntity convierte un prospecto; now decide si está vencido.
func LeadFromEntity(l *entity.Lead, now time.Time) LeadResponse {
	return LeadResponse{
		WorkflowFields: workflowFields(l.Workflow, string(l.Status)),
		CustomerName:   l.CustomerName,
		CustomerPhone:  l.CustomerPhone,
		CustomerEmail:  l.CustomerEmail,
		Interest:       l.Interest,
		Source:         l.Source,
		Notes:          l.Notes,
		EstimatedValue: l.EstimatedValue,
		FollowUpDate:   l.FollowUpDate,
		Overdue:        l.IsOverdue(now),
	}
}

// DeliveryFromEntity convierte un domicilio.
func DeliveryFromEntity(d *entity.Delivery) DeliveryResponse {
	return DeliveryResponse{
		WorkflowFields: workflowFields(d.Workflow, string(d.Status)),
		SaleID:         d.SaleID,
		CustomerName:   d.CustomerName,
		CustomerPhone:  d.CustomerPhone,
		Address:        d.Address,
		ScheduledFor:   d.ScheduledFor,
		Fee:            d.Fee,
		FailureReason:  d.FailureReason,
	}
}

// SaleFromEntity convierte una venta. Sin financials se omiten costo y utilidad.
func SaleFromEntity(s *entity.Sale, financials bool) SaleResponse {
	out := SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		CustomerName:  s.CustomerName,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice,
		TotalPrice:    s.TotalPrice,
		PaymentMethod: s.PaymentMethod,
		OwnerID:       s.OwnerID,
		CreatedAt:     s.CreatedAt,
	}
	if financials {
		out.CostPrice = s.CostPrice
		profit := s.Profit
		out.Profit = &profit
	}
	return out
}
