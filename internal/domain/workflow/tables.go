package workflow

import (
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
)

// TradeIn: pending -> {approved, rejected}; approved -> paid_out.
var TradeIn = newMachine(domain.EntityTradeIn, entity.TradeInPending, map[entity.TradeInStatus][]entity.TradeInStatus{
	entity.TradeInPending:  {entity.TradeInApproved, entity.TradeInRejected},
	entity.TradeInApproved: {entity.TradeInPaidOut},
	entity.TradeInRejected: {},
	entity.TradeInPaidOut:  {},
})

// Repair: received -> diagnosing -> {awaiting_parts, in_progress} -> completed.
// awaiting_parts -> in_progress cuando llegan los repuestos. Cualquier estado abierto -> cancelled.
var Repair = newMachine(domain.EntityRepair, entity.RepairReceived, map[entity.RepairStatus][]entity.RepairStatus{
	entity.RepairReceived:      {entity.RepairDiagnosing, entity.RepairCancelled},
	entity.RepairDiagnosing:    {entity.RepairAwaitingParts, entity.RepairInProgress, entity.RepairCancelled},
	entity.RepairAwaitingParts: {entity.RepairInProgress, entity.RepairCompleted, entity.RepairCancelled},
	entity.RepairInProgress:    {entity.RepairCompleted, entity.RepairCancelled},
	entity.RepairCompleted:     {},
	entity.RepairCancelled:     {},
})

// Lead: new -> contacted -> follow_up -> {converted, lost}; follow_up se repite con nueva fecha.
var Lead = newMachine(domain.EntityLead, entity.LeadNew, map[entity.LeadStatus][]entity.LeadStatus{
	entity.LeadNew:       {entity.LeadContacted},
	entity.LeadContacted: {entity.LeadFollowUp},
	entity.LeadFollowUp:  {entity.LeadFollowUp, entity.LeadConverted, entity.LeadLost},
	entity.LeadConverted: {},
	entity.LeadLost:      {},
})

// Delivery: pending -> out_for_delivery -> completed; failed desde cualquier estado abierto.
var Delivery = newMachine(domain.EntityDelivery, entity.DeliveryPending, map[entity.DeliveryStatus][]entity.DeliveryStatus{
	entity.DeliveryPending:        {entity.DeliveryOutForDelivery, entity.DeliveryFailed},
	entity.DeliveryOutForDelivery: {entity.DeliveryCompleted, entity.DeliveryFailed},
	entity.DeliveryCompleted:      {},
	entity.DeliveryFailed:         {},
})
