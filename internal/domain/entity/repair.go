package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepairStatus estados de una orden de reparación.
type RepairStatus string

const (
	RepairReceived      RepairStatus = "received"
	RepairDiagnosing    RepairStatus = "diagnosing"
	RepairAwaitingParts RepairStatus = "awaiting_parts"
	RepairInProgress    RepairStatus = "in_progress"
	RepairCompleted     RepairStatus = "completed"
	RepairCancelled     RepairStatus = "cancelled"
)

// Repair orden de reparación de un equipo de cliente.
type Repair struct {
	Workflow
	Status RepairStatus

	DeviceBrand  string
	DeviceModel  string
	DeviceSerial string

	CustomerName     string
	CustomerPhone    string
	IssueDescription string
	Diagnosis        string

	RepairCost decimal.Decimal
	PartsCost  decimal.Decimal
	TotalCost  decimal.Decimal // RepairCost + PartsCost

	CompletedAt *time.Time
	CompletedBy string
}

// SetCosts actualiza mano de obra y repuestos manteniendo TotalCost.
func (r *Repair) SetCosts(repair, parts decimal.Decimal) {
	r.RepairCost = repair
	r.PartsCost = parts
	r.TotalCost = repair.Add(parts)
}
