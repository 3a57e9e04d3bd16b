package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus estados de un domicilio.
type DeliveryStatus string

const (
	DeliveryPending        DeliveryStatus = "pending"
	DeliveryOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryCompleted      DeliveryStatus = "completed"
	DeliveryFailed         DeliveryStatus = "failed"
)

// Delivery entrega a domicilio, opcionalmente ligada a una venta.
type Delivery struct {
	Workflow
	Status DeliveryStatus

	SaleID        string // "" si no proviene de una venta
	CustomerName  string
	CustomerPhone string
	Address       string
	ScheduledFor  *time.Time
	Fee           decimal.Decimal
	FailureReason string
}
