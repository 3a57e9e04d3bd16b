package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeInStatus estados de un trade-in (recepción de equipo usado).
type TradeInStatus string

const (
	TradeInPending  TradeInStatus = "pending"
	TradeInApproved TradeInStatus = "approved"
	TradeInRejected TradeInStatus = "rejected"
	TradeInPaidOut  TradeInStatus = "paid_out"
)

// Métodos de pago al cliente en trade-in.
const (
	PayoutCash        = "cash"
	PayoutStoreCredit = "store_credit"
	PayoutTransfer    = "transfer"
)

// TradeIn equipo recibido de un cliente a cambio de dinero o crédito.
// FinalOffer, ReviewedBy y ReviewedAt se fijan solo en la revisión
// (pending -> approved|rejected) y no cambian después.
type TradeIn struct {
	Workflow
	Status TradeInStatus

	Brand        string
	Model        string
	Storage      string
	Color        string
	IMEI         string
	SerialNumber string

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	BaseValue       decimal.Decimal
	ConditionScore  int // 0..100
	CalculatedOffer decimal.Decimal
	FinalOffer      *decimal.Decimal
	PayoutMethod    string

	ReviewedBy string
	ReviewedAt *time.Time
}
