package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago de una venta.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Sale registro financiero terminal: se crea una vez y no transita estados.
type Sale struct {
	ID            string
	Number        string
	ProductID     string // "" para productos fuera de catálogo
	ProductName   string
	CustomerName  string
	Quantity      int
	UnitPrice     decimal.Decimal
	CostPrice     *decimal.Decimal // nil = costo desconocido
	TotalPrice    decimal.Decimal
	Profit        decimal.Decimal
	PaymentMethod string
	OwnerID       string
	CreatedAt     time.Time
}

// ComputeAmounts fija TotalPrice = qty*unit y Profit = total - qty*cost (0 sin costo).
func (s *Sale) ComputeAmounts() {
	qty := decimal.NewFromInt(int64(s.Quantity))
	s.TotalPrice = qty.Mul(s.UnitPrice)
	s.Profit = decimal.Zero
	if s.CostPrice != nil {
		s.Profit = s.TotalPrice.Sub(qty.Mul(*s.CostPrice))
	}
}

// HasKnownCost informa si la utilidad de la venta es calculable.
func (s *Sale) HasKnownCost() bool { return s.CostPrice != nil }
