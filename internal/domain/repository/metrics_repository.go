package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals agregado de ventas en un rango.
type SalesTotals struct {
	Count   int
	Revenue decimal.Decimal
	Profit  decimal.Decimal // solo ventas con costo conocido
}

// StaffSalesRow ventas agregadas por actor creador.
type StaffSalesRow struct {
	ActorID string
	Name    string
	SalesTotals
}

// MetricsRepository consultas de solo lectura para el dashboard.
type MetricsRepository interface {
	// SalesTotals suma ventas con created_at en [from, to). ownerID "" = todas.
	SalesTotals(ctx context.Context, from, to time.Time, ownerID string) (SalesTotals, error)
	// SalesByStaff agrupa las ventas de [from, to) por creador, de mayor a menor ingreso.
	SalesByStaff(ctx context.Context, from, to time.Time) ([]StaffSalesRow, error)
}
