package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /api/dashboard.
// Los campos puntero se omiten cuando el rol del actor no tiene la capacidad correspondiente.
type DashboardResponse struct {
	Date string `json:"date"` // día calendario en la zona del local (YYYY-MM-DD)

	RevenueToday    decimal.Decimal  `json:"revenue_today"`
	ProfitToday     *decimal.Decimal `json:"profit_today,omitempty"` // solo owner
	SalesCountToday int              `json:"sales_count_today"`

	PendingTradeIns int `json:"pending_trade_ins"`
	ActiveRepairs   int `json:"active_repairs"`
	OverdueLeads    int `json:"overdue_leads"`
	OpenDeliveries  int `json:"open_deliveries"`

	PerStaff *[]StaffMetricsDTO `json:"per_staff,omitempty"` // owner y manager; puntero para distinguir ausente de vacío
}

// StaffMetricsDTO ventas de hoy de un miembro del personal.
type StaffMetricsDTO struct {
	ActorID    string           `json:"actor_id"`
	Name       string           `json:"name"`
	SalesCount int              `json:"sales_count"`
	Revenue    decimal.Decimal  `json:"revenue"`
	Profit     *decimal.Decimal `json:"profit,omitempty"` // solo owner
}
