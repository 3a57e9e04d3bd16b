package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Peticiones de creación ───────────────────────────────────────────────────

// CreateTradeInRequest recepción de un equipo usado.
// Si CalculatedOffer no viene se calcula como base_value * condition_score / 100.
type CreateTradeInRequest struct {
	Brand           string           `json:"brand" validate:"required,max=100"`
	Model           string           `json:"model" validate:"required,max=100"`
	Storage         string           `json:"storage" validate:"max=50"`
	Color           string           `json:"color" validate:"max=50"`
	IMEI            string           `json:"imei" validate:"max=50"`
	SerialNumber    string           `json:"serial_number" validate:"max=100"`
	CustomerName    string           `json:"customer_name" validate:"required,max=200"`
	CustomerPhone   string           `json:"customer_phone" validate:"max=50"`
	CustomerEmail   string           `json:"customer_email" validate:"omitempty,email"`
	BaseValue       decimal.Decimal  `json:"base_value"`
	ConditionScore  *int             `json:"condition_score" validate:"omitempty,min=0,max=100"`
	CalculatedOffer *decimal.Decimal `json:"calculated_offer"`
}

// CreateRepairRequest alta de una orden de reparación.
type CreateRepairRequest struct {
	DeviceBrand      string          `json:"device_brand" validate:"required,max=100"`
	DeviceModel      string          `json:"device_model" validate:"required,max=100"`
	DeviceSerial     string          `json:"device_serial" validate:"max=100"`
	CustomerName     string          `json:"customer_name" validate:"required,max=200"`
	CustomerPhone    string          `json:"customer_phone" validate:"max=50"`
	IssueDescription string          `json:"issue_description" validate:"required,max=2000"`
	RepairCost       decimal.Decimal `json:"repair_cost"`
	PartsCost        decimal.Decimal `json:"parts_cost"`
	AssigneeID       string          `json:"assignee_id" validate:"omitempty,uuid"`
}

// CreateLeadRequest alta de un prospecto.
type CreateLeadRequest struct {
	CustomerName   string          `json:"customer_name" validate:"required,max=200"`
	CustomerPhone  string          `json:"customer_phone" validate:"max=50"`
	CustomerEmail  string          `json:"customer_email" validate:"omitempty,email"`
	Interest       string          `json:"interest" validate:"max=200"`
	Source         string          `json:"source" validate:"max=50"`
	Notes          string          `json:"notes" validate:"max=2000"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	FollowUpDate   *time.Time      `json:"follow_up_date"`
	AssigneeID     string          `json:"assignee_id" validate:"omitempty,uuid"`
}

// CreateDeliveryRequest alta de un domicilio.
type CreateDeliveryRequest struct {
	SaleID        string          `json:"sale_id" validate:"omitempty,uuid"`
	CustomerName  string          `json:"customer_name" validate:"required,max=200"`
	CustomerPhone string          `json:"customer_phone" validate:"max=50"`
	Address       string          `json:"address" validate:"required,max=500"`
	ScheduledFor  *time.Time      `json:"scheduled_for"`
	Fee           decimal.Decimal `json:"fee"`
	AssigneeID    string          `json:"assignee_id" validate:"omitempty,uuid"`
}

// CreateSaleRequest registro de una venta. ProductName es obligatorio si no hay ProductID.
type CreateSaleRequest struct {
	ProductID     string           `json:"product_id" validate:"max=100"`
	ProductName   string           `json:"product_name" validate:"required_without=ProductID,max=200"`
	CustomerName  string           `json:"customer_name" validate:"max=200"`
	Quantity      int              `json:"quantity" validate:"required,min=1"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	PaymentMethod string           `json:"payment_method" validate:"required,oneof=cash card transfer"`
}

// ── Mutaciones ───────────────────────────────────────────────────────────────

// TransitionRequest cambio de estado. Los campos opcionales aplican según el tipo:
// trade-in (final_offer al revisar, payout_method al pagar), reparación
// (diagnosis, repair_cost, parts_cost), lead (follow_up_date), domicilio (failure_reason).
type TransitionRequest struct {
	Status        string           `json:"status" validate:"required,max=50"`
	Note          string           `json:"note" validate:"max=1000"`
	FinalOffer    *decimal.Decimal `json:"final_offer"`
	PayoutMethod  string           `json:"payout_method" validate:"omitempty,oneof=cash store_credit transfer"`
	Diagnosis     *string          `json:"diagnosis" validate:"omitempty,max=2000"`
	RepairCost    *decimal.Decimal `json:"repair_cost"`
	PartsCost     *decimal.Decimal `json:"parts_cost"`
	FollowUpDate  *time.Time       `json:"follow_up_date"`
	FailureReason string           `json:"failure_reason" validate:"max=1000"`
}

// AssignRequest cambio de asignación. AssigneeID vacío libera el registro.
type AssignRequest struct {
	AssigneeID string `json:"assignee_id" validate:"omitempty,uuid"`
}

// ListRequest filtros de los listados por tipo.
// From/To acotan created_at: RFC3339, o AAAA-MM-DD en la zona del local
// (To como fecha incluye ese día completo).
type ListRequest struct {
	Status      string `query:"status" validate:"max=50"`
	OverdueOnly bool   `query:"overdue"`
	From        string `query:"from" validate:"max=40"`
	To          string `query:"to" validate:"max=40"`
	PageRequest
}

// SerialCheckResponse resultado de la verificación de IMEI/serial duplicado.
type SerialCheckResponse struct {
	Serial      string `json:"serial"`
	IsDuplicate bool   `json:"is_duplicate"`
	Warning     string `json:"warning,omitempty"`
}

// ── Respuestas ───────────────────────────────────────────────────────────────

// WorkflowFields campos comunes de todo registro con ciclo de vida.
type WorkflowFields struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	Status     string     `json:"status"`
	OwnerID    string     `json:"owner_id"`
	AssigneeID string     `json:"assignee_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	UpdatedBy  string     `json:"updated_by"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	ClosedBy   string     `json:"closed_by,omitempty"`
}

// TradeInResponse salida de un trade-in.
type TradeInResponse struct {
	WorkflowFields
	Brand           string           `json:"brand"`
	Model           string           `json:"model"`
	Storage         string           `json:"storage,omitempty"`
	Color           string           `json:"color,omitempty"`
	IMEI            string           `json:"imei,omitempty"`
	SerialNumber    string           `json:"serial_number,omitempty"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone,omitempty"`
	CustomerEmail   string           `json:"customer_email,omitempty"`
	BaseValue       decimal.Decimal  `json:"base_value"`
	ConditionScore  int              `json:"condition_score"`
	CalculatedOffer decimal.Decimal  `json:"calculated_offer"`
	FinalOffer      *decimal.Decimal `json:"final_offer,omitempty"`
	PayoutMethod    string           `json:"payout_method,omitempty"`
	ReviewedBy      string           `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
}

// RepairResponse salida de una reparación.
type RepairResponse struct {
	WorkflowFields
	DeviceBrand      string          `json:"device_brand"`
	DeviceModel      string          `json:"device_model"`
	DeviceSerial     string          `json:"device_serial,omitempty"`
	CustomerName     string          `json:"customer_name"`
	CustomerPhone    string          `json:"customer_phone,omitempty"`
	IssueDescription string          `json:"issue_description"`
	Diagnosis        string          `json:"diagnosis,omitempty"`
	RepairCost       decimal.Decimal `json:"repair_cost"`
	PartsCost        decimal.Decimal `json:"parts_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CompletedBy      string          `json:"completed_by,omitempty"`
}

// LeadResponse salida de un prospecto. Overdue se calcula al momento de la consulta.
type LeadResponse struct {
	WorkflowFields
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone,omitempty"`
	CustomerEmail  string          `json:"customer_email,omitempty"`
	Interest       string          `json:"interest,omitempty"`
	Source         string          `json:"source,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	FollowUpDate   *time.Time      `json:"follow_up_date,omitempty"`
	Overdue        bool            `json:"overdue"`
}

// DeliveryResponse salida de un domicilio.
type DeliveryResponse struct {
	WorkflowFields
	SaleID        string          `json:"sale_id,omitempty"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Address       string          `json:"address"`
	ScheduledFor  *time.Time      `json:"scheduled_for,omitempty"`
	Fee           decimal.Decimal `json:"fee"`
	FailureReason string          `json:"failure_reason,omitempty"`
}

// SaleResponse salida de una venta. CostPrice y Profit solo para roles con acceso financiero.
type SaleResponse struct {
	ID            string           `json:"id"`
	Number        string           `json:"number"`
	ProductID     string           `json:"product_id,omitempty"`
	ProductName   string           `json:"product_name"`
	CustomerName  string           `json:"customer_name,omitempty"`
	Quantity      int              `json:"quantity"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	TotalPrice    decimal.Decimal  `json:"total_price"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty"`
	Profit        *decimal.Decimal `json:"profit,omitempty"`
	PaymentMethod string           `json:"payment_method"`
	OwnerID       string           `json:"owner_id"`
	CreatedAt     time.Time        `json:"created_at"`
}
