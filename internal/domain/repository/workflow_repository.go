package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
)

// ListFilter filtros comunes de listados. Limit 0 = sin límite (uso interno).
type ListFilter struct {
	// VisibleTo restringe a registros donde owner_id o assignee_id es el actor. "" = todos.
	VisibleTo   string
	Statuses    []string
	OverdueAt   *time.Time // solo leads: follow_up_date < OverdueAt
	CreatedFrom *time.Time // inclusivo
	CreatedTo   *time.Time // exclusivo
	Limit       int
	Offset      int
}

// TradeInRepository persistencia de trade-ins.
type TradeInRepository interface {
	Create(ctx context.Context, t *entity.TradeIn) error
	GetByID(ctx context.Context, id string) (*entity.TradeIn, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.TradeIn, error)
	Update(ctx context.Context, t *entity.TradeIn) error
	List(ctx context.Context, filter ListFilter) ([]*entity.TradeIn, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	// SerialExists busca el IMEI o serial entre trade-ins ya registrados.
	SerialExists(ctx context.Context, serial string) (bool, error)
}

// RepairRepository persistencia de reparaciones.
type RepairRepository interface {
	Create(ctx context.Context, r *entity.Repair) error
	GetByID(ctx context.Context, id string) (*entity.Repair, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Repair, error)
	Update(ctx context.Context, r *entity.Repair) error
	List(ctx context.Context, filter ListFilter) ([]*entity.Repair, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// LeadRepository persistencia de prospectos.
type LeadRepository interface {
	Create(ctx context.Context, l *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Lead, error)
	Update(ctx context.Context, l *entity.Lead) error
	List(ctx context.Context, filter ListFilter) ([]*entity.Lead, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// DeliveryRepository persistencia de domicilios.
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error)
	Update(ctx context.Context, d *entity.Delivery) error
	List(ctx context.Context, filter ListFilter) ([]*entity.Delivery, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// SaleRepository persistencia de ventas. Sin Update: las ventas son inmutables.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, filter ListFilter) ([]*entity.Sale, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}
