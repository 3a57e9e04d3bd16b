// Package visibility es el lado de lectura: detalle, listados acotados por rol,
// verificación de seriales y métricas del dashboard. Toda lectura aplica la
// misma regla: roles con CanViewAllEntities ven todo; el resto solo registros
// donde es creador o asignado.
package visibility

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	states "github.com/jhoicas/Phoneshop-api/internal/domain/workflow"
	"github.com/jhoicas/Phoneshop-api/pkg/clock"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// UseCase consultas acotadas por rol.
type UseCase struct {
	store repository.Store
	clock clock.Clock
	loc   *time.Location
	log   *logger.Logger
}

// NewUseCase construye el caso de uso. loc es la zona del local que define "hoy".
func NewUseCase(store repository.Store, clk clock.Clock, loc *time.Location, log *logger.Logger) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{store: store, clock: clk, loc: loc, log: log}
}

// scope devuelve el filtro VisibleTo del actor ("" = sin restricción).
func scope(actor *entity.Actor) string {
	if domain.CanViewAllEntities(actor.Role) {
		return ""
	}
	return actor.ID
}

// parseStatuses acepta una lista separada por comas de estados del enum.
func parseStatuses[S ~string](m states.Machine[S], raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		st, err := m.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, string(st))
	}
	return out, nil
}

func toStrings[S ~string](in []S) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

func paged[E any, R any](
	ctx context.Context,
	f repository.ListFilter,
	list func(context.Context, repository.ListFilter) ([]E, error),
	count func(context.Context, repository.ListFilter) (int, error),
	conv func(E) R,
) (*dto.ListResponse[R], error) {
	items, err := list(ctx, f)
	if err != nil {
		return nil, err
	}
	countFilter := f
	countFilter.Limit, countFilter.Offset = 0, 0
	total, err := count(ctx, countFilter)
	if err != nil {
		return nil, err
	}
	out := &dto.ListResponse[R]{
		Items: make([]R, 0, len(items)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}
	for _, it := range items {
		out.Items = append(out.Items, conv(it))
	}
	return out, nil
}

func (uc *UseCase) baseFilter(actor *entity.Actor, in dto.ListRequest) (repository.ListFilter, error) {
	if err := actor.EnsureActive(); err != nil {
		return repository.ListFilter{}, err
	}
	if err := dto.Validate(in); err != nil {
		return repository.ListFilter{}, err
	}
	page := in.PageRequest
	page.DefaultPage()
	f := repository.ListFilter{VisibleTo: scope(actor), Limit: page.Limit, Offset: page.Offset}
	var err error
	if f.CreatedFrom, err = uc.parseBound("from", in.From, false); err != nil {
		return repository.ListFilter{}, err
	}
	if f.CreatedTo, err = uc.parseBound("to", in.To, true); err != nil {
		return repository.ListFilter{}, err
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && !f.CreatedFrom.Before(*f.CreatedTo) {
		return repository.ListFilter{}, domain.NewValidationError("to", "debe ser posterior a from")
	}
	return f, nil
}

// parseBound interpreta un límite de created_at. Una fecha sin hora es el inicio
// del día en la zona del local; con endOfDay se toma el inicio del día siguiente.
func (uc *UseCase) parseBound(field, raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, uc.loc)
	if err != nil {
		return nil, domain.NewValidationError(field, "fecha inválida, use AAAA-MM-DD o RFC3339")
	}
	if endOfDay {
		day = day.AddDate(0, 0, 1)
	}
	return &day, nil
}

// ── Listados ──────────────────────────────────────────────────────────────────

// ListTradeIns trade-ins visibles para el actor, más recientes primero.
func (uc *UseCase) ListTradeIns(ctx context.Context, actor *entity.Actor, in dto.ListRequest) (*dto.ListResponse[dto.TradeInResponse], error) {
	f, err := uc.baseFilter(actor, in)
	if err != nil {
		return nil, err
	}
	if f.Statuses, err = parseStatuses(states.TradeIn, in.Status); err != nil {
		return nil, err
	}
	repo := uc.store.TradeIns()
	return paged(ctx, f, repo.List, repo.Count, func(t *entity.TradeIn) dto.TradeInResponse {
		return dto.TradeInFromEntity(t)
	})
}

// ListRepairs reparaciones visibles para el actor.
func (uc *UseCase) ListRepairs(ctx context.Context, actor *entity.Actor, in dto.ListRequest) (*dto.ListResponse[dto.RepairResponse], error) {
	f, err := uc.baseFilter(actor, in)
	if err != nil {
		return nil, err
	}
	if f.Statuses, err = parseStatuses(states.Repair, in.Status); err != nil {
		return nil, err
	}
	repo := uc.store.Repairs()
	return paged(ctx, f, repo.List, repo.Count, func(r *entity.Repair) dto.RepairResponse {
		return dto.RepairFromEntity(r)
	})
}

// ListLeads prospectos visibles. Con OverdueOnly solo los abiertos con seguimiento vencido.
func (uc *UseCase) ListLeads(ctx context.Context, actor *entity.Actor, in dto.ListRequest) (*dto.ListResponse[dto.LeadResponse], error) {
	f, err := uc.baseFilter(actor, in)
	if err != nil {
		return nil, err
	}
	if f.Statuses, err = parseStatuses(states.Lead, in.Status); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	if in.OverdueOnly {
		f.Statuses = openOnly(states.Lead, f.Statuses)
		if len(f.Statuses) == 0 {
			return &dto.ListResponse[dto.LeadResponse]{
				Items: []dto.LeadResponse{},
				Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
			}, nil
		}
		f.OverdueAt = &now
	}
	repo := uc.store.Leads()
	return paged(ctx, f, repo.List, repo.Count, func(l *entity.Lead) dto.LeadResponse {
		return dto.LeadFromEntity(l, now)
	})
}

// openOnly limita los estados pedidos a los no terminales (todos los abiertos si no se pidió ninguno).
func openOnly[S ~string](m states.Machine[S], requested []string) []string {
	if len(requested) == 0 {
		return toStrings(m.Open())
	}
	var out []string
	for _, s := range requested {
		if !m.IsTerminal(S(s)) {
			out = append(out, s)
		}
	}
	return out
}

// ListDeliveries domicilios visibles para el actor.
func (uc *UseCase) ListDeliveries(ctx context.Context, actor *entity.Actor, in dto.ListRequest) (*dto.ListResponse[dto.DeliveryResponse], error) {
	f, err := uc.baseFilter(actor, in)
	if err != nil {
		return nil, err
	}
	if f.Statuses, err = parseStatuses(states.Delivery, in.Status); err != nil {
		return nil, err
	}
	repo := uc.store.Deliveries()
	return paged(ctx, f, repo.List, repo.Count, func(d *entity.Delivery) dto.DeliveryResponse {
		return dto.DeliveryFromEntity(d)
	})
}

// ListSales ventas visibles. Las ventas no tienen estados: Status se ignora.
func (uc *UseCase) ListSales(ctx context.Context, actor *entity.Actor, in dto.ListRequest) (*dto.ListResponse[dto.SaleResponse], error) {
	f, err := uc.baseFilter(actor, in)
	if err != nil {
		return nil, err
	}
	financials := domain.CanViewFinancials(actor.Role)
	repo := uc.store.Sales()
	return paged(ctx, f, repo.List, repo.Count, func(s *entity.Sale) dto.SaleResponse {
		return dto.SaleFromEntity(s, financials)
	})
}

// ── Detalle ───────────────────────────────────────────────────────────────────

// GetTradeIn detalle; ErrForbidden si el actor no puede verlo.
func (uc *UseCase) GetTradeIn(ctx context.Context, actor *entity.Actor, id string) (*dto.TradeInResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	t, err := uc.store.TradeIns().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanSee(t.OwnerID, t.AssigneeID) {
		return nil, domain.ErrForbidden
	}
	out := dto.TradeInFromEntity(t)
	return &out, nil
}

// GetRepair detalle de una reparación.
func (uc *UseCase) GetRepair(ctx context.Context, actor *entity.Actor, id string) (*dto.RepairResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	r, err := uc.store.Repairs().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanSee(r.OwnerID, r.AssigneeID) {
		return nil, domain.ErrForbidden
	}
	out := dto.RepairFromEntity(r)
	return &out, nil
}

// GetLead detalle de un prospecto.
func (uc *UseCase) GetLead(ctx context.Context, actor *entity.Actor, id string) (*dto.LeadResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	l, err := uc.store.Leads().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanSee(l.OwnerID, l.AssigneeID) {
		return nil, domain.ErrForbidden
	}
	out := dto.LeadFromEntity(l, uc.clock.Now())
	return &out, nil
}

// GetDelivery detalle de un domicilio.
func (uc *UseCase) GetDelivery(ctx context.Context, actor *entity.Actor, id string) (*dto.DeliveryResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	d, err := uc.store.Deliveries().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanSee(d.OwnerID, d.AssigneeID) {
		return nil, domain.ErrForbidden
	}
	out := dto.DeliveryFromEntity(d)
	return &out, nil
}

// GetSale detalle de una venta; costo y utilidad solo con CanViewFinancials.
func (uc *UseCase) GetSale(ctx context.Context, actor *entity.Actor, id string) (*dto.SaleResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	s, err := uc.store.Sales().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanSee(s.OwnerID, "") {
		return nil, domain.ErrForbidden
	}
	out := dto.SaleFromEntity(s, domain.CanViewFinancials(actor.Role))
	return &out, nil
}

// Get despacha el detalle por tipo.
func (uc *UseCase) Get(ctx context.Context, actor *entity.Actor, t domain.EntityType, id string) (any, error) {
	switch t {
	case domain.EntityTradeIn:
		return uc.GetTradeIn(ctx, actor, id)
	case domain.EntityRepair:
		return uc.GetRepair(ctx, actor, id)
	case domain.EntityLead:
		return uc.GetLead(ctx, actor, id)
	case domain.EntityDelivery:
		return uc.GetDelivery(ctx, actor, id)
	case domain.EntitySale:
		return uc.GetSale(ctx, actor, id)
	}
	return nil, domain.NewValidationError("entity_type", "tipo desconocido: "+string(t))
}

// List despacha el listado por tipo.
func (uc *UseCase) List(ctx context.Context, actor *entity.Actor, t domain.EntityType, in dto.ListRequest) (any, error) {
	switch t {
	case domain.EntityTradeIn:
		return uc.ListTradeIns(ctx, actor, in)
	case domain.EntityRepair:
		return uc.ListRepairs(ctx, actor, in)
	case domain.EntityLead:
		return uc.ListLeads(ctx, actor, in)
	case domain.EntityDelivery:
		return uc.ListDeliveries(ctx, actor, in)
	case domain.EntitySale:
		return uc.ListSales(ctx, actor, in)
	}
	return nil, domain.NewValidationError("entity_type", "tipo desconocido: "+string(t))
}

// CheckSerial informa si un IMEI o serial ya fue recibido en algún trade-in.
// Consulta global: evita recibir dos veces el mismo equipo aunque lo haya registrado otro actor.
func (uc *UseCase) CheckSerial(ctx context.Context, actor *entity.Actor, serial string) (*dto.SerialCheckResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, domain.NewValidationError("serial", "es obligatorio")
	}
	exists, err := uc.store.TradeIns().SerialExists(ctx, serial)
	if err != nil {
		return nil, err
	}
	out := &dto.SerialCheckResponse{Serial: serial, IsDuplicate: exists}
	if exists {
		out.Warning = "el equipo ya está registrado"
	}
	return out, nil
}
