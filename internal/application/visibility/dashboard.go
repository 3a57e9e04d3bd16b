package visibility

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	states "github.com/jhoicas/Phoneshop-api/internal/domain/workflow"
	"github.com/jhoicas/Phoneshop-api/pkg/clock"
)

// Dashboard métricas de hoy con la hora actual del reloj.
func (uc *UseCase) Dashboard(ctx context.Context, actor *entity.Actor) (*dto.DashboardResponse, error) {
	return uc.DashboardAt(ctx, actor, uc.clock.Now())
}

// DashboardAt construye el dashboard para el día calendario de asOf en la zona del local.
//
// La forma de la respuesta depende del rol:
//   - profit_today solo con CanViewFinancials
//   - per_staff solo con CanViewStaffMetrics; cada fila lleva profit solo con CanViewFinancials
//
// Los contadores usan la misma regla de visibilidad que los listados.
func (uc *UseCase) DashboardAt(ctx context.Context, actor *entity.Actor, asOf time.Time) (*dto.DashboardResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	// "Hoy" se calcula una sola vez para toda la respuesta.
	todayStart, todayEnd := clock.DayBounds(asOf, uc.loc)
	visibleTo := scope(actor)
	financials := domain.CanViewFinancials(actor.Role)
	staffMetrics := domain.CanViewStaffMetrics(actor.Role)

	// ── Consultas en paralelo ────────────────────────────────────────────────
	type totalsResult struct {
		totals repository.SalesTotals
		err    error
	}
	type countResult struct {
		n   int
		err error
	}
	type staffResult struct {
		rows []repository.StaffSalesRow
		err  error
	}

	salesCh := make(chan totalsResult, 1)
	tradeInsCh := make(chan countResult, 1)
	repairsCh := make(chan countResult, 1)
	leadsCh := make(chan countResult, 1)
	deliveriesCh := make(chan countResult, 1)
	staffCh := make(chan staffResult, 1)

	go func() {
		t, err := uc.store.Metrics().SalesTotals(ctx, todayStart, todayEnd, visibleTo)
		salesCh <- totalsResult{t, err}
	}()
	go func() {
		n, err := uc.store.TradeIns().Count(ctx, repository.ListFilter{
			VisibleTo: visibleTo,
			Statuses:  []string{string(entity.TradeInPending)},
		})
		tradeInsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.store.Repairs().Count(ctx, repository.ListFilter{
			VisibleTo: visibleTo,
			Statuses:  toStrings(states.Repair.Open()),
		})
		repairsCh <- countResult{n, err}
	}()
	go func() {
		at := asOf
		n, err := uc.store.Leads().Count(ctx, repository.ListFilter{
			VisibleTo: visibleTo,
			Statuses:  toStrings(states.Lead.Open()),
			OverdueAt: &at,
		})
		leadsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.store.Deliveries().Count(ctx, repository.ListFilter{
			VisibleTo: visibleTo,
			Statuses:  toStrings(states.Delivery.Open()),
		})
		deliveriesCh <- countResult{n, err}
	}()
	if staffMetrics {
		go func() {
			rows, err := uc.store.Metrics().SalesByStaff(ctx, todayStart, todayEnd)
			staffCh <- staffResult{rows, err}
		}()
	} else {
		staffCh <- staffResult{}
	}

	sales := <-salesCh
	tradeIns := <-tradeInsCh
	repairs := <-repairsCh
	leads := <-leadsCh
	deliveries := <-deliveriesCh
	staff := <-staffCh

	for _, e := range []struct {
		what string
		err  error
	}{
		{"ventas de hoy", sales.err},
		{"trade-ins pendientes", tradeIns.err},
		{"reparaciones activas", repairs.err},
		{"leads vencidos", leads.err},
		{"domicilios abiertos", deliveries.err},
		{"ventas por empleado", staff.err},
	} {
		if e.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", e.what, e.err)
		}
	}

	// ── Construir DTO ────────────────────────────────────────────────────────
	out := &dto.DashboardResponse{
		Date:            todayStart.Format("2006-01-02"),
		RevenueToday:    sales.totals.Revenue.Round(2),
		SalesCountToday: sales.totals.Count,
		PendingTradeIns: tradeIns.n,
		ActiveRepairs:   repairs.n,
		OverdueLeads:    leads.n,
		OpenDeliveries:  deliveries.n,
	}
	if financials {
		p := sales.totals.Profit.Round(2)
		out.ProfitToday = &p
	}
	if staffMetrics {
		rows := make([]dto.StaffMetricsDTO, 0, len(staff.rows))
		for _, row := range staff.rows {
			item := dto.StaffMetricsDTO{
				ActorID:    row.ActorID,
				Name:       row.Name,
				SalesCount: row.Count,
				Revenue:    row.Revenue.Round(2),
			}
			if financials {
				p := row.Profit.Round(2)
				item.Profit = &p
			}
			rows = append(rows, item)
		}
		out.PerStaff = &rows
	}
	return out, nil
}
