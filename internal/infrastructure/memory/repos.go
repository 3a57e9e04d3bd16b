package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

// ── Actores ──────────────────────────────────────────────────────────────────

type actorRepo struct{ db db }

func (r actorRepo) Create(_ context.Context, a *entity.Actor) error {
	st, unlock := r.db.write()
	defer unlock()
	if _, ok := st.actors[a.ID]; ok {
		return fmt.Errorf("actor %s: %w", a.ID, domain.ErrConflict)
	}
	if _, ok := st.usernames[a.Username]; ok {
		return fmt.Errorf("username %q ya existe: %w", a.Username, domain.ErrConflict)
	}
	st.actors[a.ID] = *a
	st.usernames[a.Username] = a.ID
	return nil
}

func (r actorRepo) GetByID(_ context.Context, id string) (*entity.Actor, error) {
	st, unlock := r.db.read()
	defer unlock()
	a, ok := st.actors[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r actorRepo) GetByUsername(_ context.Context, username string) (*entity.Actor, error) {
	st, unlock := r.db.read()
	defer unlock()
	id, ok := st.usernames[username]
	if !ok {
		return nil, nil
	}
	a := st.actors[id]
	return &a, nil
}

func (r actorRepo) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	st, unlock := r.db.write()
	defer unlock()
	a, ok := st.actors[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Active = active
	a.UpdatedAt = at
	st.actors[id] = a
	return nil
}

func (r actorRepo) List(_ context.Context, limit, offset int) ([]*entity.Actor, error) {
	st, unlock := r.db.read()
	defer unlock()
	all := make([]*entity.Actor, 0, len(st.actors))
	for _, a := range st.actors {
		a := a
		all = append(all, &a)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].Username < all[j].Username
	})
	return window(all, limit, offset), nil
}

func (r actorRepo) Count(_ context.Context) (int, error) {
	st, unlock := r.db.read()
	defer unlock()
	return len(st.actors), nil
}

// ── Auditoría ────────────────────────────────────────────────────────────────

type auditRepo struct{ db db }

func (r auditRepo) Append(_ context.Context, ev *entity.AuditEvent) error {
	st, unlock := r.db.write()
	defer unlock()
	st.lastSeq++
	ev.Seq = st.lastSeq
	st.audit = append(st.audit, *ev)
	return nil
}

func auditMatches(ev *entity.AuditEvent, f repository.AuditFilter) bool {
	if f.EntityType != "" && ev.EntityType != f.EntityType {
		return false
	}
	if f.EntityID != "" && ev.EntityID != f.EntityID {
		return false
	}
	if f.ActorID != "" && ev.ActorID != f.ActorID {
		return false
	}
	if f.Action != "" && ev.Action != f.Action {
		return false
	}
	if f.Since != nil && ev.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.Before != nil && !auditBefore(ev, *f.Before) {
		return false
	}
	return true
}

// auditBefore (created_at, seq) estrictamente menor que la llave.
func auditBefore(ev *entity.AuditEvent, k repository.AuditKey) bool {
	if ev.CreatedAt.Equal(k.CreatedAt) {
		return ev.Seq < k.Seq
	}
	return ev.CreatedAt.Before(k.CreatedAt)
}

func (r auditRepo) List(_ context.Context, f repository.AuditFilter, limit int) ([]*entity.AuditEvent, error) {
	st, unlock := r.db.read()
	defer unlock()
	var out []*entity.AuditEvent
	for i := range st.audit {
		ev := st.audit[i]
		if auditMatches(&ev, f) {
			out = append(out, &ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return auditBefore(out[j], repository.AuditKey{CreatedAt: out[i].CreatedAt, Seq: out[i].Seq})
	})
	return window(out, limit, 0), nil
}

func (r auditRepo) CountFor(_ context.Context, t domain.EntityType, id string) (int, error) {
	st, unlock := r.db.read()
	defer unlock()
	n := 0
	for i := range st.audit {
		if st.audit[i].EntityType == t && st.audit[i].EntityID == id {
			n++
		}
	}
	return n, nil
}

// ── Consecutivos ─────────────────────────────────────────────────────────────

type sequenceRepo struct{ db db }

func (r sequenceRepo) Next(_ context.Context, t domain.EntityType) (int64, error) {
	if t.Prefix() == "" {
		return 0, fmt.Errorf("consecutivo: tipo %q sin numeración", t)
	}
	st, unlock := r.db.write()
	defer unlock()
	issued := st.counters[t]
	st.counters[t] = issued + 1
	return issued, nil
}

// ── Filtros comunes ──────────────────────────────────────────────────────────

type row struct {
	owner, assignee, status string
	createdAt               time.Time
	followUp                *time.Time
}

type rowFilter repository.ListFilter

func (f rowFilter) match(r row) bool {
	if f.VisibleTo != "" && r.owner != f.VisibleTo && r.assignee != f.VisibleTo {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if s == r.status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.OverdueAt != nil && (r.followUp == nil || !r.followUp.Before(*f.OverdueAt)) {
		return false
	}
	if f.CreatedFrom != nil && r.createdAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && !r.createdAt.Before(*f.CreatedTo) {
		return false
	}
	return true
}

// filterSorted aplica el filtro y ordena por created_at DESC (desempate por id).
func filterSorted[V any](m map[string]V, f repository.ListFilter, key func(*V) (string, row)) []*V {
	var out []*V
	for _, v := range m {
		v := v
		if _, r := key(&v); rowFilter(f).match(r) {
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		idi, ri := key(out[i])
		idj, rj := key(out[j])
		if !ri.createdAt.Equal(rj.createdAt) {
			return ri.createdAt.After(rj.createdAt)
		}
		return idi > idj
	})
	return out
}

func window[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

func workflowRow(w *entity.Workflow, status string) row {
	return row{owner: w.OwnerID, assignee: w.AssigneeID, status: status, createdAt: w.CreatedAt}
}

// ── Trade-ins ────────────────────────────────────────────────────────────────

type tradeInRepo struct{ db db }

func tradeInKey(t *entity.TradeIn) (string, row) { return t.ID, workflowRow(&t.Workflow, string(t.Status)) }

func (r tradeInRepo) Create(_ context.Context, t *entity.TradeIn) error {
	st, unlock := r.db.write()
	defer unlock()
	if _, ok := st.tradeIns[t.ID]; ok {
		return fmt.Errorf("trade-in %s: %w", t.ID, domain.ErrConflict)
	}
	st.tradeIns[t.ID] = *t
	return nil
}

func (r tradeInRepo) GetByID(_ context.Context, id string) (*entity.TradeIn, error) {
	st, unlock := r.db.read()
	defer unlock()
	t, ok := st.tradeIns[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el lock exclusivo.
func (r tradeInRepo) GetForUpdate(ctx context.Context, id string) (*entity.TradeIn, error) {
	return r.GetByID(ctx, id)
}

func (r tradeInRepo) Update(_ context.Context, t *entity.TradeIn) error {
	st, unlock := r.db.write()
	defer unlock()
	if _, ok := st.tradeIns[t.ID]; !ok {
		return domain.ErrNotFound
	}
	st.tradeIns[t.ID] = *t
	return nil
}

func (r tradeInRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.TradeIn, error) {
	st, unlock := r.db.read()
	defer unlock()
	return window(filterSorted(st.tradeIns, f, tradeInKey), f.Limit, f.Offset), nil
}

func (r tradeInRepo) Count(_ context.Context, f repository.ListFilter) (int, error) {
	st, unlock := r.db.read()
	defer unlock()
	return len(filterSorted(st.tradeIns, f, tradeInKey)), nil
}

func (r tradeInRepo) SerialExists(_ context.Context, serial string) (bool, error) {
	st, unlock := r.db.read()
	defer unlock()
	for _, t := range st.tradeIns {
		if t.IMEI == serial || t.SerialNumber == serial {
			return true, nil
		}
	}
	return false, nil
}

// ── Reparaciones ─────────────────────────────────────────────────────────────

type repairRepo struct{ db db }

func repairKey(r *entity.Repair) (string, row) { return r.ID, workflowRow(&r.Workflow, string(r.Status)) }

func (r repairRepo) Create(_ context.Context, rep *entity.Repair) error {
	st, unlock := r.db.write()
	defer unlock()
	if _, ok := st.repairs[rep.ID]; ok {
		return fmt.Errorf("repair %s: %w", rep.ID, domain.ErrConflict)
	}
	st.repairs[rep.ID] = *rep
	return nil
}

func (r repairRepo) GetByID(_ context.Context, id string) (*entity.Repair, error) {
	st, unlock := r.db.read()
	defer unlock()
	rep, ok := st.repairs[id]
	if !ok {
		return nil, nil
	}
	return &rep, nil
}

func (r repairRepo) GetForUpdate(ctx context.Context, id string) (*entity.Repair, error) {
	return r.GetByID(ctx, id)
}

func (r repairRepo) Update(_ context.Context, rep *entity.Repair) error {
	st, unlock := r.db.write()
	defer unlock()
	if _, ok := st.repairs[rep.ID]; !ok {
		return domain.ErrNotFound
	}
	st.repairs[rep.ID] = *rep
	return nil
}

func (r repairRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Repair, error) {
	st, unlock := r.db.read()
	defer unlock()
	return window(filterSorted(st.repairs, f, repairKey), f.Limit, f.Offset), nil
}

func (r repairRepo) Count(_ context.Context, f repository.ListFilter) (int, error) {
	st, unlock := r.db.read()
	defer unlock()
	return len(filterSorted(st.repairs, f, repairKey)), nil
}

// ── Leads ────────────────────────────────────────────────────────────────────

type leadRepo struct{ db db }

func leadKey(l *entity.Lead) (string, row) {
	r := workflowRow(&l.Workflow, string(l.Status))
	r.followUp = l.FollowUpDate
	return l.ID, r
}

func (r leadRepo) Create(_ context.Context, l *entity.Lead) error {
	st, unlock := r.db.write()
	defer unlock()
	if _, ok := st.leads[l.ID]; ok {
		return fmt.Errorf("lead %s: %w", l.ID, domain.ErrConflict)
	}
	st.leads[l.ID] = *l
	return nil
}

func (r leadRepo) GetByID(_ context.Context, id string) (*entity.Lead, error) {
	st, unlock := r.db.read()
	defer unlock()
	l, ok := st.leads[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r leadRepo) GetForUpdate(ctx context.Context, id string) (*entity.Lead, error) {
	return r.GetByID(ctx, id)
}

func (r leadRepo) Update(_ context.Context, l *entity.Lead) error {
	st, unlock := r.db.write()
	defer unlock()
	if _, ok := st.leads[l.ID]; !ok {
		return domain.ErrNotFound
	}
	st.leads[l.ID] = *l
	return nil
}

func (r leadRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Lead, error) {
	st, unlock := r.db.read()
	defer unlock()
	return window(filterSorted(st.leads, f, leadKey), f.Limit, f.Offset), nil
}

func (r leadRepo) Count(_ context.Context, f repository.ListFilter) (int, error) {
	st, unlock := r.db.read()
	defer unlock()
	return len(filterSorted(st.leads, f, leadKey)), nil
}

// ── Domicilios ───────────────────────────────────────────────────────────────

type deliveryRepo struct{ db db }

func deliveryKey(d *entity.Delivery) (string, row) {
	return d.ID, workflowRow(&d.Workflow, string(d.Status))
}

func (r deliveryRepo) Create(_ context.Context, d *entity.Delivery) error {
	st, unlock := r.db.write()
	defer unlock()
	if _, ok := st.deliveries[d.ID]; ok {
		return fmt.Errorf("delivery %s: %w", d.ID, domain.ErrConflict)
	}
	st.deliveries[d.ID] = *d
	return nil
}

func (r deliveryRepo) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	st, unlock := r.db.read()
	defer unlock()
	d, ok := st.deliveries[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r deliveryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.GetByID(ctx, id)
}

func (r deliveryRepo) Update(_ context.Context, d *entity.Delivery) error {
	st, unlock := r.db.write()
	defer unlock()
	if _, ok := st.deliveries[d.ID]; !ok {
		return domain.ErrNotFound
	}
	st.deliveries[d.ID] = *d
	return nil
}

func (r deliveryRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Delivery, error) {
	st, unlock := r.db.read()
	defer unlock()
	return window(filterSorted(st.deliveries, f, deliveryKey), f.Limit, f.Offset), nil
}

func (r deliveryRepo) Count(_ context.Context, f repository.ListFilter) (int, error) {
	st, unlock := r.db.read()
	defer unlock()
	return len(filterSorted(st.deliveries, f, deliveryKey)), nil
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type saleRepo struct{ db db }

// Las ventas no tienen asignado: la visibilidad es solo por creador.
func saleKey(s *entity.Sale) (string, row) {
	return s.ID, row{owner: s.OwnerID, createdAt: s.CreatedAt}
}

func (r saleRepo) Create(_ context.Context, s *entity.Sale) error {
	st, unlock := r.db.write()
	defer unlock()
	if _, ok := st.sales[s.ID]; ok {
		return fmt.Errorf("sale %s: %w", s.ID, domain.ErrConflict)
	}
	st.sales[s.ID] = *s
	return nil
}

func (r saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	st, unlock := r.db.read()
	defer unlock()
	s, ok := st.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r saleRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Sale, error) {
	st, unlock := r.db.read()
	defer unlock()
	f.Statuses = nil
	return window(filterSorted(st.sales, f, saleKey), f.Limit, f.Offset), nil
}

func (r saleRepo) Count(_ context.Context, f repository.ListFilter) (int, error) {
	st, unlock := r.db.read()
	defer unlock()
	f.Statuses = nil
	return len(filterSorted(st.sales, f, saleKey)), nil
}

// ── Métricas ─────────────────────────────────────────────────────────────────

type metricsRepo struct{ db db }

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (r metricsRepo) SalesTotals(_ context.Context, from, to time.Time, ownerID string) (repository.SalesTotals, error) {
	st, unlock := r.db.read()
	defer unlock()
	out := repository.SalesTotals{Revenue: decimal.Zero, Profit: decimal.Zero}
	for _, s := range st.sales {
		if !inRange(s.CreatedAt, from, to) || (ownerID != "" && s.OwnerID != ownerID) {
			continue
		}
		out.Count++
		out.Revenue = out.Revenue.Add(s.TotalPrice)
		if s.HasKnownCost() {
			out.Profit = out.Profit.Add(s.Profit)
		}
	}
	return out, nil
}

func (r metricsRepo) SalesByStaff(_ context.Context, from, to time.Time) ([]repository.StaffSalesRow, error) {
	st, unlock := r.db.read()
	defer unlock()
	byActor := map[string]*repository.StaffSalesRow{}
	for _, s := range st.sales {
		if !inRange(s.CreatedAt, from, to) {
			continue
		}
		row, ok := byActor[s.OwnerID]
		if !ok {
			row = &repository.StaffSalesRow{
				ActorID:     s.OwnerID,
				Name:        st.actors[s.OwnerID].Name,
				SalesTotals: repository.SalesTotals{Revenue: decimal.Zero, Profit: decimal.Zero},
			}
			byActor[s.OwnerID] = row
		}
		row.Count++
		row.Revenue = row.Revenue.Add(s.TotalPrice)
		if s.HasKnownCost() {
			row.Profit = row.Profit.Add(s.Profit)
		}
	}
	out := make([]repository.StaffSalesRow, 0, len(byActor))
	for _, row := range byActor {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].ActorID < out[j].ActorID
	})
	return out, nil
}
