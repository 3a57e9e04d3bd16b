package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo registro append-only sobre la tabla audit_events.
// Un trigger en la base rechaza UPDATE y DELETE.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de auditoría.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append inserta el evento y asigna Seq desde la identidad de la tabla.
func (r *AuditRepo) Append(ctx context.Context, ev *entity.AuditEvent) error {
	const query = `
		INSERT INTO audit_events (actor_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq, created_at`
	err := r.q.QueryRow(ctx, query,
		ev.ActorID, ev.Action, string(ev.EntityType), ev.EntityID, ev.Detail, ev.CreatedAt,
	).Scan(&ev.Seq, &ev.CreatedAt)
	if err != nil {
		return mapError("insert audit event", err)
	}
	return nil
}

// List eventos del más reciente al más antiguo. Before aplica keyset sobre (created_at, seq).
func (r *AuditRepo) List(ctx context.Context, f repository.AuditFilter, limit int) ([]*entity.AuditEvent, error) {
	w := &where{}
	if f.EntityType != "" {
		w.add("entity_type = $?", string(f.EntityType))
	}
	if f.EntityID != "" {
		w.add("entity_id = $?", f.EntityID)
	}
	if f.ActorID != "" {
		w.add("actor_id = $?", f.ActorID)
	}
	if f.Action != "" {
		w.add("action = $?", f.Action)
	}
	if f.Since != nil {
		w.add("created_at >= $?", *f.Since)
	}
	if f.Before != nil {
		// Comparación de filas: (created_at, seq) < (k.created_at, k.seq).
		w.args = append(w.args, f.Before.CreatedAt, f.Before.Seq)
		n := len(w.args)
		w.conds = append(w.conds, fmt.Sprintf("(created_at, seq) < ($%d, $%d)", n-1, n))
	}

	query := `SELECT seq, actor_id, action, entity_type, entity_id, detail, created_at FROM audit_events` +
		w.sql() + w.page("created_at DESC, seq DESC", limit, 0)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list audit events", err)
	}
	defer rows.Close()

	var out []*entity.AuditEvent
	for rows.Next() {
		var (
			ev entity.AuditEvent
			et string
		)
		if err := rows.Scan(&ev.Seq, &ev.ActorID, &ev.Action, &et, &ev.EntityID, &ev.Detail, &ev.CreatedAt); err != nil {
			return nil, mapError("scan audit event", err)
		}
		ev.EntityType = domain.EntityType(et)
		out = append(out, &ev)
	}
	return out, mapError("list audit events", rows.Err())
}

// CountFor cuenta los eventos de un registro.
func (r *AuditRepo) CountFor(ctx context.Context, t domain.EntityType, id string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_events WHERE entity_type = $1 AND entity_id = $2`, string(t), id,
	).Scan(&n)
	if err != nil {
		return 0, mapError("count audit events", err)
	}
	return n, nil
}
