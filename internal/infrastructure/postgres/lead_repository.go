package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

const leadColumns = `id, number, status, owner_id, assignee_id, created_at, updated_at, updated_by,
	closed_at, closed_by, customer_name, customer_phone, customer_email, interest, source, notes,
	estimated_value, follow_up_date`

// LeadRepo persistencia de prospectos. El vencimiento se filtra con follow_up_date.
type LeadRepo struct {
	q Querier
}

func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	query := `INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Number, string(l.Status), l.OwnerID, l.AssigneeID, l.CreatedAt, l.UpdatedAt, l.UpdatedBy,
		l.ClosedAt, l.ClosedBy, l.CustomerName, l.CustomerPhone, l.CustomerEmail, l.Interest, l.Source, l.Notes,
		l.EstimatedValue, l.FollowUpDate,
	)
	return mapError("insert lead", err)
}

func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	return r.getOne(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
}

func (r *LeadRepo) GetForUpdate(ctx context.Context, id string) (*entity.Lead, error) {
	return r.getOne(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1 FOR UPDATE`, id)
}

func (r *LeadRepo) getOne(ctx context.Context, query, id string) (*entity.Lead, error) {
	l, err := scanLead(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get lead", err)
	}
	return l, nil
}

func (r *LeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	const query = `
		UPDATE leads SET
			status = $2, assignee_id = $3, updated_at = $4, updated_by = $5, closed_at = $6, closed_by = $7,
			notes = $8, follow_up_date = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		l.ID, string(l.Status), l.AssigneeID, l.UpdatedAt, l.UpdatedBy, l.ClosedAt, l.ClosedBy,
		l.Notes, l.FollowUpDate,
	)
	return affectedOne("update lead", tag.RowsAffected(), err)
}

func (r *LeadRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Lead, error) {
	w := listWhere(f, true)
	query := `SELECT ` + leadColumns + ` FROM leads` + w.sql() + w.page(newestFirst, f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list leads", err)
	}
	defer rows.Close()

	var list []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, mapError("scan lead", err)
		}
		list = append(list, l)
	}
	return list, mapError("list leads", rows.Err())
}

func (r *LeadRepo) Count(ctx context.Context, f repository.ListFilter) (int, error) {
	return count(ctx, r.q, "leads", listWhere(f, true))
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var (
		l      entity.Lead
		status string
	)
	err := row.Scan(
		&l.ID, &l.Number, &status, &l.OwnerID, &l.AssigneeID, &l.CreatedAt, &l.UpdatedAt, &l.UpdatedBy,
		&l.ClosedAt, &l.ClosedBy, &l.CustomerName, &l.CustomerPhone, &l.CustomerEmail, &l.Interest, &l.Source, &l.Notes,
		&l.EstimatedValue, &l.FollowUpDate,
	)
	if err != nil {
		return nil, err
	}
	l.Status = entity.LeadStatus(status)
	return &l, nil
}
