package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliveryColumns = `id, number, status, owner_id, assignee_id, created_at, updated_at, updated_by,
	closed_at, closed_by, sale_id, customer_name, customer_phone, address, scheduled_for, fee, failure_reason`

type DeliveryRepo struct {
	q Querier
}

func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	query := `INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Number, string(d.Status), d.OwnerID, d.AssigneeID, d.CreatedAt, d.UpdatedAt, d.UpdatedBy,
		d.ClosedAt, d.ClosedBy, d.SaleID, d.CustomerName, d.CustomerPhone, d.Address, d.ScheduledFor, d.Fee, d.FailureReason,
	)
	return mapError("insert delivery", err)
}

func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.getOne(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id)
}

func (r *DeliveryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.getOne(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id)
}

func (r *DeliveryRepo) getOne(ctx context.Context, query, id string) (*entity.Delivery, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get delivery", err)
	}
	return d, nil
}

func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	const query = `
		UPDATE deliveries SET
			status = $2, assignee_id = $3, updated_at = $4, updated_by = $5, closed_at = $6, closed_by = $7,
			failure_reason = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, string(d.Status), d.AssigneeID, d.UpdatedAt, d.UpdatedBy, d.ClosedAt, d.ClosedBy, d.FailureReason,
	)
	return affectedOne("update delivery", tag.RowsAffected(), err)
}

func (r *DeliveryRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Delivery, error) {
	w := listWhere(f, true)
	query := `SELECT ` + deliveryColumns + ` FROM deliveries` + w.sql() + w.page(newestFirst, f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list deliveries", err)
	}
	defer rows.Close()

	var list []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, mapError("scan delivery", err)
		}
		list = append(list, d)
	}
	return list, mapError("list deliveries", rows.Err())
}

func (r *DeliveryRepo) Count(ctx context.Context, f repository.ListFilter) (int, error) {
	return count(ctx, r.q, "deliveries", listWhere(f, true))
}

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var (
		d      entity.Delivery
		status string
	)
	err := row.Scan(
		&d.ID, &d.Number, &status, &d.OwnerID, &d.AssigneeID, &d.CreatedAt, &d.UpdatedAt, &d.UpdatedBy,
		&d.ClosedAt, &d.ClosedBy, &d.SaleID, &d.CustomerName, &d.CustomerPhone, &d.Address, &d.ScheduledFor, &d.Fee, &d.FailureReason,
	)
	if err != nil {
		return nil, err
	}
	d.Status = entity.DeliveryStatus(status)
	return &d, nil
}
