package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ repository.RepairRepository = (*RepairRepo)(nil)

const repairColumns = `id, number, status, owner_id, assignee_id, created_at, updated_at, updated_by,
	closed_at, closed_by, device_brand, device_model, device_serial, customer_name, customer_phone,
	issue_description, diagnosis, repair_cost, parts_cost, total_cost, completed_at, completed_by`

type RepairRepo struct {
	q Querier
}

func NewRepairRepository(q Querier) *RepairRepo {
	return &RepairRepo{q: q}
}

func (r *RepairRepo) Create(ctx context.Context, rp *entity.Repair) error {
	query := `INSERT INTO repairs (` + repairColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		rp.ID, rp.Number, string(rp.Status), rp.OwnerID, rp.AssigneeID, rp.CreatedAt, rp.UpdatedAt, rp.UpdatedBy,
		rp.ClosedAt, rp.ClosedBy, rp.DeviceBrand, rp.DeviceModel, rp.DeviceSerial, rp.CustomerName, rp.CustomerPhone,
		rp.IssueDescription, rp.Diagnosis, rp.RepairCost, rp.PartsCost, rp.TotalCost, rp.CompletedAt, rp.CompletedBy,
	)
	return mapError("insert repair", err)
}

func (r *RepairRepo) GetByID(ctx context.Context, id string) (*entity.Repair, error) {
	return r.getOne(ctx, `SELECT `+repairColumns+` FROM repairs WHERE id = $1`, id)
}

func (r *RepairRepo) GetForUpdate(ctx context.Context, id string) (*entity.Repair, error) {
	return r.getOne(ctx, `SELECT `+repairColumns+` FROM repairs WHERE id = $1 FOR UPDATE`, id)
}

func (r *RepairRepo) getOne(ctx context.Context, query, id string) (*entity.Repair, error) {
	rp, err := scanRepair(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get repair", err)
	}
	return rp, nil
}

func (r *RepairRepo) Update(ctx context.Context, rp *entity.Repair) error {
	const query = `
		UPDATE repairs SET
			status = $2, assignee_id = $3, updated_at = $4, updated_by = $5, closed_at = $6, closed_by = $7,
			diagnosis = $8, repair_cost = $9, parts_cost = $10, total_cost = $11,
			completed_at = $12, completed_by = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		rp.ID, string(rp.Status), rp.AssigneeID, rp.UpdatedAt, rp.UpdatedBy, rp.ClosedAt, rp.ClosedBy,
		rp.Diagnosis, rp.RepairCost, rp.PartsCost, rp.TotalCost, rp.CompletedAt, rp.CompletedBy,
	)
	return affectedOne("update repair", tag.RowsAffected(), err)
}

func (r *RepairRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Repair, error) {
	w := listWhere(f, true)
	query := `SELECT ` + repairColumns + ` FROM repairs` + w.sql() + w.page(newestFirst, f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list repairs", err)
	}
	defer rows.Close()

	var list []*entity.Repair
	for rows.Next() {
		rp, err := scanRepair(rows)
		if err != nil {
			return nil, mapError("scan repair", err)
		}
		list = append(list, rp)
	}
	return list, mapError("list repairs", rows.Err())
}

func (r *RepairRepo) Count(ctx context.Context, f repository.ListFilter) (int, error) {
	return count(ctx, r.q, "repairs", listWhere(f, true))
}

func scanRepair(row pgx.Row) (*entity.Repair, error) {
	var (
		rp     entity.Repair
		status string
	)
	err := row.Scan(
		&rp.ID, &rp.Number, &status, &rp.OwnerID, &rp.AssigneeID, &rp.CreatedAt, &rp.UpdatedAt, &rp.UpdatedBy,
		&rp.ClosedAt, &rp.ClosedBy, &rp.DeviceBrand, &rp.DeviceModel, &rp.DeviceSerial, &rp.CustomerName, &rp.CustomerPhone,
		&rp.IssueDescription, &rp.Diagnosis, &rp.RepairCost, &rp.PartsCost, &rp.TotalCost, &rp.CompletedAt, &rp.CompletedBy,
	)
	if err != nil {
		return nil, err
	}
	rp.Status = entity.RepairStatus(status)
	return &rp, nil
}
