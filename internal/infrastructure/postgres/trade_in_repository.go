package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ repository.TradeInRepository = (*TradeInRepo)(nil)

const tradeInColumns = `id, number, status, owner_id, assignee_id, created_at, updated_at, updated_by,
	closed_at, closed_by, brand, model, storage, color, imei, serial_number,
	customer_name, customer_phone, customer_email, base_value, condition_score,
	calculated_offer, final_offer, payout_method, reviewed_by, reviewed_at`

// TradeInRepo persistencia de trade-ins.
type TradeInRepo struct {
	q Querier
}

// NewTradeInRepository construye el adaptador.
func NewTradeInRepository(q Querier) *TradeInRepo {
	return &TradeInRepo{q: q}
}

// Create inserta el trade-in con su número ya reservado.
func (r *TradeInRepo) Create(ctx context.Context, t *entity.TradeIn) error {
	query := `INSERT INTO trade_ins (` + tradeInColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Number, string(t.Status), t.OwnerID, t.AssigneeID, t.CreatedAt, t.UpdatedAt, t.UpdatedBy,
		t.ClosedAt, t.ClosedBy, t.Brand, t.Model, t.Storage, t.Color, t.IMEI, t.SerialNumber,
		t.CustomerName, t.CustomerPhone, t.CustomerEmail, t.BaseValue, t.ConditionScore,
		t.CalculatedOffer, t.FinalOffer, t.PayoutMethod, t.ReviewedBy, t.ReviewedAt,
	)
	return mapError("insert trade-in", err)
}

// GetByID obtiene un trade-in (nil, nil si no existe).
func (r *TradeInRepo) GetByID(ctx context.Context, id string) (*entity.TradeIn, error) {
	return r.getOne(ctx, `SELECT `+tradeInColumns+` FROM trade_ins WHERE id = $1`, id)
}

// GetForUpdate obtiene el trade-in y bloquea la fila (SELECT FOR UPDATE).
func (r *TradeInRepo) GetForUpdate(ctx context.Context, id string) (*entity.TradeIn, error) {
	return r.getOne(ctx, `SELECT `+tradeInColumns+` FROM trade_ins WHERE id = $1 FOR UPDATE`, id)
}

func (r *TradeInRepo) getOne(ctx context.Context, query, id string) (*entity.TradeIn, error) {
	t, err := scanTradeIn(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get trade-in", err)
	}
	return t, nil
}

// Update persiste estado y campos mutables. El número y el creador no cambian.
func (r *TradeInRepo) Update(ctx context.Context, t *entity.TradeIn) error {
	const query = `
		UPDATE trade_ins SET
			status = $2, assignee_id = $3, updated_at = $4, updated_by = $5, closed_at = $6, closed_by = $7,
			final_offer = $8, payout_method = $9, reviewed_by = $10, reviewed_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		t.ID, string(t.Status), t.AssigneeID, t.UpdatedAt, t.UpdatedBy, t.ClosedAt, t.ClosedBy,
		t.FinalOffer, t.PayoutMethod, t.ReviewedBy, t.ReviewedAt,
	)
	return affectedOne("update trade-in", tag.RowsAffected(), err)
}

// List trade-ins según el filtro, más recientes primero.
func (r *TradeInRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.TradeIn, error) {
	w := listWhere(f, true)
	query := `SELECT ` + tradeInColumns + ` FROM trade_ins` + w.sql() + w.page(newestFirst, f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list trade-ins", err)
	}
	defer rows.Close()

	var list []*entity.TradeIn
	for rows.Next() {
		t, err := scanTradeIn(rows)
		if err != nil {
			return nil, mapError("scan trade-in", err)
		}
		list = append(list, t)
	}
	return list, mapError("list trade-ins", rows.Err())
}

// Count total de trade-ins que cumplen el filtro (ignora Limit/Offset).
func (r *TradeInRepo) Count(ctx context.Context, f repository.ListFilter) (int, error) {
	return count(ctx, r.q, "trade_ins", listWhere(f, true))
}

// SerialExists busca el valor como IMEI o como serial de fábrica.
func (r *TradeInRepo) SerialExists(ctx context.Context, serial string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM trade_ins WHERE imei = $1 OR serial_number = $1)`, serial,
	).Scan(&exists)
	if err != nil {
		return false, mapError("serial check", err)
	}
	return exists, nil
}

func scanTradeIn(row pgx.Row) (*entity.TradeIn, error) {
	var (
		t      entity.TradeIn
		status string
	)
	err := row.Scan(
		&t.ID, &t.Number, &status, &t.OwnerID, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt, &t.UpdatedBy,
		&t.ClosedAt, &t.ClosedBy, &t.Brand, &t.Model, &t.Storage, &t.Color, &t.IMEI, &t.SerialNumber,
		&t.CustomerName, &t.CustomerPhone, &t.CustomerEmail, &t.BaseValue, &t.ConditionScore,
		&t.CalculatedOffer, &t.FinalOffer, &t.PayoutMethod, &t.ReviewedBy, &t.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = entity.TradeInStatus(status)
	return &t, nil
}
