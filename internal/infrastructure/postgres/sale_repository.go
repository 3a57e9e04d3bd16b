package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, number, product_id, product_name, customer_name, quantity, unit_price,
	cost_price, total_price, profit, payment_method, owner_id, created_at`

// SaleRepo ventas. Solo inserción y lectura.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Number, s.ProductID, s.ProductName, s.CustomerName, s.Quantity, s.UnitPrice,
		s.CostPrice, s.TotalPrice, s.Profit, s.PaymentMethod, s.OwnerID, s.CreatedAt,
	)
	return mapError("insert sale", err)
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get sale", err)
	}
	return s, nil
}

func (r *SaleRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Sale, error) {
	w := listWhere(f, false)
	query := `SELECT ` + saleColumns + ` FROM sales` + w.sql() + w.page(newestFirst, f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list sales", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, mapError("scan sale", err)
		}
		list = append(list, s)
	}
	return list, mapError("list sales", rows.Err())
}

func (r *SaleRepo) Count(ctx context.Context, f repository.ListFilter) (int, error) {
	return count(ctx, r.q, "sales", listWhere(f, false))
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.Number, &s.ProductID, &s.ProductName, &s.CustomerName, &s.Quantity, &s.UnitPrice,
		&s.CostPrice, &s.TotalPrice, &s.Profit, &s.PaymentMethod, &s.OwnerID, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
