package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ repository.MetricsRepository = (*MetricsRepo)(nil)

// MetricsRepo agregados de ventas para el dashboard.
type MetricsRepo struct {
	q Querier
}

func NewMetricsRepository(q Querier) *MetricsRepo {
	return &MetricsRepo{q: q}
}

// SalesTotals conteo, ingreso y utilidad (solo con costo conocido) en [from, to).
func (r *MetricsRepo) SalesTotals(ctx context.Context, from, to time.Time, ownerID string) (repository.SalesTotals, error) {
	w := &where{}
	w.add("created_at >= $?", from)
	w.add("created_at < $?", to)
	if ownerID != "" {
		w.add("owner_id = $?", ownerID)
	}
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(total_price), 0),
		       COALESCE(SUM(profit) FILTER (WHERE cost_price IS NOT NULL), 0)
		FROM sales` + w.sql()

	var t repository.SalesTotals
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&t.Count, &t.Revenue, &t.Profit); err != nil {
		return repository.SalesTotals{}, mapError("sales totals", err)
	}
	return t, nil
}

// SalesByStaff agrupa por creador. Solo aparecen actores con ventas en el rango.
func (r *MetricsRepo) SalesByStaff(ctx context.Context, from, to time.Time) ([]repository.StaffSalesRow, error) {
	const query = `
		SELECT a.id, a.name, COUNT(s.id),
		       COALESCE(SUM(s.total_price), 0),
		       COALESCE(SUM(s.profit) FILTER (WHERE s.cost_price IS NOT NULL), 0)
		FROM sales s
		JOIN actors a ON a.id = s.owner_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		GROUP BY a.id, a.name
		ORDER BY 4 DESC, a.name`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, mapError("sales by staff", err)
	}
	defer rows.Close()

	var out []repository.StaffSalesRow
	for rows.Next() {
		var row repository.StaffSalesRow
		if err := rows.Scan(&row.ActorID, &row.Name, &row.Count, &row.Revenue, &row.Profit); err != nil {
			return nil, mapError("scan sales by staff", err)
		}
		out = append(out, row)
	}
	return out, mapError("sales by staff", rows.Err())
}
