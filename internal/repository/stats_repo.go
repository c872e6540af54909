package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

type SalesRow struct {
	TotalOrders  int
	PaidOrders   int
	FailedOrders int
	GrossSales   float64
	TaxCollected float64
}

func (r *StatsRepository) SalesSummary(ctx context.Context) (SalesRow, error) {
	var row SalesRow
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PAID'),
			COUNT(*) FILTER (WHERE status = 'FAILED'),
			COALESCE(SUM(total) FILTER (WHERE status = 'PAID'), 0),
			COALESCE(SUM(tax) FILTER (WHERE status = 'PAID'), 0)
		FROM orders`).
		Scan(&row.TotalOrders, &row.PaidOrders, &row.FailedOrders, &row.GrossSales, &row.TaxCollected)
	return row, err
}

type TopItemRow struct {
	Name     string
	Quantity int
	Revenue  float64
}

func (r *StatsRepository) TopItems(ctx context.Context, limit int) ([]TopItemRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT oi.name, SUM(oi.quantity), SUM(oi.quantity * oi.price)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'PAID'
		GROUP BY oi.name
		ORDER BY SUM(oi.quantity) DESC, oi.name
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopItemRow
	for rows.Next() {
		var t TopItemRow
		if err := rows.Scan(&t.Name, &t.Quantity, &t.Revenue); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
