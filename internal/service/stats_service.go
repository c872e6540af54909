package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/campusbites/campusbites-api/internal/repository"
)

type StatsService struct {
	repo *repository.StatsRepository
}

func NewStatsService(repo *repository.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

type SalesSummary struct {
	TotalOrders  int     `json:"total_orders"`
	PaidOrders   int     `json:"paid_orders"`
	FailedOrders int     `json:"failed_orders"`
	GrossSales   float64 `json:"gross_sales"`
	TaxCollected float64 `json:"tax_collected"`
	PaymentRate  float64 `json:"payment_success_rate"`
}

type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type SalesReport struct {
	Summary  SalesSummary `json:"summary"`
	TopItems []TopItem    `json:"top_items"`
}

// SalesReport aggregates the order book: overall counts and the best
// selling items, fetched in parallel.
func (s *StatsService) SalesReport(ctx context.Context, topN int) (*SalesReport, error) {
	if topN <= 0 {
		topN = 5
	}

	g, gctx := errgroup.WithContext(ctx)

	var row repository.SalesRow
	var top []repository.TopItemRow

	g.Go(func() error {
		var err error
		row, err = s.repo.SalesSummary(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = s.repo.TopItems(gctx, topN)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := SalesSummary{
		TotalOrders:  row.TotalOrders,
		PaidOrders:   row.PaidOrders,
		FailedOrders: row.FailedOrders,
		GrossSales:   row.GrossSales,
		TaxCollected: row.TaxCollected,
	}
	settled := row.PaidOrders + row.FailedOrders
	if settled > 0 {
		summary.PaymentRate = float64(row.PaidOrders) / float64(settled) * 100
		summary.PaymentRate = float64(int(summary.PaymentRate*100)) / 100
	}

	items := make([]TopItem, len(top))
	for i, t := range top {
		items[i] = TopItem{Name: t.Name, Quantity: t.Quantity, Revenue: t.Revenue}
	}

	return &SalesReport{Summary: summary, TopItems: items}, nil
}
