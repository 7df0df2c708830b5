package reports

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

// Dashboard holds the five report panels the reports page shows.
// Panels are loaded independently: a failed panel keeps its zero
// value and records its error, the others still populate.
type Dashboard struct {
	Summary         SummaryReport
	TopProducts     TopProductsReport
	ProblemProducts ProblemProductsReport
	Stock           StockReport
	SalesTrend      SalesTrendReport

	// Errors maps panel name to its load error. Empty when all
	// panels loaded.
	Errors map[string]error
}

// Failed reports whether the named panel could not be loaded.
func (d Dashboard) Failed(panel string) bool {
	_, ok := d.Errors[panel]
	return ok
}

// DashboardLoader fans the panel queries out concurrently. The fetch
// funcs are swappable for tests.
type DashboardLoader struct {
	Summary         func(ctx context.Context) (SummaryReport, error)
	TopProducts     func(ctx context.Context) (TopProductsReport, error)
	ProblemProducts func(ctx context.Context) (ProblemProductsReport, error)
	Stock           func(ctx context.Context) (StockReport, error)
	SalesTrend      func(ctx context.Context) (SalesTrendReport, error)
}

// NewDashboardLoader wires the loader to the report queries.
func NewDashboardLoader(db *sqlite.DB) *DashboardLoader {
	return &DashboardLoader{
		Summary: func(ctx context.Context) (SummaryReport, error) {
			return summaryReport(ctx, db, time.Now())
		},
		TopProducts: func(ctx context.Context) (TopProductsReport, error) {
			return topProductsReport(ctx, db)
		},
		ProblemProducts: func(ctx context.Context) (ProblemProductsReport, error) {
			return problemProductsReport(ctx, db)
		},
		Stock: func(ctx context.Context) (StockReport, error) {
			return stockReport(ctx, db)
		},
		SalesTrend: func(ctx context.Context) (SalesTrendReport, error) {
			return salesTrendReport(ctx, db)
		},
	}
}

// Load runs all five panel fetches concurrently. Errors are captured
// per panel instead of returned, so one slow or broken query never
// empties the whole dashboard.
func (l *DashboardLoader) Load(ctx context.Context) Dashboard {
	var d Dashboard
	var summaryErr, topErr, problemErr, stockErr, trendErr error

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Summary, summaryErr = l.Summary(ctx)
		return nil
	})
	g.Go(func() error {
		d.TopProducts, topErr = l.TopProducts(ctx)
		return nil
	})
	g.Go(func() error {
		d.ProblemProducts, problemErr = l.ProblemProducts(ctx)
		return nil
	})
	g.Go(func() error {
		d.Stock, stockErr = l.Stock(ctx)
		return nil
	})
	g.Go(func() error {
		d.SalesTrend, trendErr = l.SalesTrend(ctx)
		return nil
	})
	_ = g.Wait()

	errs := make(map[string]error)
	for panel, err := range map[string]error{
		"summary":          summaryErr,
		"top_products":     topErr,
		"problem_products": problemErr,
		"stock":            stockErr,
		"sales_trend":      trendErr,
	} {
		if err != nil {
			errs[panel] = err
		}
	}
	if len(errs) > 0 {
		d.Errors = errs
	}
	return d
}
