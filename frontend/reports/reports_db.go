package reports

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

// SummaryReport is the /api/reports/summary payload.
type SummaryReport struct {
	TotalProducts         int64 `json:"total_products"`
	ActiveProducts        int64 `json:"active_products"`
	ProductsSoldThisMonth int64 `json:"products_sold_this_month"`
}

// ProductQty is a product name with a summed quantity.
type ProductQty struct {
	Name         string `json:"name"`
	TotalQtySold int64  `json:"total_qty_sold"`
}

// ProductRevenue is a product name with summed subtotal revenue.
type ProductRevenue struct {
	Name         string `json:"name"`
	TotalRevenue int64  `json:"total_revenue"`
}

// ProductName is a bare product name entry.
type ProductName struct {
	Name string `json:"name"`
}

// ProductStock is a product name with its current stock level.
type ProductStock struct {
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
}

// TopProductsReport is the /api/reports/top_products payload.
type TopProductsReport struct {
	TopSelling     []ProductQty     `json:"top_selling_products"`
	HighestRevenue []ProductRevenue `json:"highest_revenue_products"`
}

// ProblemProductsReport is the /api/reports/problem_products payload.
type ProblemProductsReport struct {
	RarelySold []ProductQty  `json:"rarely_sold_products"`
	NeverSold  []ProductName `json:"never_sold_products"`
}

// StockReport is the /api/reports/stock payload.
type StockReport struct {
	LowStock  []ProductStock `json:"low_stock_products"`
	Overstock []ProductStock `json:"overstock_products"`
}

// TrendPoint is one month in the sales trend series.
type TrendPoint struct {
	Month      string `json:"month"`
	TotalSales int64  `json:"total_sales"`
}

// SalesTrendReport is the /api/reports/sales_trend payload.
type SalesTrendReport struct {
	SalesTrend []TrendPoint `json:"sales_trend"`
}

func summaryReport(ctx context.Context, db *sqlite.DB, now time.Time) (SummaryReport, error) {
	var out SummaryReport
	month := PeriodFor(ModeMonthly, now)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		total, err := tx.NewSelect().Model((*models.Product)(nil)).Count(ctx)
		if err != nil {
			return err
		}
		active, err := tx.NewSelect().Model((*models.Product)(nil)).Where("status = ?", "active").Count(ctx)
		if err != nil {
			return err
		}
		out.TotalProducts = int64(total)
		out.ActiveProducts = int64(active)

		// COALESCE keeps the sum at 0 for a month with no sales.
		return tx.NewSelect().
			Model((*models.TransactionItem)(nil)).
			ColumnExpr("COALESCE(SUM(ti.qty), 0)").
			Join("JOIN transactions AS t ON t.id = ti.transaction_id").
			Where("t.created_at >= ?", month.Start).
			Where("t.created_at <= ?", month.End).
			Scan(ctx, &out.ProductsSoldThisMonth)
	})
	return out, err
}

func topProductsReport(ctx context.Context, db *sqlite.DB) (TopProductsReport, error) {
	out := TopProductsReport{TopSelling: []ProductQty{}, HighestRevenue: []ProductRevenue{}}
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().
			Model((*models.Product)(nil)).
			ColumnExpr("p.name AS name").
			ColumnExpr("SUM(ti.qty) AS total_qty_sold").
			Join("JOIN transaction_items AS ti ON ti.product_code = p.code").
			GroupExpr("p.name").
			OrderExpr("SUM(ti.qty) DESC").
			Limit(5).
			Scan(ctx, &out.TopSelling); err != nil {
			return err
		}
		return tx.NewSelect().
			Model((*models.Product)(nil)).
			ColumnExpr("p.name AS name").
			ColumnExpr("SUM(ti.subtotal) AS total_revenue").
			Join("JOIN transaction_items AS ti ON ti.product_code = p.code").
			GroupExpr("p.name").
			OrderExpr("SUM(ti.subtotal) DESC").
			Limit(5).
			Scan(ctx, &out.HighestRevenue)
	})
	return out, err
}

func problemProductsReport(ctx context.Context, db *sqlite.DB) (ProblemProductsReport, error) {
	out := ProblemProductsReport{RarelySold: []ProductQty{}, NeverSold: []ProductName{}}
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		// Never-sold products have a NULL qty sum, which fails the
		// HAVING, so they appear only in the never-sold list.
		if err := tx.NewSelect().
			Model((*models.Product)(nil)).
			ColumnExpr("p.name AS name").
			ColumnExpr("COALESCE(SUM(ti.qty), 0) AS total_qty_sold").
			Join("LEFT JOIN transaction_items AS ti ON ti.product_code = p.code").
			GroupExpr("p.name").
			Having("SUM(ti.qty) < 5").
			OrderExpr("SUM(ti.qty) ASC").
			Limit(5).
			Scan(ctx, &out.RarelySold); err != nil {
			return err
		}
		return tx.NewSelect().
			Model((*models.Product)(nil)).
			ColumnExpr("p.name AS name").
			Join("LEFT JOIN transaction_items AS ti ON ti.product_code = p.code").
			Where("ti.id IS NULL").
			Limit(5).
			Scan(ctx, &out.NeverSold)
	})
	return out, err
}

func stockReport(ctx context.Context, db *sqlite.DB) (StockReport, error) {
	out := StockReport{LowStock: []ProductStock{}, Overstock: []ProductStock{}}
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().
			Model((*models.Product)(nil)).
			ColumnExpr("p.name AS name").
			ColumnExpr("p.stock AS stock").
			Where("p.stock < 10").
			Where("p.status = ?", "active").
			OrderExpr("p.stock ASC").
			Limit(5).
			Scan(ctx, &out.LowStock); err != nil {
			return err
		}
		return tx.NewSelect().
			Model((*models.Product)(nil)).
			ColumnExpr("p.name AS name").
			ColumnExpr("p.stock AS stock").
			Where("p.stock > 100").
			Where("p.status = ?", "active").
			OrderExpr("p.stock DESC").
			Limit(5).
			Scan(ctx, &out.Overstock)
	})
	return out, err
}

func salesTrendReport(ctx context.Context, db *sqlite.DB) (SalesTrendReport, error) {
	out := SalesTrendReport{SalesTrend: []TrendPoint{}}
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model((*models.Transaction)(nil)).
			ColumnExpr(`strftime('%Y-%m', t.created_at) AS month`).
			ColumnExpr("SUM(t.total) AS total_sales").
			GroupExpr("month").
			OrderExpr("month ASC").
			Scan(ctx, &out.SalesTrend)
	})
	return out, err
}

// periodTransactions loads the transactions of a period, items
// included, newest first.
func periodTransactions(ctx context.Context, db *sqlite.DB, period Period) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&rows).
			Relation("Items").
			Where("t.created_at >= ?", period.Start).
			Where("t.created_at <= ?", period.End).
			OrderExpr("t.id DESC").
			Scan(ctx)
	})
	return rows, err
}

func periodStockUpdates(ctx context.Context, db *sqlite.DB, period Period) ([]models.StockUpdate, error) {
	var rows []models.StockUpdate
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&rows).
			Where("su.created_at >= ?", period.Start).
			Where("su.created_at <= ?", period.End).
			OrderExpr("su.id ASC").
			Scan(ctx)
	})
	return rows, err
}
