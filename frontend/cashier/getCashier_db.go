package cashier

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

func listActiveProducts(ctx context.Context, db *sqlite.DB) ([]models.Product, error) {
	var products []models.Product
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&products).
			Where("status = ?", "active").
			OrderExpr("name ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}
