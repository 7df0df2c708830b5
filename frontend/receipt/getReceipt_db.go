package receipt

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

func loadTransaction(ctx context.Context, db *sqlite.DB, trxID int64) (models.Transaction, error) {
	var trx models.Transaction
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&trx).
			Relation("Items").
			Where("t.id = ?", trxID).
			Limit(1).
			Scan(ctx)
	})
	return trx, err
}
