package cashier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/Jwfathoni/kasir-pos/infrastructure/audit"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

// nextTrxNo builds TRX-YYYYMMDD-NNNN where NNNN counts up within the
// store-local day. Must run inside the checkout write transaction so
// the sequence stays gapless under the single sqlite writer.
func nextTrxNo(ctx context.Context, tx bun.Tx, now time.Time) (string, error) {
	day := now.Format("20060102")
	like := fmt.Sprintf("TRX-%s-%%", day)

	count, err := tx.NewSelect().
		Model((*models.Transaction)(nil)).
		Where("trx_no LIKE ?", like).
		Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count today transactions: %w", err)
	}
	return fmt.Sprintf("TRX-%s-%04d", day, count+1), nil
}

// createTransaction persists the checkout: the transaction header, one
// item row per cart line and the stock decrement (floored at zero) per
// product. Returns the stored transaction.
func createTransaction(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, cashier, paymentMethod string, paid int64, items []CartItem, now time.Time) (models.Transaction, error) {
	var trx models.Transaction
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		trxNo, err := nextTrxNo(ctx, tx, now)
		if err != nil {
			return err
		}

		var total int64
		for _, it := range items {
			total += it.Price * it.Qty
		}

		trx = models.Transaction{
			TrxNo:         trxNo,
			Cashier:       cashier,
			PaymentMethod: paymentMethod,
			Total:         total,
			Paid:          paid,
			Change:        paid - total,
			CreatedAt:     now,
		}
		if _, err := tx.NewInsert().Model(&trx).Exec(ctx); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		for _, it := range items {
			var product models.Product
			costPrice := int64(0)
			err := tx.NewSelect().Model(&product).Where("code = ?", it.Code).Limit(1).Scan(ctx)
			switch {
			case err == nil:
				costPrice = product.CostPrice
				if _, err := tx.ExecContext(ctx,
					`UPDATE products SET stock = MAX(0, stock - ?), updated_at = ? WHERE code = ?`,
					it.Qty, now, it.Code); err != nil {
					return fmt.Errorf("decrement stock %s: %w", it.Code, err)
				}
			case errors.Is(err, sql.ErrNoRows):
				// Product removed since the page rendered; keep the line.
			default:
				return fmt.Errorf("load product %s: %w", it.Code, err)
			}

			item := models.TransactionItem{
				TransactionID: trx.ID,
				ProductCode:   it.Code,
				ProductName:   it.Name,
				Price:         it.Price,
				CostPrice:     costPrice,
				Qty:           it.Qty,
				Subtotal:      it.Price * it.Qty,
			}
			if _, err := tx.NewInsert().Model(&item).Exec(ctx); err != nil {
				return fmt.Errorf("insert transaction item: %w", err)
			}
			trx.Items = append(trx.Items, item)
		}

		return auditSvc.Write(ctx, tx, userID, "checkout.create", "transaction", trx.TrxNo, nil, trx)
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return trx, nil
}
