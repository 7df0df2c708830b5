package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/Jwfathoni/kasir-pos/infrastructure/audit"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

// ErrCodeExists is returned when a product code is already taken.
var ErrCodeExists = errors.New("product code already exists")

func listProducts(ctx context.Context, db *sqlite.DB) ([]models.Product, error) {
	var products []models.Product
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&products).OrderExpr("id DESC").Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func addProduct(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, p models.Product) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Product)(nil)).
			Where("code = ?", p.Code).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("check product code: %w", err)
		}
		if exists {
			return ErrCodeExists
		}
		p.Status = "active"
		if _, err := tx.NewInsert().Model(&p).Exec(ctx); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return auditSvc.Write(ctx, tx, userID, "product.add", "product", p.Code, nil, p)
	})
}

// updateProduct writes the new name and prices. Stock only grows:
// stockAdd > 0 increases it and records a StockUpdate row carrying the
// expense cost_price * stock_added.
func updateProduct(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, updatedBy string, pid int64, name string, costPrice, price, stockAdd int64) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var p models.Product
		if err := tx.NewSelect().Model(&p).Where("id = ?", pid).Limit(1).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("load product: %w", err)
		}
		before := p

		p.Name = name
		p.CostPrice = costPrice
		p.Price = price
		p.UpdatedAt = time.Now()

		if stockAdd > 0 {
			oldStock := p.Stock
			p.Stock = oldStock + stockAdd
			su := models.StockUpdate{
				ProductID:   p.ID,
				ProductCode: p.Code,
				ProductName: p.Name,
				OldStock:    oldStock,
				NewStock:    p.Stock,
				StockAdded:  stockAdd,
				CostPrice:   costPrice,
				Expense:     costPrice * stockAdd,
				UpdatedBy:   updatedBy,
			}
			if _, err := tx.NewInsert().Model(&su).Exec(ctx); err != nil {
				return fmt.Errorf("insert stock update: %w", err)
			}
		}

		if _, err := tx.NewUpdate().
			Model(&p).
			Column("name", "cost_price", "price", "stock", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return auditSvc.Write(ctx, tx, userID, "product.update", "product", p.Code, before, p)
	})
}

func deleteProduct(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID, pid int64) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var p models.Product
		if err := tx.NewSelect().Model(&p).Where("id = ?", pid).Limit(1).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("load product: %w", err)
		}
		if _, err := tx.NewDelete().Model((*models.Product)(nil)).Where("id = ?", pid).Exec(ctx); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return auditSvc.Write(ctx, tx, userID, "product.delete", "product", p.Code, p, nil)
	})
}

// updateProductName persists the inline rename. found is false when
// the product id does not exist.
func updateProductName(ctx context.Context, db *sqlite.DB, pid int64, name string) (found bool, err error) {
	name = strings.TrimSpace(name)
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.Product)(nil)).
			Set("name = ?", name).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", pid).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		found = affected > 0
		return nil
	})
	return found, err
}
