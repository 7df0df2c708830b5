package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"

	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

var productImportColumns = []string{"kode_produk", "nama_produk", "harga_asli", "harga_jual", "stok"}
var stockImportColumns = []string{"kode_produk", "harga_asli", "harga_jual", "stok_baru"}

// sheetError rejects the whole file before any row is processed. The
// text goes into the response's detail field verbatim.
type sheetError struct{ detail string }

func (e *sheetError) Error() string { return e.detail }

// ImportSummary is the outcome of a product Excel import.
type ImportSummary struct {
	Added   int
	Updated int
	Errors  []string
}

// StockImportSummary is the outcome of a stock-update Excel import.
type StockImportSummary struct {
	Updated          int
	TotalPengeluaran int64
	Errors           []string
}

// readSheet loads the first worksheet into header + data rows.
func readSheet(r io.Reader) (headers []string, rows [][]string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, &sheetError{detail: fmt.Sprintf("Gagal membaca file Excel: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, &sheetError{detail: "Gagal membaca file Excel: tidak ada sheet"}
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, &sheetError{detail: fmt.Sprintf("Gagal membaca file Excel: %v", err)}
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

// columnIndexes maps required header names to their positions.
func columnIndexes(headers, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, &sheetError{detail: fmt.Sprintf("File Excel harus memiliki kolom: %s", strings.Join(required, ", "))}
		}
	}
	return idx, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseAmount accepts plain integers and spreadsheet float renderings
// like "5000.0".
func parseAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty amount")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// ImportProductsFromExcel upserts products by code from the uploaded
// sheet. Row failures are collected as "Baris N" errors; valid rows
// still apply.
func ImportProductsFromExcel(ctx context.Context, db *sqlite.DB, upload io.Reader) (ImportSummary, error) {
	headers, rows, err := readSheet(upload)
	if err != nil {
		return ImportSummary{}, err
	}
	cols, err := columnIndexes(headers, productImportColumns)
	if err != nil {
		return ImportSummary{}, err
	}

	var summary ImportSummary
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		for i, row := range rows {
			rowNo := i + 2
			code := cellAt(row, cols["kode_produk"])
			name := cellAt(row, cols["nama_produk"])

			costPrice, errCost := parseAmount(cellAt(row, cols["harga_asli"]))
			price, errPrice := parseAmount(cellAt(row, cols["harga_jual"]))
			stock, errStock := parseAmount(cellAt(row, cols["stok"]))
			if errCost != nil || errPrice != nil || errStock != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("Baris %d: Harga atau stok tidak valid untuk produk %s.", rowNo, code))
				continue
			}
			if code == "" || name == "" || costPrice < 0 || price < 0 || stock < 0 {
				summary.Errors = append(summary.Errors, fmt.Sprintf("Baris %d: Data produk tidak lengkap atau tidak valid (kode, nama, harga_asli, harga_jual, stok).", rowNo))
				continue
			}

			var existing models.Product
			err := tx.NewSelect().Model(&existing).Where("code = ?", code).Limit(1).Scan(ctx)
			switch {
			case err == nil:
				existing.Name = name
				existing.CostPrice = costPrice
				existing.Price = price
				existing.Stock = stock
				existing.UpdatedAt = time.Now()
				if _, err := tx.NewUpdate().
					Model(&existing).
					Column("name", "cost_price", "price", "stock", "updated_at").
					WherePK().
					Exec(ctx); err != nil {
					return fmt.Errorf("update product %s: %w", code, err)
				}
				summary.Updated++
			case errors.Is(err, sql.ErrNoRows):
				p := models.Product{Code: code, Name: name, CostPrice: costPrice, Price: price, Stock: stock, Status: "active"}
				if _, err := tx.NewInsert().Model(&p).Exec(ctx); err != nil {
					return fmt.Errorf("insert product %s: %w", code, err)
				}
				summary.Added++
			default:
				return fmt.Errorf("load product %s: %w", code, err)
			}
		}
		return nil
	})
	if err != nil {
		return ImportSummary{}, err
	}
	return summary, nil
}

// ImportStockUpdatesFromExcel applies new stock levels per product
// code and records a StockUpdate row whenever stock grows, accruing
// total pengeluaran cost_price * stock_added.
func ImportStockUpdatesFromExcel(ctx context.Context, db *sqlite.DB, upload io.Reader, updatedBy string) (StockImportSummary, error) {
	headers, rows, err := readSheet(upload)
	if err != nil {
		return StockImportSummary{}, err
	}
	cols, err := columnIndexes(headers, stockImportColumns)
	if err != nil {
		return StockImportSummary{}, err
	}

	var summary StockImportSummary
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		for i, row := range rows {
			rowNo := i + 2
			code := cellAt(row, cols["kode_produk"])

			costPrice, errCost := parseAmount(cellAt(row, cols["harga_asli"]))
			price, errPrice := parseAmount(cellAt(row, cols["harga_jual"]))
			newStock, errStock := parseAmount(cellAt(row, cols["stok_baru"]))
			if errCost != nil || errPrice != nil || errStock != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("Baris %d: Data tidak valid untuk produk %s.", rowNo, code))
				continue
			}
			if code == "" || costPrice < 0 || price < 0 || newStock < 0 {
				summary.Errors = append(summary.Errors, fmt.Sprintf("Baris %d: Data produk tidak lengkap atau tidak valid.", rowNo))
				continue
			}

			var product models.Product
			err := tx.NewSelect().Model(&product).Where("code = ?", code).Limit(1).Scan(ctx)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					summary.Errors = append(summary.Errors, fmt.Sprintf("Baris %d: Produk dengan kode %s tidak ditemukan.", rowNo, code))
					continue
				}
				return fmt.Errorf("load product %s: %w", code, err)
			}

			oldStock := product.Stock
			product.CostPrice = costPrice
			product.Price = price
			product.Stock = newStock
			product.UpdatedAt = time.Now()
			if _, err := tx.NewUpdate().
				Model(&product).
				Column("cost_price", "price", "stock", "updated_at").
				WherePK().
				Exec(ctx); err != nil {
				return fmt.Errorf("update product %s: %w", code, err)
			}

			if newStock > oldStock {
				added := newStock - oldStock
				pengeluaran := costPrice * added
				summary.TotalPengeluaran += pengeluaran
				su := models.StockUpdate{
					ProductID:   product.ID,
					ProductCode: product.Code,
					ProductName: product.Name,
					OldStock:    oldStock,
					NewStock:    newStock,
					StockAdded:  added,
					CostPrice:   costPrice,
					Expense:     pengeluaran,
					UpdatedBy:   updatedBy,
				}
				if _, err := tx.NewInsert().Model(&su).Exec(ctx); err != nil {
					return fmt.Errorf("insert stock update %s: %w", code, err)
				}
			}
			summary.Updated++
		}
		return nil
	})
	if err != nil {
		return StockImportSummary{}, err
	}
	return summary, nil
}
