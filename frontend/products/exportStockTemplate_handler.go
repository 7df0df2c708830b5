package products

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"

	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

var stockTemplateHeaders = []string{"kode_produk", "nama_produk", "harga_asli", "harga_jual", "stok_sekarang", "stok_baru"}

// buildStockTemplate fills a worksheet with the active products, one
// row each, stok_baru prefilled with the current stock.
func buildStockTemplate(rows []models.Product) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheetName = "Update Stok"
	f.SetSheetName("Sheet1", sheetName)

	for i, header := range stockTemplateHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, col+"1", header)
		f.SetColWidth(sheetName, col, col, 18)
	}

	for i, p := range rows {
		rowNo := i + 2
		values := []any{p.Code, p.Name, p.CostPrice, p.Price, p.Stock, p.Stock}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, rowNo), v)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, style)
	}
	f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	return f, nil
}

// ExportStockTemplateQueryHandler streams the stock-update template
// workbook for the active products, ordered by code.
func ExportStockTemplateQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []models.Product
		err := db.WithReadTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
			return tx.NewSelect().
				Model(&rows).
				Where("status = ?", "active").
				OrderExpr("code ASC").
				Scan(ctx)
		})
		if err != nil {
			slog.Error("load products for template failed", slog.Any("err", err))
			http.Error(w, "failed to build template", http.StatusInternalServerError)
			return
		}

		f, err := buildStockTemplate(rows)
		if err != nil {
			slog.Error("build stock template failed", slog.Any("err", err))
			http.Error(w, "failed to build template", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		fileName := fmt.Sprintf("Template_Update_Stok_%s.xlsx", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
		if err := f.Write(w); err != nil {
			slog.Error("write stock template failed", slog.Any("err", err))
		}
	}
}
