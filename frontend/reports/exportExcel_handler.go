package reports

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

// exportSheet is one worksheet in the report workbook: a header row
// plus data rows.
type exportSheet struct {
	name   string
	header []string
	rows   [][]any
}

func writeSheet(f *excelize.File, sheet exportSheet, style int) error {
	if _, err := f.NewSheet(sheet.name); err != nil {
		return err
	}
	for i, h := range sheet.header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet.name, col+"1", h); err != nil {
			return err
		}
		f.SetColWidth(sheet.name, col, col, 18)
	}
	for r, row := range sheet.rows {
		for c, v := range row {
			col, _ := excelize.ColumnNumberToName(c + 1)
			if err := f.SetCellValue(sheet.name, fmt.Sprintf("%s%d", col, r+2), v); err != nil {
				return err
			}
		}
	}
	if style != 0 {
		f.SetRowStyle(sheet.name, 1, 1, style)
	}
	f.SetPanes(sheet.name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return nil
}

// buildReportWorkbook assembles the full sales report: the period's
// transactions, the financial summary, stock-update detail when the
// period has any, and the dashboard panels.
func buildReportWorkbook(ctx context.Context, db *sqlite.DB, period Period, loc *time.Location) (*excelize.File, error) {
	trxList, err := periodTransactions(ctx, db, period)
	if err != nil {
		return nil, err
	}
	stockUpdates, err := periodStockUpdates(ctx, db, period)
	if err != nil {
		return nil, err
	}
	totals := computePeriodTotals(trxList, stockUpdates)

	summary, err := summaryReport(ctx, db, time.Now().In(loc))
	if err != nil {
		return nil, err
	}
	topProducts, err := topProductsReport(ctx, db)
	if err != nil {
		return nil, err
	}
	problemProducts, err := problemProductsReport(ctx, db)
	if err != nil {
		return nil, err
	}
	stock, err := stockReport(ctx, db)
	if err != nil {
		return nil, err
	}
	trend, err := salesTrendReport(ctx, db)
	if err != nil {
		return nil, err
	}

	pengeluaranPenjualan := totals.Omzet - totals.PendapatanRiil
	pengeluaranTotal := pengeluaranPenjualan + totals.PengeluaranStok

	sheets := []exportSheet{
		{
			name:   "Transaksi",
			header: []string{"TRX_NO", "TANGGAL", "BULAN_TAHUN", "KASIR", "METODE_BAYAR", "TOTAL", "BAYAR", "KEMBALI"},
			rows:   transactionRows(trxList, loc),
		},
		{
			name:   "Ringkasan Keuangan",
			header: []string{"Keterangan", "Nilai"},
			rows: [][]any{
				{"Total Pendapatan", totals.Omzet},
				{"Total Pengeluaran (Penjualan)", pengeluaranPenjualan},
				{"Total Pengeluaran (Update Stok)", totals.PengeluaranStok},
				{"Total Pengeluaran", pengeluaranTotal},
				{"Laba/Rugi", totals.Omzet - pengeluaranTotal},
			},
		},
	}

	if len(stockUpdates) > 0 {
		sheets = append(sheets, exportSheet{
			name:   "Detail Update Stok",
			header: []string{"TANGGAL", "KODE_PRODUK", "NAMA_PRODUK", "STOK_LAMA", "STOK_BARU", "STOK_DITAMBAH", "HARGA_ASLI", "TOTAL_PENGELUARAN", "DIPERBARUI_OLEH"},
			rows:   stockUpdateRows(stockUpdates, loc),
		})
	}

	sheets = append(sheets,
		exportSheet{
			name:   "Ringkasan Produk",
			header: []string{"Ringkasan", "Nilai"},
			rows: [][]any{
				{"Total Produk", summary.TotalProducts},
				{"Produk Terjual Bulan Ini", summary.ProductsSoldThisMonth},
			},
		},
		exportSheet{
			name:   "Top Produk Laku",
			header: []string{"Nama Produk", "Total Terjual"},
			rows:   qtyRows(topProducts.TopSelling),
		},
		exportSheet{
			name:   "Top Produk Omzet",
			header: []string{"Nama Produk", "Total Omzet"},
			rows:   revenueRows(topProducts.HighestRevenue),
		},
		exportSheet{
			name:   "Jarang Laku",
			header: []string{"Nama Produk", "Jumlah Terjual"},
			rows:   qtyRows(problemProducts.RarelySold),
		},
		exportSheet{
			name:   "Tidak Terjual",
			header: []string{"Nama Produk"},
			rows:   nameRows(problemProducts.NeverSold),
		},
		exportSheet{
			name:   "Stok Hampir Habis",
			header: []string{"Nama Produk", "Stok"},
			rows:   stockRows(stock.LowStock),
		},
		exportSheet{
			name:   "Overstock",
			header: []string{"Nama Produk", "Stok"},
			rows:   stockRows(stock.Overstock),
		},
		exportSheet{
			name:   "Tren Penjualan",
			header: []string{"Bulan", "Total Penjualan"},
			rows:   trendRows(trend.SalesTrend),
		},
	)

	f := excelize.NewFile()
	style, styleErr := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	if styleErr != nil {
		style = 0
	}

	f.SetSheetName("Sheet1", sheets[0].name)
	for _, sheet := range sheets {
		if err := writeSheet(f, sheet, style); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func transactionRows(trxList []models.Transaction, loc *time.Location) [][]any {
	rows := make([][]any, 0, len(trxList))
	for _, t := range trxList {
		created := t.CreatedAt.In(loc)
		rows = append(rows, []any{
			t.TrxNo,
			created.Format("2006-01-02 15:04"),
			created.Format("2006-01"),
			t.Cashier,
			t.PaymentMethod,
			t.Total,
			t.Paid,
			t.Change,
		})
	}
	return rows
}

func stockUpdateRows(updates []models.StockUpdate, loc *time.Location) [][]any {
	rows := make([][]any, 0, len(updates))
	for _, su := range updates {
		updatedBy := su.UpdatedBy
		if updatedBy == "" {
			updatedBy = "System"
		}
		rows = append(rows, []any{
			su.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			su.ProductCode,
			su.ProductName,
			su.OldStock,
			su.NewStock,
			su.StockAdded,
			su.CostPrice,
			su.Expense,
			updatedBy,
		})
	}
	return rows
}

func qtyRows(items []ProductQty) [][]any {
	rows := make([][]any, 0, len(items))
	for _, p := range items {
		rows = append(rows, []any{p.Name, p.TotalQtySold})
	}
	return rows
}

func revenueRows(items []ProductRevenue) [][]any {
	rows := make([][]any, 0, len(items))
	for _, p := range items {
		rows = append(rows, []any{p.Name, p.TotalRevenue})
	}
	return rows
}

func nameRows(items []ProductName) [][]any {
	rows := make([][]any, 0, len(items))
	for _, p := range items {
		rows = append(rows, []any{p.Name})
	}
	return rows
}

func stockRows(items []ProductStock) [][]any {
	rows := make([][]any, 0, len(items))
	for _, p := range items {
		rows = append(rows, []any{p.Name, p.Stock})
	}
	return rows
}

func trendRows(points []TrendPoint) [][]any {
	rows := make([][]any, 0, len(points))
	for _, s := range points {
		rows = append(rows, []any{s.Month, s.TotalSales})
	}
	return rows
}

// ExportReportsExcelQueryHandler serves GET /api/reports/export_excel
// and streams the workbook for the requested mode.
func ExportReportsExcelQueryHandler(db *sqlite.DB, settingsCache *cache.SettingsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc := storeLocation(r.Context(), db, settingsCache)
		period := PeriodFor(r.URL.Query().Get("mode"), time.Now().In(loc))

		f, err := buildReportWorkbook(r.Context(), db, period, loc)
		if err != nil {
			slog.Error("build report workbook failed", slog.Any("err", err))
			http.Error(w, "failed to build report", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		fileName := fmt.Sprintf("Laporan_Penjualan_%s.xlsx", period.FilePart)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
		if err := f.Write(w); err != nil {
			slog.Error("write report workbook failed", slog.Any("err", err))
		}
	}
}
