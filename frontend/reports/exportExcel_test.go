package reports

import (
	stdcontext "context"
	"testing"
	"time"
)

func TestBuildReportWorkbookSheets(t *testing.T) {
	db := openTestDB(t)
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Now().In(loc)
	seedProduct(t, db, "A001", "Kopi", 5, "active")
	seedTransaction(t, db, "TRX-20260831-0001", now, []seedLine{{"A001", "Kopi", 15000, 9000, 3}})
	seedStockUpdate(t, db, "A001", 70000, now)

	period := PeriodFor(ModeDaily, now)
	f, err := buildReportWorkbook(stdcontext.Background(), db, period, loc)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Transaksi", "Ringkasan Keuangan", "Detail Update Stok", "Tren Penjualan"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %q (idx %d, err %v)", sheet, idx, err)
		}
	}

	rows, err := f.GetRows("Transaksi")
	if err != nil {
		t.Fatalf("get transaksi rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("transaksi rows = %d", len(rows))
	}
	if rows[1][0] != "TRX-20260831-0001" {
		t.Fatalf("trx no = %q", rows[1][0])
	}
	if rows[1][5] != "45000" {
		t.Fatalf("total = %q", rows[1][5])
	}

	keuangan, err := f.GetRows("Ringkasan Keuangan")
	if err != nil {
		t.Fatalf("get keuangan rows: %v", err)
	}
	// Pendapatan 45000, penjualan 27000, stok 70000, total 97000, rugi 52000.
	want := map[string]string{
		"Total Pendapatan":                "45000",
		"Total Pengeluaran (Penjualan)":   "27000",
		"Total Pengeluaran (Update Stok)": "70000",
		"Total Pengeluaran":               "97000",
		"Laba/Rugi":                       "-52000",
	}
	if len(keuangan) != 6 {
		t.Fatalf("keuangan rows = %d", len(keuangan))
	}
	for _, row := range keuangan[1:] {
		if wantVal, ok := want[row[0]]; !ok || row[1] != wantVal {
			t.Fatalf("keuangan row %q = %q, want %q", row[0], row[1], wantVal)
		}
	}
}

func TestBuildReportWorkbookSkipsStockSheetWhenEmpty(t *testing.T) {
	db := openTestDB(t)
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Now().In(loc)
	seedTransaction(t, db, "TRX-1", now, []seedLine{{"A001", "Kopi", 10000, 7000, 1}})

	period := PeriodFor(ModeDaily, now)
	f, err := buildReportWorkbook(stdcontext.Background(), db, period, loc)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex("Detail Update Stok"); idx >= 0 {
		t.Fatalf("stock detail sheet present without stock updates")
	}
}
