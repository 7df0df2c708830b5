package products

import "testing"

func TestFilterRowsMatchesCaseInsensitive(t *testing.T) {
	rows := []string{
		"A001 Kopi Hitam Rp 5.000",
		"A002 Teh Manis Rp 4.000",
		"B001 KOPI SUSU Rp 7.000",
	}

	res := FilterRows(rows, "kopi")
	if res.VisibleCount != 2 {
		t.Fatalf("visible = %d, want 2", res.VisibleCount)
	}
	if !res.Visible[0] || res.Visible[1] || !res.Visible[2] {
		t.Fatalf("visibility flags = %v", res.Visible)
	}
	if res.CounterLabel != "Menampilkan 2 dari 3 produk" {
		t.Fatalf("counter = %q", res.CounterLabel)
	}
}

func TestFilterRowsEmptyQueryShowsAll(t *testing.T) {
	rows := []string{"satu", "dua"}
	res := FilterRows(rows, "")
	if res.VisibleCount != 2 {
		t.Fatalf("visible = %d, want 2", res.VisibleCount)
	}
	if res.CounterLabel != "Menampilkan semua 2 produk" {
		t.Fatalf("counter = %q", res.CounterLabel)
	}
}

func TestFilterRowsNoMatches(t *testing.T) {
	res := FilterRows([]string{"satu", "dua"}, "tiga")
	if res.VisibleCount != 0 {
		t.Fatalf("visible = %d, want 0", res.VisibleCount)
	}
	if res.CounterLabel != "Menampilkan 0 dari 2 produk" {
		t.Fatalf("counter = %q", res.CounterLabel)
	}
}
