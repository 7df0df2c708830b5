package reports

import (
	"testing"
	"time"
)

func TestPeriodForDaily(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, loc)

	p := PeriodFor(ModeDaily, now)
	if p.Start.Hour() != 0 || p.Start.Day() != 31 {
		t.Fatalf("start = %v", p.Start)
	}
	if p.End.Hour() != 23 || p.End.Minute() != 59 || p.End.Second() != 59 {
		t.Fatalf("end = %v", p.End)
	}
	if p.Title != "Laporan Harian (2026-08-31)" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.FilePart != "Harian-2026-08-31" {
		t.Fatalf("file part = %q", p.FilePart)
	}
}

func TestPeriodForMonthlyCoversLastDay(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, loc)

	p := PeriodFor(ModeMonthly, now)
	if p.Start.Day() != 1 || p.Start.Month() != time.February {
		t.Fatalf("start = %v", p.Start)
	}
	// 2026 is not a leap year.
	if p.End.Day() != 28 || p.End.Month() != time.February || p.End.Hour() != 23 {
		t.Fatalf("end = %v", p.End)
	}
	if p.FilePart != "Bulanan-2026-02" {
		t.Fatalf("file part = %q", p.FilePart)
	}
}

func TestPeriodForYearly(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	p := PeriodFor(ModeYearly, now)
	if p.Start.Month() != time.January || p.Start.Day() != 1 {
		t.Fatalf("start = %v", p.Start)
	}
	if p.End.Month() != time.December || p.End.Day() != 31 {
		t.Fatalf("end = %v", p.End)
	}
	if p.Title != "Laporan Tahunan (2026)" {
		t.Fatalf("title = %q", p.Title)
	}
}

func TestNormalizeModeFallsBackToDaily(t *testing.T) {
	if got := NormalizeMode("weekly"); got != ModeDaily {
		t.Fatalf("mode = %q", got)
	}
	if got := NormalizeMode(ModeYearly); got != ModeYearly {
		t.Fatalf("mode = %q", got)
	}
}
