package reports

import (
	"fmt"
	"time"
)

const (
	ModeDaily   = "daily"
	ModeMonthly = "monthly"
	ModeYearly  = "yearly"
)

// NormalizeMode coerces unknown report modes to daily, mirroring how
// unknown timezones fall back to WIB.
func NormalizeMode(mode string) string {
	switch mode {
	case ModeDaily, ModeMonthly, ModeYearly:
		return mode
	default:
		return ModeDaily
	}
}

// Period is the closed [Start, End] window a report covers, plus the
// labels shown on the page and in export filenames.
type Period struct {
	Mode  string
	Start time.Time
	End   time.Time

	// Title is the page heading, e.g. "Laporan Harian (2026-08-31)".
	Title string
	// FilePart names the export, e.g. "Harian-2026-08-31".
	FilePart string
}

// PeriodFor computes the reporting window for the given mode anchored
// at now. Yearly covers the whole calendar year of now.
func PeriodFor(mode string, now time.Time) Period {
	loc := now.Location()
	switch NormalizeMode(mode) {
	case ModeMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0).Add(-time.Second)
		return Period{
			Mode:     ModeMonthly,
			Start:    start,
			End:      end,
			Title:    fmt.Sprintf("Laporan Bulanan (%s)", now.Format("2006-01")),
			FilePart: fmt.Sprintf("Bulanan-%s", now.Format("2006-01")),
		}
	case ModeYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		end := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, loc)
		return Period{
			Mode:     ModeYearly,
			Start:    start,
			End:      end,
			Title:    fmt.Sprintf("Laporan Tahunan (%d)", now.Year()),
			FilePart: fmt.Sprintf("Tahunan-%d", now.Year()),
		}
	default:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, loc)
		return Period{
			Mode:     ModeDaily,
			Start:    start,
			End:      end,
			Title:    fmt.Sprintf("Laporan Harian (%s)", start.Format("2006-01-02")),
			FilePart: fmt.Sprintf("Harian-%s", start.Format("2006-01-02")),
		}
	}
}
