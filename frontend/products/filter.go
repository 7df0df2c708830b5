package products

import (
	"fmt"
	"strings"
)

// FilterResult reports row visibility after a search plus the counter
// label shown under the table.
type FilterResult struct {
	Visible      []bool
	VisibleCount int
	TotalCount   int
	CounterLabel string
}

// FilterRows runs a case-insensitive substring match of query against
// each row's full text. The rows themselves are untouched; only
// visibility flags and the counter come back.
func FilterRows(rows []string, query string) FilterResult {
	q := strings.ToLower(strings.TrimSpace(query))
	result := FilterResult{
		Visible:    make([]bool, len(rows)),
		TotalCount: len(rows),
	}
	for i, row := range rows {
		if strings.Contains(strings.ToLower(row), q) {
			result.Visible[i] = true
			result.VisibleCount++
		}
	}
	if q == "" {
		result.CounterLabel = fmt.Sprintf("Menampilkan semua %d produk", result.TotalCount)
	} else {
		result.CounterLabel = fmt.Sprintf("Menampilkan %d dari %d produk", result.VisibleCount, result.TotalCount)
	}
	return result
}
