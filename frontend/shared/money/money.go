package money

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// Format renders a whole-rupiah amount as "Rp 12.500" (id-ID grouping,
// no fraction digits).
func Format(amount int64) string {
	return printer.Sprintf("Rp %v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// ParseUserInput strips every non-digit character and parses the rest as
// an integer. Empty or fully non-numeric input yields 0.
//
// This is a lossy one-way normalization: grouping separators inserted by
// Format are stripped, fractional amounts are not representable.
func ParseUserInput(raw string) int64 {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatInput reformats a user-typed amount with grouping separators,
// mirroring what the raw field shows while typing.
func FormatInput(raw string) string {
	n := ParseUserInput(raw)
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return printer.Sprintf("%v", number.Decimal(n, number.MaxFractionDigits(0)))
}
