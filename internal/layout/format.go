package layout

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencySuffix follows every printed amount.
const CurrencySuffix = " DH"

// ptToMM converts a font size in points to millimetres.
const ptToMM = 0.3528

// avgGlyph is the average glyph advance of the core fonts relative to the
// font size.
const avgGlyph = 0.5

// FormatMoney prints v with two decimals and the currency suffix.
func FormatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + CurrencySuffix
}

// FormatQuantity prints a quantity without trailing zeros.
func FormatQuantity(q float64) string {
	return decimal.NewFromFloat(q).String()
}

// FormatPercent prints a rate given in percent, e.g. 20 -> "20%".
func FormatPercent(rate float64) string {
	return decimal.NewFromFloat(rate).String() + "%"
}

// FormatDate prints t as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// capacity is how many runes of size-pt text fit in width millimetres.
func capacity(width, size float64) int {
	n := int((width - 2) / (size * ptToMM * avgGlyph))
	if n < 4 {
		return 4
	}
	return n
}

// fit truncates s with "..." so that it fits width.
func fit(s string, width, size float64) string {
	limit := capacity(width, size)
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimSpace(string(r[:limit-3])) + "..."
}

// wrap splits s into lines that fit width, honoring explicit newlines and
// hard-splitting words longer than a line.
func wrap(s string, width, size float64) []string {
	limit := capacity(width, size)
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var cur []rune
		for _, word := range strings.Fields(para) {
			w := []rune(word)
			for len(w) > limit {
				if len(cur) > 0 {
					lines = append(lines, string(cur))
					cur = nil
				}
				lines = append(lines, string(w[:limit]))
				w = w[limit:]
			}
			if len(w) == 0 {
				continue
			}
			switch {
			case len(cur) == 0:
				cur = w
			case len(cur)+1+len(w) <= limit:
				cur = append(append(cur, ' '), w...)
			default:
				lines = append(lines, string(cur))
				cur = w
			}
		}
		if len(cur) > 0 {
			lines = append(lines, string(cur))
		}
	}
	return lines
}
