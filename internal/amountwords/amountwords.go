// Package amountwords spells currency amounts out in French, the way totals
// are restated in words at the bottom of printed invoices.
//
// Conventions: hyphens join the words inside a number below one hundred
// ("trente-quatre", "vingt-et-un", "quatre-vingt-dix"); "cent", "mille" and
// "million" are separated by spaces. "cent" and "vingt" take their plural s
// only at the very end of the number or right before "million(s)"; before
// "mille" they stay invariable ("deux cent mille", "quatre-vingt mille").
// Fractions are rounded to the centime, half away from zero.
package amountwords

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// ZeroPhrase is returned for an amount that rounds to zero.
	ZeroPhrase = "Zéro dirhams"
	// TooLargePhrase is returned for amounts of one billion and more.
	TooLargePhrase = "Montant très élevé"

	currencyUnit    = "dirham"
	fractionUnit    = "centime"
	limit           = 1_000_000_000
	oneMillion      = 1_000_000
	oneThousand     = 1_000
	oneHundred      = 100
	integerFraction = " et "
)

var units = [20]string{
	"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf",
	"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize", "dix-sept", "dix-huit", "dix-neuf",
}

var tens = [10]string{
	"", "", "vingt", "trente", "quarante", "cinquante", "soixante", "soixante", "quatre-vingt", "quatre-vingt",
}

// AmountInWords returns the French words for amount in dirhams and centimes,
// e.g. 1234.56 -> "Mille deux cent trente-quatre dirhams et cinquante-six centimes".
// The sign is ignored: callers convey it through their own labels.
func AmountInWords(amount float64) string {
	if math.IsNaN(amount) {
		return ZeroPhrase
	}
	if math.IsInf(amount, 0) {
		return TooLargePhrase
	}
	d := decimal.NewFromFloat(amount).Abs().Round(2)
	whole := d.Truncate(0)
	if whole.GreaterThanOrEqual(decimal.NewFromInt(limit)) {
		return TooLargePhrase
	}
	i := whole.IntPart()
	f := d.Sub(whole).Shift(2).IntPart()
	if i == 0 && f == 0 {
		return ZeroPhrase
	}

	parts := make([]string, 0, 2)
	if i > 0 {
		noun := plural(currencyUnit, i)
		if i%oneMillion == 0 {
			noun = "de " + noun
		}
		parts = append(parts, Spell(i)+" "+noun)
	}
	if f > 0 {
		parts = append(parts, Spell(f)+" "+plural(fractionUnit, f))
	}
	return capitalize(strings.Join(parts, integerFraction))
}

// Spell returns the lower-case French words for n (0 <= n < 1e9).
// Out-of-range values yield TooLargePhrase.
func Spell(n int64) string {
	if n < 0 || n >= limit {
		return TooLargePhrase
	}
	return spell(n, true)
}

// spell converts n; final reports whether nothing but a noun follows, which
// decides the plural of "cent" and "vingt".
func spell(n int64, final bool) string {
	switch {
	case n < 20:
		return units[n]
	case n < oneHundred:
		return belowHundred(n, final)
	case n < oneThousand:
		return hundreds(n, final)
	case n < oneMillion:
		t, r := n/oneThousand, n%oneThousand
		head := "mille"
		if t > 1 {
			head = spell(t, false) + " mille"
		}
		if r == 0 {
			return head
		}
		return head + " " + spell(r, final)
	default:
		m, r := n/oneMillion, n%oneMillion
		head := spell(m, true) + " " + plural("million", m)
		if r == 0 {
			return head
		}
		return head + " " + spell(r, final)
	}
}

func belowHundred(n int64, final bool) string {
	t, u := n/10, n%10
	switch t {
	case 7, 9:
		if t == 7 && u == 1 {
			return tens[t] + "-et-" + units[11]
		}
		return tens[t] + "-" + units[10+u]
	case 8:
		if u == 0 {
			if final {
				return tens[t] + "s"
			}
			return tens[t]
		}
		return tens[t] + "-" + units[u]
	}
	switch u {
	case 0:
		return tens[t]
	case 1:
		return tens[t] + "-et-un"
	}
	return tens[t] + "-" + units[u]
}

func hundreds(n int64, final bool) string {
	h, r := n/oneHundred, n%oneHundred
	head := "cent"
	if h > 1 {
		head = units[h] + " cent"
	}
	if r == 0 {
		if h > 1 && final {
			return head + "s"
		}
		return head
	}
	return head + " " + spell(r, final)
}

func plural(word string, n int64) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
