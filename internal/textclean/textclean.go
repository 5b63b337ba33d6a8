// Package textclean prepares free-text fields for the limited glyph set of
// the PDF core fonts.
package textclean

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var replacer = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201A", "'", "\u201B", "'", "\u2032", "'",
	"\u201C", `"`, "\u201D", `"`, "\u201E", `"`, "\u201F", `"`, "\u2033", `"`,
	"\u2010", "-", "\u2011", "-", "\u2012", "-", "\u2013", "-", "\u2014", "-", "\u2015", "-", "\u2212", "-",
	"\u2026", "...",
	"\u00A0", " ", "\u202F", " ", "\u2007", " ", "\u2009", " ",
)

// Sanitize strips pictographs and typographic artifacts from s and trims it.
// Accented Latin letters are kept (and composed to NFC). Sanitize is idempotent.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	s = replacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if dropped(r) {
			return -1
		}
		return r
	}, s)
	s = norm.NFC.String(s)
	return strings.TrimSpace(s)
}

// Lines sanitizes every entry and drops the ones that end up empty.
func Lines(in ...string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = Sanitize(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func dropped(r rune) bool {
	switch {
	case r == '\n' || r == '\t':
		return false
	case r < 0x20 || r == 0x7F:
		return true
	case r == 0x200D, r == 0x20E3, r == 0xFEFF:
		return true
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	case r >= 0x2300 && r <= 0x23FF:
		return true
	case r >= 0x2460 && r <= 0x24FF:
		return true
	case r >= 0x25A0 && r <= 0x27BF:
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		return true
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0xE0000 && r <= 0xE007F:
		return true
	case unicode.Is(unicode.Co, r):
		return true
	}
	return false
}
