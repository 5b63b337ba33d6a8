package textclean

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"accents kept", "Café à Rabat – très bien…", "Café à Rabat - très bien..."},
		{"cedilla and circumflex", "Garçon, hôtel, Noël", "Garçon, hôtel, Noël"},
		{"curly quotes", "“L’offre”", `"L'offre"`},
		{"em dash", "prix—remise", "prix-remise"},
		{"emoji removed", "Merci 🙏 pour votre achat 🎉", "Merci  pour votre achat"},
		{"dingbat removed", "✔ Livré", "Livré"},
		{"zwj sequence removed", "Équipe 👩‍💻", "Équipe"},
		{"flag removed", "Maroc 🇲🇦", "Maroc"},
		{"nbsp to space", "1\u00a0000\u202fDH", "1 000 DH"},
		{"trim", "  \t ligne \n ", "ligne"},
		{"decomposed accent composed", "e\u0301te\u0301", "\u00e9t\u00e9"},
		{"controls dropped", "a\x00b\rc", "abc"},
		{"newline kept", "ligne 1\nligne 2", "ligne 1\nligne 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Café à Rabat – très bien…",
		"  👍 ok  ",
		"e\uFE0F\u0301",
		"« guillemets » et ‘apostrophes’",
		"……",
		"🙂   x",
		string([]byte{0xff, 'a', 0xfe}),
	}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestLines(t *testing.T) {
	got := Lines("  Rabat ", "", "🙂", "Tél : 0600")
	if len(got) != 2 || got[0] != "Rabat" || got[1] != "Tél : 0600" {
		t.Fatalf("Lines() = %#v", got)
	}
}
