package titles

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "The Price Is Right", "The Price Is Right"},
		{"superscript new marker", "Judge Judy ᴺᵉʷ", "Judge Judy"},
		{"parenthesised new", "Local News (NEW)", "Local News"},
		{"dash new", "Morning Show - new", "Morning Show"},
		{"en dash new", "Morning Show –NEW", "Morning Show"},
		{"embedded newline", "Two\nLine Title", "Two Line Title"},
		{"double spaces", "Too   Many    Spaces", "Too Many Spaces"},
		{"surrounding whitespace", "  Padded  ", "Padded"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeKeepsInteriorNew(t *testing.T) {
	// "New" is only a marker at the end of the title.
	if got := Normalize("New Girl"); got != "New Girl" {
		t.Fatalf("leading New should survive, got %q", got)
	}
	if got := Normalize("Brand New Day"); got != "Brand New Day" {
		// trailing word "Day" protects the interior "New"
		t.Fatalf("interior New should survive, got %q", got)
	}
}

func TestKeyCaseFolds(t *testing.T) {
	if Key("JUDGE JUDY ᴺᵉʷ") != Key("Judge Judy") {
		t.Fatal("keys for the same show should match regardless of case and markers")
	}
}
