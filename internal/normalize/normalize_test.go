package normalize

import "testing"

// TestNormalize tests derivation of the lowercase and desubstituted forms.
func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		password      string
		lowercase     string
		desubstituted string
	}{
		{
			name:          "plain lowercase word",
			password:      "monkey",
			lowercase:     "monkey",
			desubstituted: "monkey",
		},
		{
			name:          "mixed case",
			password:      "MonKey",
			lowercase:     "monkey",
			desubstituted: "monkey",
		},
		{
			name:          "classic leetspeak",
			password:      "P@ssw0rd",
			lowercase:     "p@ssw0rd",
			desubstituted: "password",
		},
		{
			name:          "dollar and bang substitutions",
			password:      "adm!n$",
			lowercase:     "adm!n$",
			desubstituted: "admins",
		},
		{
			name:          "digits one three seven",
			password:      "h3110 w0r1d 7",
			lowercase:     "h3110 w0r1d 7",
			desubstituted: "hello world t",
		},
		{
			name:          "empty input is legal",
			password:      "",
			lowercase:     "",
			desubstituted: "",
		},
		{
			name:          "no substitution characters",
			password:      "correct horse",
			lowercase:     "correct horse",
			desubstituted: "correct horse",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			forms := Normalize(tc.password)
			if forms.Lowercase != tc.lowercase {
				t.Errorf("Lowercase = %q, expected %q", forms.Lowercase, tc.lowercase)
			}
			if forms.Desubstituted != tc.desubstituted {
				t.Errorf("Desubstituted = %q, expected %q", forms.Desubstituted, tc.desubstituted)
			}
		})
	}
}

// TestNormalizeIdempotent tests that normalizing an already-lowercased form
// yields the same lowercase form.
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	for _, password := range []string{"P@ssw0rd", "QWERTYuiop", "ｐａｓｓ", "Tr0ub4dor&3"} {
		first := Normalize(password)
		second := Normalize(first.Lowercase)
		if second.Lowercase != first.Lowercase {
			t.Errorf("normalization not idempotent for %q: %q != %q",
				password, second.Lowercase, first.Lowercase)
		}
	}
}

// TestNormalizeNFKC tests that visually equivalent unicode forms compare equal.
func TestNormalizeNFKC(t *testing.T) {
	t.Parallel()

	// Full-width latin letters fold to their ASCII equivalents under NFKC.
	forms := Normalize("ＰＡＳＳ")
	if forms.Lowercase != "pass" {
		t.Errorf("Lowercase = %q, expected %q", forms.Lowercase, "pass")
	}
}

// TestFormsSubstituted tests the Substituted predicate.
func TestFormsSubstituted(t *testing.T) {
	t.Parallel()

	if !Normalize("P@ss").Substituted() {
		t.Error("expected P@ss to report substitutions")
	}
	if Normalize("pass").Substituted() {
		t.Error("expected pass to report no substitutions")
	}
}
