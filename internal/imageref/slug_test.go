package imageref

import "testing"

func TestSafeSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain ascii name",
			input:    "oak",
			expected: "oak",
		},
		{
			name:     "japanese name untouched",
			input:    "アルミニウム",
			expected: "アルミニウム",
		},
		{
			name:     "parentheses kept",
			input:    "アルミニウム（純アルミ）",
			expected: "アルミニウム（純アルミ）",
		},
		{
			name:     "forward slash replaced",
			input:    "PP/PE",
			expected: "PP_PE",
		},
		{
			name:     "every forbidden character replaced",
			input:    `a/b\c:d*e?f"g<h>i|j`,
			expected: "a_b_c_d_e_f_g_h_i_j",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  樫  ",
			expected: "樫",
		},
		{
			name:     "empty string stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeSlug(tt.input); got != tt.expected {
				t.Errorf("SafeSlug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeSlugIdempotent(t *testing.T) {
	inputs := []string{"PP/PE", `板材:特注`, "アルミニウム（純アルミ）", "wood*?"}
	for _, in := range inputs {
		once := SafeSlug(in)
		twice := SafeSlug(once)
		if once != twice {
			t.Errorf("SafeSlug not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
