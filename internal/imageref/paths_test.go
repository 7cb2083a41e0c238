package imageref

import (
	"path/filepath"
	"testing"
)

func TestConventionPath(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		ext      string
		expected string
	}{
		{
			name:     "primary",
			kind:     KindPrimary,
			ext:      ".jpg",
			expected: filepath.Join("root", "static", "images", "materials", "oak", "primary.jpg"),
		},
		{
			name:     "space use",
			kind:     KindSpace,
			ext:      ".png",
			expected: filepath.Join("root", "static", "images", "materials", "oak", "uses", "space.png"),
		},
		{
			name:     "product use",
			kind:     KindProduct,
			ext:      ".webp",
			expected: filepath.Join("root", "static", "images", "materials", "oak", "uses", "product.webp"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConventionPath("root", "oak", tt.kind, tt.ext); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestURLPath(t *testing.T) {
	if got := URLPath("oak", KindPrimary); got != "materials/oak/primary.jpg" {
		t.Errorf("primary: got %q", got)
	}
	if got := URLPath("oak", KindSpace); got != "materials/oak/uses/space.jpg" {
		t.Errorf("space: got %q", got)
	}
}

func TestParseKind(t *testing.T) {
	valid := map[string]Kind{
		"primary": KindPrimary,
		"Primary": KindPrimary,
		" space ": KindSpace,
		"PRODUCT": KindProduct,
	}
	for in, want := range valid {
		kind, ok := ParseKind(in)
		if !ok || kind != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, true", in, kind, ok, want)
		}
	}

	for _, in := range []string{"", "texture", "uses"} {
		if _, ok := ParseKind(in); ok {
			t.Errorf("ParseKind(%q) unexpectedly valid", in)
		}
	}
}

func TestResolveVersionPrefersConfigured(t *testing.T) {
	if got := ResolveVersion("abc123"); got != "abc123" {
		t.Errorf("got %q, want abc123", got)
	}
	if got := ResolveVersion(""); got == "" {
		t.Error("empty configured version must still resolve to something")
	}
}
