package imageref

import (
	"reflect"
	"testing"
)

func TestNameVariants(t *testing.T) {
	tests := []struct {
		name     string
		fields   MaterialImageFields
		expected []string
	}{
		{
			name:     "plain name yields single variant",
			fields:   MaterialImageFields{Name: "oak"},
			expected: []string{"oak"},
		},
		{
			name:     "fullwidth parentheses stripped",
			fields:   MaterialImageFields{Name: "アルミニウム（純アルミ）"},
			expected: []string{"アルミニウム（純アルミ）", "アルミニウム"},
		},
		{
			name:     "ascii parentheses stripped",
			fields:   MaterialImageFields{Name: "Oak (white)"},
			expected: []string{"Oak (white)", "Oak"},
		},
		{
			name:   "trailing spec code stripped",
			fields: MaterialImageFields{Name: "アルミニウム A5052"},
			expected: []string{
				"アルミニウム A5052",
				"アルミニウム",
			},
		},
		{
			name:   "aliases appended after derived variants",
			fields: MaterialImageFields{Name: "真鍮", NameAliases: []string{"黄銅", "brass"}},
			expected: []string{
				"真鍮",
				"黄銅",
				"brass",
			},
		},
		{
			name:   "duplicates removed preserving order",
			fields: MaterialImageFields{Name: "樫（オーク）", NameAliases: []string{"樫"}},
			expected: []string{
				"樫（オーク）",
				"樫",
			},
		},
		{
			name:     "official name preferred over legacy name",
			fields:   MaterialImageFields{Name: "old", NameOfficial: "new"},
			expected: []string{"new"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nameVariants(tt.fields)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("nameVariants() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDirScanLookupSkipsPrimarySlug(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "static/images/materials/oak/primary.jpg")

	lookup := DirScanLookup{ProjectRoot: root}
	// The only matching directory is the primary slug itself, which the
	// local branch already covers.
	path, tried := lookup.Locate(MaterialImageFields{Name: "oak"}, KindPrimary)
	if path != "" {
		t.Errorf("expected no legacy match, got %q", path)
	}
	if len(tried) != 0 {
		t.Errorf("expected no tried directories, got %v", tried)
	}
}

func TestDirScanLookupOnlyExistingDirectories(t *testing.T) {
	root := t.TempDir()
	// Alias directory exists but holds no image file.
	writeFixture(t, root, "static/images/materials/黄銅/notes.txt")

	lookup := DirScanLookup{ProjectRoot: root}
	fields := MaterialImageFields{Name: "真鍮", NameAliases: []string{"黄銅", "brass"}}

	path, tried := lookup.Locate(fields, KindPrimary)
	if path != "" {
		t.Errorf("expected no match, got %q", path)
	}
	// "brass" directory does not exist so it must not appear in tried.
	if !reflect.DeepEqual(tried, []string{"黄銅"}) {
		t.Errorf("tried = %v, want [黄銅]", tried)
	}
}

func TestDirScanLookupFindsNestedPrimary(t *testing.T) {
	root := t.TempDir()
	nested := writeFixture(t, root, "static/images/materials/黄銅/primary/primary.webp")

	lookup := DirScanLookup{ProjectRoot: root}
	fields := MaterialImageFields{Name: "真鍮", NameAliases: []string{"黄銅"}}

	path, _ := lookup.Locate(fields, KindPrimary)
	if path != nested {
		t.Errorf("got %q, want %q", path, nested)
	}
}

func TestDirScanLookupMissingRoot(t *testing.T) {
	lookup := DirScanLookup{ProjectRoot: t.TempDir()}
	path, tried := lookup.Locate(MaterialImageFields{Name: "oak"}, KindPrimary)
	if path != "" || tried != nil {
		t.Errorf("expected empty result for missing root, got %q %v", path, tried)
	}
}
