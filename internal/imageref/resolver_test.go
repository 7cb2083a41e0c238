package imageref

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, root string, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("not a real image, stat only"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestResolveDBURLWins(t *testing.T) {
	root := t.TempDir()
	// A local file exists too; the database URL must still win.
	writeFixture(t, root, "static/images/materials/oak/primary.jpg")

	r := NewResolver(Config{
		BaseURL:     "https://img.example.com/assets",
		Version:     "abc123",
		ProjectRoot: root,
	})

	fields := MaterialImageFields{
		Name:            "oak",
		TextureImageURL: "https://cdn.example.com/x.jpg",
	}

	ref, trace := r.Resolve(fields, KindPrimary)
	if ref.Branch != BranchDBURL {
		t.Fatalf("expected db_url branch, got %s", ref.Branch)
	}
	if ref.URL != "https://cdn.example.com/x.jpg?v=abc123" {
		t.Errorf("unexpected url: %q", ref.URL)
	}
	if trace.ChosenBranch != BranchDBURL || trace.FinalSrcType != "url" {
		t.Errorf("trace mismatch: branch=%s type=%s", trace.ChosenBranch, trace.FinalSrcType)
	}
}

func TestResolveDBURLQuerySeparator(t *testing.T) {
	r := NewResolver(Config{Version: "abc123", ProjectRoot: t.TempDir()})

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "no existing query uses question mark",
			url:      "https://cdn.example.com/x.jpg",
			expected: "https://cdn.example.com/x.jpg?v=abc123",
		},
		{
			name:     "existing query uses ampersand",
			url:      "https://cdn.example.com/x.jpg?w=800",
			expected: "https://cdn.example.com/x.jpg?w=800&v=abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, _ := r.Resolve(MaterialImageFields{Name: "oak", TextureImageURL: tt.url}, KindPrimary)
			if ref.URL != tt.expected {
				t.Errorf("got %q, want %q", ref.URL, tt.expected)
			}
		})
	}
}

func TestResolveDBURLRejectsNonHTTP(t *testing.T) {
	root := t.TempDir()
	local := writeFixture(t, root, "static/images/materials/oak/primary.jpg")

	r := NewResolver(Config{Version: "v1", ProjectRoot: root})
	fields := MaterialImageFields{
		Name:            "oak",
		TextureImageURL: "static/images/materials/oak/primary.jpg",
	}

	ref, trace := r.Resolve(fields, KindPrimary)
	if ref.Branch != BranchLocal {
		t.Fatalf("expected fallthrough to local, got %s", ref.Branch)
	}
	if ref.Path != local {
		t.Errorf("got path %q, want %q", ref.Path, local)
	}

	// The rejected URL must be recorded.
	found := false
	for _, c := range trace.Candidates {
		if c.Branch == BranchDBURL && c.Reason != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a failed db_url candidate in trace")
	}
}

func TestResolveBaseURL(t *testing.T) {
	r := NewResolver(Config{
		BaseURL:     "https://img.example.com/assets/", // trailing slash must not double
		Version:     "abc123",
		ProjectRoot: t.TempDir(),
	})

	ref, _ := r.Resolve(MaterialImageFields{Name: "oak"}, KindPrimary)
	if ref.Branch != BranchBaseURL {
		t.Fatalf("expected base_url branch, got %s", ref.Branch)
	}
	want := "https://img.example.com/assets/materials/oak/primary.jpg?v=abc123"
	if ref.URL != want {
		t.Errorf("got %q, want %q", ref.URL, want)
	}
}

func TestResolveBaseURLUseExample(t *testing.T) {
	r := NewResolver(Config{
		BaseURL:     "https://img.example.com",
		Version:     "v9",
		ProjectRoot: t.TempDir(),
	})

	fields := MaterialImageFields{
		Name: "oak",
		UseExamples: []UseExampleRef{
			{Domain: "空間デザイン"},
		},
	}
	ref, _ := r.Resolve(fields, KindSpace)
	want := "https://img.example.com/materials/oak/uses/space.jpg?v=v9"
	if ref.URL != want {
		t.Errorf("got %q, want %q", ref.URL, want)
	}
}

func TestResolveLocalConvention(t *testing.T) {
	root := t.TempDir()
	// Slug with replaced characters; the display name carries parentheses.
	writeFixture(t, root, "static/images/materials/アルミニウム（純アルミ）/primary.png")

	r := NewResolver(Config{Version: "v1", ProjectRoot: root})
	ref, trace := r.Resolve(MaterialImageFields{NameOfficial: "アルミニウム（純アルミ）"}, KindPrimary)

	if ref.Branch != BranchLocal {
		t.Fatalf("expected local branch, got %s (trace: %+v)", ref.Branch, trace.Candidates)
	}
	if filepath.Base(ref.Path) != "primary.png" {
		t.Errorf("unexpected path %q", ref.Path)
	}
	if ref.Size == 0 {
		t.Error("expected non-zero size from stat")
	}
	// Legacy branch must not have been consulted once local matched.
	for _, c := range trace.Candidates {
		if c.Branch == BranchLegacy {
			t.Errorf("legacy branch consulted despite local hit: %+v", c)
		}
	}
}

func TestResolveLocalExtensionPriority(t *testing.T) {
	root := t.TempDir()
	jpg := writeFixture(t, root, "static/images/materials/oak/primary.jpg")
	writeFixture(t, root, "static/images/materials/oak/primary.png")

	r := NewResolver(Config{ProjectRoot: root})
	ref, _ := r.Resolve(MaterialImageFields{Name: "oak"}, KindPrimary)
	if ref.Path != jpg {
		t.Errorf("expected .jpg to win over .png, got %q", ref.Path)
	}
}

func TestResolveLocalNestedLegacyShape(t *testing.T) {
	root := t.TempDir()
	nested := writeFixture(t, root, "static/images/materials/oak/primary/primary.jpg")

	r := NewResolver(Config{ProjectRoot: root})
	ref, _ := r.Resolve(MaterialImageFields{Name: "oak"}, KindPrimary)
	if ref.Branch != BranchLocal {
		t.Fatalf("expected local branch for nested shape, got %s", ref.Branch)
	}
	if ref.Path != nested {
		t.Errorf("got %q, want %q", ref.Path, nested)
	}
}

func TestResolveFullMiss(t *testing.T) {
	r := NewResolver(Config{ProjectRoot: t.TempDir()})
	ref, trace := r.Resolve(MaterialImageFields{Name: "unobtainium"}, KindPrimary)

	if !ref.IsZero() {
		t.Fatalf("expected zero ref, got %+v", ref)
	}
	if trace.ChosenBranch != BranchNone || trace.FinalSrcType != "none" {
		t.Errorf("trace mismatch: branch=%s type=%s", trace.ChosenBranch, trace.FinalSrcType)
	}
	if len(trace.Candidates) == 0 {
		t.Error("expected failed candidates in trace")
	}
}

func TestResolveSpaceRequiresMatchingUseExample(t *testing.T) {
	r := NewResolver(Config{ProjectRoot: t.TempDir()})
	fields := MaterialImageFields{
		Name: "oak",
		UseExamples: []UseExampleRef{
			{Domain: "プロダクト", ImageURL: "https://cdn.example.com/p.jpg"},
		},
	}

	// Product slot is served by the matching row.
	ref, _ := r.Resolve(fields, KindProduct)
	if ref.Branch != BranchDBURL {
		t.Errorf("expected db_url for product, got %s", ref.Branch)
	}

	// Space slot has no matching row and no other source.
	ref, _ = r.Resolve(fields, KindSpace)
	if !ref.IsZero() {
		t.Errorf("expected miss for space, got %+v", ref)
	}
}

func TestResolveLegacyFallback(t *testing.T) {
	root := t.TempDir()
	legacy := writeFixture(t, root, "static/images/materials/樫/primary.jpg")

	r := NewResolver(Config{
		ProjectRoot: root,
		Legacy:      DirScanLookup{ProjectRoot: root},
	})

	// Official name resolves nothing; the paren-stripped variant matches
	// the 樫 directory.
	fields := MaterialImageFields{NameOfficial: "樫（オーク）", NameAliases: []string{"樫"}}
	ref, trace := r.Resolve(fields, KindPrimary)

	if ref.Branch != BranchLegacy {
		t.Fatalf("expected legacy branch, got %s (trace: %+v)", ref.Branch, trace.Candidates)
	}
	if ref.Path != legacy {
		t.Errorf("got %q, want %q", ref.Path, legacy)
	}
}

func TestResolverVersionDefault(t *testing.T) {
	r := NewResolver(Config{ProjectRoot: t.TempDir()})
	if r.Version() == "" {
		t.Error("version must never be empty")
	}
}
