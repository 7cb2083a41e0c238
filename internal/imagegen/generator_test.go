package imagegen

import (
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func newTestGenerator(t *testing.T) (*Generator, string) {
	t.Helper()
	root := t.TempDir()
	g, err := NewGenerator(root, "")
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g, root
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func assertOpaque(t *testing.T, img image.Image) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 17 {
		for x := b.Min.X; x < b.Max.X; x += 17 {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				t.Fatalf("pixel (%d,%d) is not opaque: alpha=%d", x, y, a)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		material string
		category string
		want     textureClass
	}{
		{"wood category", "栗", "木材", classWood},
		{"wood english", "oak", "wood", classWood},
		{"metal category", "銅", "金属", classMetal},
		{"metal by name", "アルミニウム（純アルミ）", "", classMetal},
		{"stainless by name", "ステンレス鋼", "その他", classMetal},
		{"plastic category", "ナイロン", "樹脂", classPlastic},
		{"resin code pp", "PP（ポリプロピレン）", "", classPlastic},
		{"resin code pvc", "硬質PVC", "", classPlastic},
		// Resin codes match case-sensitively; lowercase fragments of
		// unrelated names must not classify as plastic.
		{"copper is not plastic", "copper", "", classGeneric},
		{"unknown", "セラミック", "", classGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.material, tt.category); got != tt.want {
				t.Errorf("classify(%q, %q) = %v, want %v", tt.material, tt.category, got, tt.want)
			}
		})
	}
}

func TestTextureDimensionsAndOpacity(t *testing.T) {
	g, _ := newTestGenerator(t)
	for _, tt := range []struct {
		name     string
		category string
	}{
		{"カリン", "木材"},
		{"アルミ", "金属"},
		{"PP", "プラスチック"},
		{"セラミック", ""},
	} {
		img := g.Texture(tt.name, tt.category)
		if got := img.Bounds(); got.Dx() != textureWidth || got.Dy() != textureHeight {
			t.Errorf("Texture(%q) bounds = %v", tt.name, got)
		}
		assertOpaque(t, img)
	}
}

func TestGeneratePrimary(t *testing.T) {
	g, root := newTestGenerator(t)

	rel, err := g.GeneratePrimary("アルミニウム（純アルミ）", "金属")
	if err != nil {
		t.Fatalf("GeneratePrimary: %v", err)
	}
	want := "static/images/materials/アルミニウム（純アルミ）/primary.jpg"
	if rel != want {
		t.Errorf("rel path = %q, want %q", rel, want)
	}

	img := decodeFile(t, filepath.Join(root, filepath.FromSlash(rel)))
	if got := img.Bounds(); got.Dx() != textureWidth || got.Dy() != textureHeight {
		t.Errorf("bounds = %v", got)
	}
	assertOpaque(t, img)
}

func TestGeneratePrimaryEmptyName(t *testing.T) {
	g, _ := newTestGenerator(t)
	if _, err := g.GeneratePrimary("   ", ""); !errors.Is(err, errEmptyName) {
		t.Errorf("err = %v, want errEmptyName", err)
	}
}

func TestGenerateUseExample(t *testing.T) {
	g, root := newTestGenerator(t)

	rel, err := g.GenerateUseExample("栗", "家具の空間利用例", "空間", "space")
	if err != nil {
		t.Fatalf("GenerateUseExample: %v", err)
	}
	want := "static/images/materials/栗/uses/space.jpg"
	if rel != want {
		t.Errorf("rel path = %q, want %q", rel, want)
	}

	f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("jpeg decode: %v", err)
	}
	if got := img.Bounds(); got.Dx() != useExampleWidth || got.Dy() != useExampleHeight {
		t.Errorf("bounds = %v", got)
	}
}

func TestGenerateUseExampleProductSlot(t *testing.T) {
	g, _ := newTestGenerator(t)
	rel, err := g.GenerateUseExample("栗", "椅子", "プロダクト", "product")
	if err != nil {
		t.Fatalf("GenerateUseExample: %v", err)
	}
	if want := "static/images/materials/栗/uses/product.jpg"; rel != want {
		t.Errorf("rel path = %q, want %q", rel, want)
	}
}

func TestProcessFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"射出成形", "射出成形.png"},
		{"3Dプリント", "3Dプリント.png"},
		{"レーザー加工（CO2）", "レーザー加工CO2.png"},
		{"切削・研磨", "切削_研磨.png"},
		{"曲げ/絞り", "曲げ_絞り.png"},
		{" 接着 ", "接着.png"},
	}
	for _, tt := range tests {
		if got := processFileName(tt.in); got != tt.want {
			t.Errorf("processFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateProcessExample(t *testing.T) {
	g, root := newTestGenerator(t)

	rel, err := g.GenerateProcessExample("射出成形")
	if err != nil {
		t.Fatalf("GenerateProcessExample: %v", err)
	}
	want := "static/generated/process_examples/射出成形.png"
	if rel != want {
		t.Errorf("rel path = %q, want %q", rel, want)
	}

	f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	if got := img.Bounds(); got.Dx() != processWidth || got.Dy() != processHeight {
		t.Errorf("bounds = %v", got)
	}
	assertOpaque(t, img)
}

func TestGenerateElementBadge(t *testing.T) {
	g, root := newTestGenerator(t)

	rel, err := g.GenerateElementBadge("Fe", 26, "遷移金属")
	if err != nil {
		t.Fatalf("GenerateElementBadge: %v", err)
	}
	want := "static/generated/elements/Fe.png"
	if rel != want {
		t.Errorf("rel path = %q, want %q", rel, want)
	}

	img := decodeFile(t, filepath.Join(root, filepath.FromSlash(rel)))
	if got := img.Bounds(); got.Dx() != badgeSize || got.Dy() != badgeSize {
		t.Errorf("bounds = %v", got)
	}
	assertOpaque(t, img)
}

func TestElementsTable(t *testing.T) {
	if len(Elements) != 118 {
		t.Fatalf("elements = %d, want 118", len(Elements))
	}
	seen := make(map[string]bool, len(Elements))
	for i, e := range Elements {
		if e.AtomicNumber != i+1 {
			t.Errorf("element %d: atomic number = %d", i, e.AtomicNumber)
		}
		if seen[e.Symbol] {
			t.Errorf("duplicate symbol %q", e.Symbol)
		}
		seen[e.Symbol] = true
		if _, ok := elementCategoryColors[e.Group]; !ok {
			t.Errorf("element %s: group %q has no badge color", e.Symbol, e.Group)
		}
	}
}

func TestGenerateElementBadgeEmptySymbol(t *testing.T) {
	g, _ := newTestGenerator(t)
	if _, err := g.GenerateElementBadge("", 0, ""); !errors.Is(err, errEmptyName) {
		t.Errorf("err = %v, want errEmptyName", err)
	}
}
