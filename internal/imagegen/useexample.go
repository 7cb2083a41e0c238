package imagegen

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/materiallab/materialmap/internal/imageref"
)

const (
	useExampleWidth  = 400
	useExampleHeight = 300
)

// Background tints per usage domain label.
var domainColors = map[string]color.NRGBA{
	"キッチン":   {R: 255, G: 240, B: 230, A: 255},
	"建築":     {R: 240, G: 240, B: 250, A: 255},
	"内装":     {R: 250, G: 250, B: 240, A: 255},
	"空間":     {R: 250, G: 250, B: 240, A: 255},
	"プロダクト":  {R: 240, G: 250, B: 240, A: 255},
	"生活":     {R: 250, G: 240, B: 250, A: 255},
	"space":   {R: 250, G: 250, B: 240, A: 255},
	"product": {R: 240, G: 250, B: 240, A: 255},
}

// materialAccent picks the disc color standing in for the material itself.
func materialAccent(name string) color.NRGBA {
	switch {
	case containsAny(name, "アルミ"):
		return color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	case containsAny(name, "ステンレス"):
		return color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	case containsAny(name, "真鍮", "黄銅"):
		return color.NRGBA{R: 218, G: 165, B: 32, A: 255}
	case classify(name, "") == classPlastic:
		return color.NRGBA{R: 200, G: 230, B: 255, A: 255}
	}
	return color.NRGBA{R: 180, G: 180, B: 180, A: 255}
}

// UseExample draws an abstract usage illustration: a domain-tinted canvas
// with a disc in the material's accent color and the labels placed around
// it.
func (g *Generator) UseExample(materialName, title, domain string) *gg.Context {
	bg, ok := domainColors[domain]
	if !ok {
		bg = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	}

	dc := gg.NewContext(useExampleWidth, useExampleHeight)
	dc.SetColor(bg)
	dc.Clear()

	cx, cy := float64(useExampleWidth)/2, float64(useExampleHeight)/2
	radius := float64(useExampleHeight) / 4

	dc.SetColor(materialAccent(materialName))
	dc.DrawCircle(cx, cy, radius)
	dc.FillPreserve()
	dc.SetRGB255(150, 150, 150)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetFontFace(g.fonts.face(24))
	dc.SetRGB255(50, 50, 50)
	dc.DrawStringAnchored(title, cx, cy+radius+30, 0.5, 0.5)

	dc.SetFontFace(g.fonts.face(14))
	dc.SetRGB255(100, 100, 100)
	dc.DrawString(domain, 10, 24)

	return dc
}

// GenerateUseExample synthesizes a usage image and persists it at the
// conventional path for the slot (uses/space.jpg or uses/product.jpg).
// Returns the project-root-relative path of the written file.
func (g *Generator) GenerateUseExample(materialName, title, domain string, kind imageref.Kind) (string, error) {
	slug := imageref.SafeSlug(materialName)
	if slug == "" {
		return "", imageref.NewError(imageref.KindNotFound, "", errEmptyName)
	}
	dc := g.UseExample(materialName, title, domain)
	path := imageref.ConventionPath(g.projectRoot, slug, kind, ".jpg")
	if err := saveJPEG(path, dc.Image(), 90); err != nil {
		return "", err
	}
	return relToRoot(g.projectRoot, path), nil
}
