package imagegen

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/materiallab/materialmap/internal/imageref"
)

const badgeSize = 240

// Background colors per chemical element category.
var elementCategoryColors = map[string]color.NRGBA{
	"アルカリ金属":    {R: 244, G: 164, B: 96, A: 255},
	"アルカリ土類金属": {R: 222, G: 184, B: 135, A: 255},
	"遷移金属":       {R: 176, G: 196, B: 222, A: 255},
	"金属":          {R: 190, G: 190, B: 200, A: 255},
	"半金属":        {R: 152, G: 195, B: 167, A: 255},
	"非金属":        {R: 168, G: 208, B: 141, A: 255},
	"ハロゲン":       {R: 240, G: 230, B: 140, A: 255},
	"貴ガス":        {R: 200, G: 180, B: 220, A: 255},
	"ランタノイド":    {R: 230, G: 190, B: 200, A: 255},
	"アクチノイド":    {R: 220, G: 170, B: 180, A: 255},
}

// GenerateElementBadge draws the abstract badge for one chemical element:
// symbol plus atomic number on a category-colored background. Persists
// under static/generated/elements and returns the project-root-relative
// path.
func (g *Generator) GenerateElementBadge(symbol string, atomicNumber int, category string) (string, error) {
	if symbol == "" {
		return "", imageref.NewError(imageref.KindNotFound, "", errEmptyName)
	}
	bg, ok := elementCategoryColors[category]
	if !ok {
		bg = color.NRGBA{R: 210, G: 210, B: 210, A: 255}
	}

	dc := gg.NewContext(badgeSize, badgeSize)
	dc.SetColor(bg)
	dc.Clear()

	// Inner panel for contrast.
	dc.SetRGBA255(255, 255, 255, 60)
	dc.DrawRoundedRectangle(12, 12, badgeSize-24, badgeSize-24, 16)
	dc.Fill()

	dc.SetFontFace(g.fonts.face(20))
	dc.SetRGB255(60, 60, 60)
	dc.DrawString(fmt.Sprintf("%d", atomicNumber), 24, 44)

	dc.SetFontFace(g.fonts.face(96))
	dc.SetRGB255(40, 40, 40)
	dc.DrawStringAnchored(symbol, badgeSize/2, badgeSize/2+10, 0.5, 0.5)

	path := filepath.Join(g.projectRoot, "static", "generated", "elements", symbol+".png")
	if err := savePNG(path, dc.Image()); err != nil {
		return "", err
	}
	return relToRoot(g.projectRoot, path), nil
}
