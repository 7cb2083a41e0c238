package imagegen

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
)

const (
	processWidth  = 400
	processHeight = 300
)

// Background tints per processing method.
var processColors = map[string]color.NRGBA{
	"射出成形":   {R: 240, G: 250, B: 255, A: 255},
	"圧縮成形":   {R: 255, G: 250, B: 240, A: 255},
	"3Dプリント": {R: 250, G: 240, B: 250, A: 255},
	"レーザー加工": {R: 255, G: 240, B: 240, A: 255},
	"熱成形":    {R: 240, G: 255, B: 240, A: 255},
	"接着":     {R: 255, G: 255, B: 240, A: 255},
	"切削":     {R: 240, G: 240, B: 240, A: 255},
}

func processAccent(processName string) color.NRGBA {
	switch {
	case containsAny(processName, "3D", "プリント"):
		return color.NRGBA{R: 200, G: 150, B: 200, A: 255}
	case containsAny(processName, "レーザー"):
		return color.NRGBA{R: 200, G: 100, B: 100, A: 255}
	case containsAny(processName, "熱"):
		return color.NRGBA{R: 200, G: 150, B: 100, A: 255}
	}
	return color.NRGBA{R: 100, G: 100, B: 100, A: 255}
}

// GenerateProcessExample draws an abstract illustration for one
// processing method (tool silhouette plus a material blank) and persists
// it under static/generated/process_examples. Returns the
// project-root-relative path.
func (g *Generator) GenerateProcessExample(processName string) (string, error) {
	bg, ok := processColors[processName]
	if !ok {
		bg = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	}

	dc := gg.NewContext(processWidth, processHeight)
	dc.SetColor(bg)
	dc.Clear()

	cx, cy := float64(processWidth)/2, float64(processHeight)/2
	boxSize := float64(processHeight) / 3

	// Tool / machine silhouette.
	dc.SetColor(processAccent(processName))
	dc.DrawRectangle(cx-boxSize, cy-boxSize/2, boxSize*2, boxSize)
	dc.FillPreserve()
	dc.SetRGB255(80, 80, 80)
	dc.SetLineWidth(2)
	dc.Stroke()

	// Material blank entering the tool.
	matSize := boxSize / 3
	dc.SetRGB255(150, 150, 200)
	dc.DrawEllipse(cx-boxSize-matSize/2, cy, matSize/2, matSize/4)
	dc.FillPreserve()
	dc.SetRGB255(100, 100, 100)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetFontFace(g.fonts.face(20))
	dc.SetRGB255(50, 50, 50)
	dc.DrawStringAnchored(processName, cx, cy+boxSize/2+25, 0.5, 0.5)

	path := filepath.Join(g.projectRoot, "static", "generated", "process_examples", processFileName(processName))
	if err := savePNG(path, dc.Image()); err != nil {
		return "", err
	}
	return relToRoot(g.projectRoot, path), nil
}

// processFileName strips decorative punctuation from a process name so it
// can be used as a file name.
func processFileName(processName string) string {
	name := strings.TrimSpace(processName)
	replacer := strings.NewReplacer(" ", "_", "（", "", "）", "", "・", "_", "/", "_")
	return replacer.Replace(name) + ".png"
}
