package imagegen

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/fogleman/gg"

	"github.com/materiallab/materialmap/internal/imageref"
)

const (
	textureWidth  = 800
	textureHeight = 600
)

// Per-material base colors, keyed by the leading name token. Unknown
// names fall back to the class default.
var woodColors = map[string]color.NRGBA{
	"カリン": {R: 180, G: 140, B: 100, A: 255},
	"栗":   {R: 139, G: 90, B: 43, A: 255},
	"樫":   {R: 101, G: 67, B: 33, A: 255},
}

var metalColors = map[string]color.NRGBA{
	"アルミ":   {R: 192, G: 192, B: 192, A: 255},
	"ステンレス": {R: 220, G: 220, B: 220, A: 255},
	"真鍮":    {R: 181, G: 166, B: 66, A: 255},
}

var plasticColors = map[string]color.NRGBA{
	"PP":  {R: 255, G: 255, B: 200, A: 255},
	"PE":  {R: 240, G: 240, B: 240, A: 255},
	"PVC": {R: 255, G: 255, B: 255, A: 255},
}

func pickColor(table map[string]color.NRGBA, name string, def color.NRGBA) color.NRGBA {
	if c, ok := table[firstToken(name)]; ok {
		return c
	}
	for key, c := range table {
		if key != "" && containsAny(name, key) {
			return c
		}
	}
	return def
}

// Texture synthesizes a representative texture image for the material,
// keyed by its coarse category. The result is always fully opaque.
func (g *Generator) Texture(name, category string) *image.RGBA {
	switch classify(name, category) {
	case classWood:
		base := pickColor(woodColors, name, color.NRGBA{R: 139, G: 90, B: 43, A: 255})
		return woodTexture(base)
	case classMetal:
		base := pickColor(metalColors, name, color.NRGBA{R: 192, G: 192, B: 192, A: 255})
		return metalTexture(base)
	case classPlastic:
		base := pickColor(plasticColors, name, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		return plasticTexture(base)
	}
	return flatTexture(color.NRGBA{R: 200, G: 200, B: 200, A: 255})
}

// GeneratePrimary synthesizes a texture and persists it at the
// conventional primary path for the material's slug. It always produces a
// fresh image; checking for an existing healthy one is the caller's job.
// Returns the project-root-relative path of the written file.
func (g *Generator) GeneratePrimary(name, category string) (string, error) {
	slug := imageref.SafeSlug(name)
	if slug == "" {
		return "", imageref.NewError(imageref.KindNotFound, "", errEmptyName)
	}
	img := g.Texture(name, category)
	path := imageref.ConventionPath(g.projectRoot, slug, imageref.KindPrimary, ".jpg")
	if err := saveJPEG(path, img, 85); err != nil {
		return "", err
	}
	return relToRoot(g.projectRoot, path), nil
}

// woodTexture draws horizontal grain lines with jittered spacing and
// color over the base tone, then roughens with noise and a light blur.
func woodTexture(base color.NRGBA) *image.RGBA {
	dc := gg.NewContext(textureWidth, textureHeight)
	dc.SetColor(base)
	dc.Clear()

	dc.SetLineWidth(2)
	for y := 0; y < textureHeight; y += 20 {
		yy := float64(y + rand.Intn(11) - 5)
		dc.SetColor(jitterColor(base, 20))
		dc.DrawLine(0, yy, textureWidth, yy)
		dc.Stroke()
	}

	img := toRGBA(dc.Image())
	addNoise(img, 10)
	return boxBlur(img, 1)
}

// metalTexture lays a vertical sine-banded highlight over the base tone
// to mimic sheet-metal reflection.
func metalTexture(base color.NRGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, textureWidth, textureHeight))
	for y := 0; y < textureHeight; y++ {
		// Highlight strength varies down the sheet.
		a := (128.0 + 127.0*math.Sin(float64(y)/50.0)) / 255.0
		r := uint8(float64(base.R) + (255-float64(base.R))*a)
		gch := uint8(float64(base.G) + (255-float64(base.G))*a)
		b := uint8(float64(base.B) + (255-float64(base.B))*a)
		for x := 0; x < textureWidth; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = r
			img.Pix[i+1] = gch
			img.Pix[i+2] = b
			img.Pix[i+3] = 255
		}
	}
	addNoise(img, 15)
	return img
}

// plasticTexture is a smooth, slightly glossy surface: faint noise,
// stronger blur, brightness lifted a touch.
func plasticTexture(base color.NRGBA) *image.RGBA {
	img := flatTexture(base)
	addNoise(img, 5)
	img = boxBlur(img, 2)
	brighten(img, 1.1)
	return img
}

func flatTexture(base color.NRGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, textureWidth, textureHeight))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = base.R
		img.Pix[i+1] = base.G
		img.Pix[i+2] = base.B
		img.Pix[i+3] = 255
	}
	return img
}

func jitterColor(c color.NRGBA, amount int) color.NRGBA {
	return color.NRGBA{
		R: clampByte(int(c.R) + rand.Intn(2*amount+1) - amount),
		G: clampByte(int(c.G) + rand.Intn(2*amount+1) - amount),
		B: clampByte(int(c.B) + rand.Intn(2*amount+1) - amount),
		A: 255,
	}
}

// addNoise perturbs each RGB channel by up to ±amount, leaving alpha
// untouched.
func addNoise(img *image.RGBA, amount int) {
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			delta := rand.Intn(2*amount+1) - amount
			img.Pix[i+c] = clampByte(int(img.Pix[i+c]) + delta)
		}
	}
}

// brighten scales RGB channels by factor, clamping at white.
func brighten(img *image.RGBA, factor float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = clampByte(int(float64(img.Pix[i+c]) * factor))
		}
	}
}

// boxBlur applies a simple box blur of the given radius. Enough to soften
// procedural noise; not meant to be a quality Gaussian.
func boxBlur(img *image.RGBA, radius int) *image.RGBA {
	if radius <= 0 {
		return img
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(bounds)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum [3]int
			var count int
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					i := img.PixOffset(nx, ny)
					sum[0] += int(img.Pix[i+0])
					sum[1] += int(img.Pix[i+1])
					sum[2] += int(img.Pix[i+2])
					count++
				}
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = uint8(sum[0] / count)
			out.Pix[i+1] = uint8(sum[1] / count)
			out.Pix[i+2] = uint8(sum[2] / count)
			out.Pix[i+3] = 255
		}
	}
	return out
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
