// Package display turns a resolved image reference into something a
// handler can serve without caring where the bytes came from. Every
// render path converges on one of three shapes: a pass-through URL, an
// opaque RGB image in memory, or the neutral placeholder.
package display

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/webp"

	"github.com/materiallab/materialmap/internal/imageref"
)

// Source identifies how a Display should be delivered.
type Source string

const (
	SourceURL         Source = "url"
	SourceInline      Source = "inline"
	SourcePlaceholder Source = "placeholder"
)

const (
	placeholderWidth  = 400
	placeholderHeight = 300
)

// Display is the render result. URL is set only for SourceURL; Image is
// set for SourceInline and SourcePlaceholder and is always opaque RGB.
type Display struct {
	Source Source
	URL    string
	Image  *image.RGBA
}

// Adapter renders refs for serving. Safe for concurrent use.
type Adapter struct {
	projectRoot string

	fontOnce sync.Once
	face     font.Face

	phOnce      sync.Once
	placeholder *image.RGBA
}

// NewAdapter builds an adapter rooted at the project directory. fontPath
// may be empty; the bundled Go Regular face is used as fallback.
func NewAdapter(projectRoot, fontPath string) *Adapter {
	a := &Adapter{projectRoot: projectRoot}
	a.fontOnce.Do(func() { a.face = loadFace(fontPath) })
	return a
}

// Render maps a winning reference to its display form. A URL passes
// through untouched; it already carries its cache-bust query. A local
// path is decoded and flattened to RGB on white. Anything that fails —
// a path gone missing since resolution, a decode error, an empty ref —
// degrades to the placeholder rather than an error.
func (a *Adapter) Render(ref imageref.Ref) Display {
	if ref.URL != "" {
		return Display{Source: SourceURL, URL: ref.URL}
	}
	if ref.Path != "" {
		img, err := a.loadLocal(ref.Path)
		if err == nil {
			return Display{Source: SourceInline, Image: img}
		}
	}
	return a.Placeholder()
}

// RenderImage wraps an in-memory image, forcing it opaque.
func (a *Adapter) RenderImage(img image.Image) Display {
	if img == nil {
		return a.Placeholder()
	}
	return Display{Source: SourceInline, Image: flattenWhite(img)}
}

// Placeholder returns the fixed neutral card. The image is built once
// and shared; callers must not mutate it.
func (a *Adapter) Placeholder() Display {
	a.phOnce.Do(func() { a.placeholder = a.drawPlaceholder() })
	return Display{Source: SourcePlaceholder, Image: a.placeholder}
}

// WriteJPEG encodes a Display's image to w. URL displays carry no bytes;
// the caller redirects instead.
func WriteJPEG(w io.Writer, d Display) error {
	if d.Source == SourceURL {
		return errors.New("display: url source has no bytes to encode")
	}
	if d.Image == nil {
		return errors.New("display: nil image")
	}
	return jpeg.Encode(w, d.Image, &jpeg.Options{Quality: 90})
}

func (a *Adapter) loadLocal(path string) (*image.RGBA, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.projectRoot, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return flattenWhite(img), nil
}

func (a *Adapter) drawPlaceholder() *image.RGBA {
	dc := gg.NewContext(placeholderWidth, placeholderHeight)
	dc.SetRGB255(230, 230, 230)
	dc.Clear()

	dc.SetRGB255(180, 180, 180)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, placeholderWidth-2, placeholderHeight-2)
	dc.Stroke()

	dc.SetFontFace(a.face)
	dc.SetRGB255(120, 120, 120)
	dc.DrawStringAnchored("no image", placeholderWidth/2, placeholderHeight/2, 0.5, 0.5)

	return flattenWhite(dc.Image())
}

// flattenWhite composites onto an opaque white background so JPEG output
// never shows the black bleed of naive alpha drops.
func flattenWhite(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

func loadFace(path string) font.Face {
	data := goregular.TTF
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			data = b
		}
	}
	f, err := truetype.Parse(data)
	if err != nil {
		f, _ = truetype.Parse(goregular.TTF)
	}
	return truetype.NewFace(f, &truetype.Options{Size: 24})
}
