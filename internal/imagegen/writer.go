package imagegen

import (
	"errors"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/materiallab/materialmap/internal/imageref"
)

var errEmptyName = errors.New("material name produced an empty slug")

// flattenWhite composites the image onto an opaque white background. Every
// generated file goes through this, so nothing we persist can carry an
// alpha channel.
func flattenWhite(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Over)
	return out
}

// saveJPEG writes the image as an opaque JPEG. The write goes to a
// temporary file in the target directory and is renamed into place, so a
// concurrent reader never observes a half-written image.
func saveJPEG(path string, img image.Image, quality int) error {
	return saveAtomic(path, func(f *os.File) error {
		return jpeg.Encode(f, flattenWhite(img), &jpeg.Options{Quality: quality})
	})
}

// savePNG writes the image as an opaque PNG, flattened the same way.
func savePNG(path string, img image.Image) error {
	return saveAtomic(path, func(f *os.File) error {
		return png.Encode(f, flattenWhite(img))
	})
}

func saveAtomic(path string, encode func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return imageref.NewError(imageref.KindDecode, path, err)
	}
	tmp, err := os.CreateTemp(dir, ".gen-*")
	if err != nil {
		return imageref.NewError(imageref.KindDecode, path, err)
	}
	defer os.Remove(tmp.Name())
	if err := encode(tmp); err != nil {
		tmp.Close()
		return imageref.NewError(imageref.KindDecode, path, err)
	}
	if err := tmp.Close(); err != nil {
		return imageref.NewError(imageref.KindDecode, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return imageref.NewError(imageref.KindDecode, path, err)
	}
	return nil
}

// relToRoot converts an absolute output path to a forward-slash path
// relative to the project root, the form stored in the database.
func relToRoot(projectRoot, path string) string {
	rel, err := filepath.Rel(projectRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// toRGBA converts any decoded image to RGBA, reusing the buffer when it
// already is one.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}
