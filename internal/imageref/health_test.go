package imageref

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
}

// patternImage fills a 64x64 canvas with per-pixel variation so the PNG
// stays well above the corrupt-size threshold regardless of compression.
func patternImage(pixel func(x, y int) color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, pixel(x, y))
		}
	}
	return img
}

func brightImage() *image.NRGBA {
	return patternImage(func(x, y int) color.NRGBA {
		return color.NRGBA{
			R: uint8(180 + (x*7+y*13)%40),
			G: uint8(140 + (x*11+y*3)%40),
			B: uint8(100 + (x*5+y*17)%40),
			A: 255,
		}
	})
}

func TestCheckHealthMissing(t *testing.T) {
	root := t.TempDir()
	report := CheckHealth("static/images/materials/oak/primary.jpg", root)
	if report.Status != StatusMissing {
		t.Errorf("got %s, want %s", report.Status, StatusMissing)
	}
}

func TestCheckHealthZeroByte(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "empty.png")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	report := CheckHealth(path, root)
	if report.Status != StatusZeroByte {
		t.Errorf("got %s, want %s", report.Status, StatusZeroByte)
	}
}

func TestCheckHealthTooSmall(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "tiny.png")
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}
	report := CheckHealth(path, root)
	if report.Status != StatusCorrupt {
		t.Errorf("got %s, want %s", report.Status, StatusCorrupt)
	}
	if report.ByteSize != 4 {
		t.Errorf("byte size = %d, want 4", report.ByteSize)
	}
}

func TestCheckHealthUndecodable(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "garbage.jpg")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 256), 0o644); err != nil {
		t.Fatal(err)
	}
	report := CheckHealth(path, root)
	if report.Status != StatusDecodeError {
		t.Errorf("got %s, want %s", report.Status, StatusDecodeError)
	}
}

func TestCheckHealthOpaqueBlackIsBlackout(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "black.png")
	// Near-black with slight variation: mean brightness stays well under
	// the threshold.
	writePNG(t, path, patternImage(func(x, y int) color.NRGBA {
		return color.NRGBA{
			R: uint8((x*7 + y*13) % 8),
			G: uint8((x*3 + y*5) % 8),
			B: uint8((x*11 + y) % 8),
			A: 255,
		}
	}))

	report := CheckHealth(path, root)
	if report.Status != StatusBlackout {
		t.Errorf("got %s, want %s (brightness %.2f)", report.Status, StatusBlackout, report.AvgBrightness)
	}
}

// Fully transparent pixels read back as premultiplied black; naive
// averaging would flag them. Composited onto white they are bright, and
// that is what a browser shows.
func TestCheckHealthTransparentIsOK(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "transparent.png")
	writePNG(t, path, patternImage(func(x, y int) color.NRGBA {
		return color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: uint8((x ^ y) * 4), A: 0}
	}))

	report := CheckHealth(path, root)
	if report.Status != StatusOK {
		t.Errorf("got %s, want %s (reason %q)", report.Status, StatusOK, report.Reason)
	}
	if report.AvgBrightness < 250 {
		t.Errorf("expected near-white brightness, got %.2f", report.AvgBrightness)
	}
}

func TestCheckHealthHealthyImage(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "ok.png")
	writePNG(t, path, brightImage())

	report := CheckHealth(path, root)
	if report.Status != StatusOK {
		t.Fatalf("got %s, want %s (reason %q)", report.Status, StatusOK, report.Reason)
	}
	if report.Width != 64 || report.Height != 64 {
		t.Errorf("dimensions = %dx%d, want 64x64", report.Width, report.Height)
	}
	// Opaque images round-trip through the png encoder as truecolor,
	// which decodes to RGBA.
	if report.ColorModel != "RGBA" {
		t.Errorf("color model = %q, want RGBA", report.ColorModel)
	}
}

func TestCheckHealthRelativePath(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "static", "ok.png"), brightImage())

	report := CheckHealth(filepath.Join("static", "ok.png"), root)
	if report.Status != StatusOK {
		t.Errorf("got %s, want %s", report.Status, StatusOK)
	}
}
