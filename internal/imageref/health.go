package imageref

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// HealthStatus classifies a candidate local image file.
type HealthStatus string

const (
	StatusOK          HealthStatus = "ok"
	StatusMissing     HealthStatus = "missing"
	StatusZeroByte    HealthStatus = "zero_byte"
	StatusCorrupt     HealthStatus = "corrupt"
	StatusDecodeError HealthStatus = "decode_error"
	StatusBlackout    HealthStatus = "blackout"
)

// Files smaller than this cannot hold a real encoded image.
const minImageBytes = 100

// An image whose mean per-channel brightness falls below this (0-255
// scale, after compositing transparency onto white) is considered black.
// Protects against transparent renders composited onto a black canvas,
// which display as an invisible square.
const blackoutBrightness = 10.0

// HealthReport is the structured result of a health check.
type HealthReport struct {
	Status        HealthStatus `json:"status"`
	Reason        string       `json:"reason"`
	Path          string       `json:"path"`
	ByteSize      int64        `json:"byte_size"`
	Width         int          `json:"width,omitempty"`
	Height        int          `json:"height,omitempty"`
	ColorModel    string       `json:"color_model,omitempty"`
	AvgBrightness float64      `json:"avg_brightness,omitempty"`
}

// CheckHealth classifies the file at path into exactly one status. A
// relative path is resolved against projectRoot. The file is fully
// decoded (headers alone miss real corruption) and never mutated.
func CheckHealth(path, projectRoot string) HealthReport {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(projectRoot, resolved)
	}
	report := HealthReport{Path: resolved}

	info, err := os.Stat(resolved)
	if err != nil {
		report.Status = StatusMissing
		report.Reason = fmt.Sprintf("file does not exist: %s", resolved)
		return report
	}
	report.ByteSize = info.Size()

	if info.Size() == 0 {
		report.Status = StatusZeroByte
		report.Reason = "file is zero bytes"
		return report
	}
	if info.Size() < minImageBytes {
		report.Status = StatusCorrupt
		report.Reason = fmt.Sprintf("file is abnormally small: %d bytes", info.Size())
		return report
	}

	f, err := os.Open(resolved)
	if err != nil {
		report.Status = StatusDecodeError
		report.Reason = fmt.Sprintf("cannot open file: %v", err)
		return report
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		report.Status = StatusDecodeError
		report.Reason = fmt.Sprintf("cannot decode image: %v", err)
		return report
	}

	bounds := img.Bounds()
	report.Width = bounds.Dx()
	report.Height = bounds.Dy()
	report.ColorModel = colorModelName(img, format)
	report.AvgBrightness = averageBrightness(img)

	if report.AvgBrightness < blackoutBrightness {
		report.Status = StatusBlackout
		report.Reason = fmt.Sprintf("image is almost entirely black (avg brightness %.2f)", report.AvgBrightness)
		return report
	}

	report.Status = StatusOK
	report.Reason = "image is healthy"
	return report
}

// averageBrightness computes the mean of the R, G, and B channels over all
// pixels, compositing any transparency onto a white background first.
func averageBrightness(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}
	var sum uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			// RGBA returns alpha-premultiplied 16-bit channels; placing
			// the pixel over white adds (0xffff - a) to each channel.
			over := 0xffff - pa
			r := (pr + over) >> 8
			g := (pg + over) >> 8
			b := (pb + over) >> 8
			sum += uint64(r + g + b)
		}
	}
	pixels := uint64(bounds.Dx()) * uint64(bounds.Dy())
	return float64(sum) / float64(pixels*3)
}

func colorModelName(img image.Image, format string) string {
	switch img.(type) {
	case *image.NRGBA, *image.NRGBA64:
		return "NRGBA"
	case *image.RGBA, *image.RGBA64:
		return "RGBA"
	case *image.YCbCr:
		return "YCbCr"
	case *image.Gray, *image.Gray16:
		return "Gray"
	case *image.Paletted:
		return "P"
	default:
		return format
	}
}
