package imagegen

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// fontCache parses the TTF once and hands out faces per size.
type fontCache struct {
	mu     sync.Mutex
	parsed *truetype.Font
	faces  map[float64]font.Face
}

// newFontCache loads the typeface used for generated labels. An empty
// path selects the bundled Go regular font, so generation works without
// any font installed on the host.
func newFontCache(path string) (*fontCache, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		data = b
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return &fontCache{parsed: parsed, faces: make(map[float64]font.Face)}, nil
}

func (c *fontCache) face(size float64) font.Face {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(c.parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	c.faces[size] = f
	return f
}
