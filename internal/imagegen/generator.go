package imagegen

import (
	"strings"
)

// textureClass is the coarse material category used to pick a texture
// style.
type textureClass int

const (
	classGeneric textureClass = iota
	classWood
	classMetal
	classPlastic
)

// Generator procedurally synthesizes representative images for materials
// that have no real photograph. Every output is a fully-opaque RGB image:
// alpha is composited onto a white background before saving, which is the
// primary defense against transparent renders displaying as black squares.
type Generator struct {
	projectRoot string
	fonts       *fontCache
}

// NewGenerator builds a Generator rooted at projectRoot. fontPath may be
// empty to use the bundled typeface.
func NewGenerator(projectRoot, fontPath string) (*Generator, error) {
	fonts, err := newFontCache(fontPath)
	if err != nil {
		return nil, err
	}
	return &Generator{projectRoot: projectRoot, fonts: fonts}, nil
}

// classify picks the texture style from the material's category, falling
// back to well-known name fragments for rows with a sparse category.
func classify(name, category string) textureClass {
	switch {
	case containsAny(category, "木材", "木", "wood"):
		return classWood
	case containsAny(category, "金属", "metal"),
		containsAny(name, "アルミ", "ステンレス", "真鍮"):
		return classMetal
	case containsAny(category, "プラスチック", "樹脂", "plastic"),
		// Resin codes are uppercase by convention; a case-insensitive
		// match would catch fragments of unrelated names.
		strings.Contains(name, "PP"),
		strings.Contains(name, "PE"),
		strings.Contains(name, "PVC"):
		return classPlastic
	}
	return classGeneric
}

func containsAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if sub == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// firstToken returns the leading whitespace-delimited token of a name,
// used to key the per-material color tables.
func firstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}
