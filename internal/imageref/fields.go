package imageref

import (
	"strings"

	"github.com/materiallab/materialmap/internal/domain"
)

// Kind identifies the image slot being requested.
type Kind string

const (
	KindPrimary Kind = "primary"
	KindSpace   Kind = "space"
	KindProduct Kind = "product"
)

// ParseKind validates a request-supplied kind string.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindPrimary:
		return KindPrimary, true
	case KindSpace:
		return KindSpace, true
	case KindProduct:
		return KindProduct, true
	}
	return "", false
}

// domainLabels maps a kind to the substrings accepted in a use example's
// domain label. Matching is case-insensitive.
var domainLabels = map[Kind][]string{
	KindSpace:   {"space", "空間"},
	KindProduct: {"product", "プロダクト"},
}

// UseExampleRef is the image-relevant projection of one use example row.
type UseExampleRef struct {
	Domain    string
	ImageURL  string
	ImagePath string
}

// MaterialImageFields is the stable shape the resolver reads. It is
// populated once at the data-access boundary so resolution logic never
// probes model attributes. Absent columns stay as zero values, which the
// resolver treats as "not set".
type MaterialImageFields struct {
	Name             string
	NameOfficial     string
	NameAliases      []string
	Category         string
	TextureImagePath string
	TextureImageURL  string
	UseExamples      []UseExampleRef
}

// DisplayName returns the official name, falling back to the legacy name.
func (f MaterialImageFields) DisplayName() string {
	if f.NameOfficial != "" {
		return f.NameOfficial
	}
	return f.Name
}

// Slug returns the safe slug of the display name.
func (f MaterialImageFields) Slug() string {
	return SafeSlug(f.DisplayName())
}

// UseExampleFor returns the first use example whose domain label matches
// the kind, or false when none does.
func (f MaterialImageFields) UseExampleFor(kind Kind) (UseExampleRef, bool) {
	labels, ok := domainLabels[kind]
	if !ok {
		return UseExampleRef{}, false
	}
	for _, ue := range f.UseExamples {
		d := strings.ToLower(ue.Domain)
		for _, label := range labels {
			if strings.Contains(d, label) {
				return ue, true
			}
		}
	}
	return UseExampleRef{}, false
}

// FieldsFromMaterial projects a Material row (with its use examples loaded)
// into the resolver's input shape.
func FieldsFromMaterial(m *domain.Material) MaterialImageFields {
	f := MaterialImageFields{
		Name:             m.Name,
		NameOfficial:     m.NameOfficial,
		NameAliases:      append([]string(nil), m.NameAliases...),
		Category:         m.MainCategory(),
		TextureImagePath: m.TextureImagePath,
		TextureImageURL:  m.TextureImageURL,
	}
	for _, ue := range m.UseExamples {
		f.UseExamples = append(f.UseExamples, UseExampleRef{
			Domain:    ue.Domain,
			ImageURL:  ue.ImageURL,
			ImagePath: ue.ImagePath,
		})
	}
	return f
}
