package imageref

import "path/filepath"

// ExtPriority is the extension search order for convention paths.
var ExtPriority = []string{".jpg", ".jpeg", ".png", ".webp"}

// MaterialsRoot returns the root of the per-material image tree.
func MaterialsRoot(projectRoot string) string {
	return filepath.Join(projectRoot, "static", "images", "materials")
}

// conventionRelName returns the kind's file name relative to the material
// directory, e.g. "primary.jpg" or "uses/space.jpg".
func conventionRelName(kind Kind, ext string) string {
	if kind == KindPrimary {
		return "primary" + ext
	}
	return filepath.Join("uses", string(kind)+ext)
}

// ConventionPath builds the canonical local path for a material image.
func ConventionPath(projectRoot, slug string, kind Kind, ext string) string {
	return filepath.Join(MaterialsRoot(projectRoot), slug, conventionRelName(kind, ext))
}

// legacyNestedRelName is the old on-disk shape for primary images, one
// directory deeper than the flat convention.
func legacyNestedRelName(ext string) string {
	return filepath.Join("primary", "primary"+ext)
}

// URLPath builds the kind's path segment under a remote base URL. Remote
// hosting always uses the .jpg name.
func URLPath(slug string, kind Kind) string {
	if kind == KindPrimary {
		return "materials/" + slug + "/primary.jpg"
	}
	return "materials/" + slug + "/uses/" + string(kind) + ".jpg"
}
