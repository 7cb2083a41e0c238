package imageref

import "strings"

// forbiddenSlugChars are replaced with underscores so a display name can be
// used as a directory name on any filesystem.
const forbiddenSlugChars = `/\:*?"<>|`

// SafeSlug derives a filesystem-safe identifier from a material display
// name. Pure and total: never fails, and returns the empty string only for
// empty or whitespace-only input. Callers must treat an empty slug as "no
// local fallback possible".
func SafeSlug(displayName string) string {
	slug := strings.TrimSpace(displayName)
	if slug == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(slug))
	for _, r := range slug {
		if strings.ContainsRune(forbiddenSlugChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
