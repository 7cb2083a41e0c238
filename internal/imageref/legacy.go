package imageref

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// LegacyLookup searches alternate historical directory names for a
// material's image. It exists as an interface so environments without
// legacy data can disable the behavior entirely.
type LegacyLookup interface {
	// Locate returns the path of an existing image file found under an
	// alternate directory name, or "" when nothing matches. The second
	// value lists every directory name tried, for diagnostics.
	Locate(fields MaterialImageFields, kind Kind) (string, []string)
}

// NoopLookup disables legacy fallback.
type NoopLookup struct{}

func (NoopLookup) Locate(MaterialImageFields, Kind) (string, []string) {
	return "", nil
}

// parenPattern matches ASCII and full-width parenthetical annotations,
// e.g. "アルミニウム（純アルミ）" or "Oak (white)".
var parenPattern = regexp.MustCompile(`\s*[（(][^）)]*[）)]`)

// specCodePattern matches a trailing token resembling a standards or model
// code, e.g. "A5052" in "アルミニウム A5052".
var specCodePattern = regexp.MustCompile(`\s+[A-Za-z]+[0-9][A-Za-z0-9-]*$`)

// nameVariants returns the alternate names tried by the legacy lookup, in
// precedence order: raw name, parentheticals stripped, trailing spec code
// stripped, first whitespace token, then each stored alias. Duplicates are
// removed preserving first occurrence.
func nameVariants(fields MaterialImageFields) []string {
	name := strings.TrimSpace(fields.DisplayName())
	var variants []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		for _, seen := range variants {
			if seen == v {
				return
			}
		}
		variants = append(variants, v)
	}

	add(name)
	add(parenPattern.ReplaceAllString(name, ""))
	add(specCodePattern.ReplaceAllString(name, ""))
	if tokens := strings.Fields(name); len(tokens) > 1 {
		add(tokens[0])
	}
	for _, alias := range fields.NameAliases {
		add(alias)
	}
	return variants
}

// DirScanLookup is the production legacy strategy: it scans the material
// image root for directories that actually exist and matches slugified
// name variants against them, never constructing speculative paths.
type DirScanLookup struct {
	ProjectRoot string
}

func (l DirScanLookup) Locate(fields MaterialImageFields, kind Kind) (string, []string) {
	root := MaterialsRoot(l.ProjectRoot)
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", nil
	}
	existing := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			existing[e.Name()] = true
		}
	}

	primarySlug := fields.Slug()
	var tried []string
	for _, variant := range nameVariants(fields) {
		slug := SafeSlug(variant)
		if slug == "" || slug == primarySlug {
			// The primary slug was already covered by the local branch.
			continue
		}
		if !existing[slug] {
			continue
		}
		tried = append(tried, slug)
		if path := findInDir(filepath.Join(root, slug), kind); path != "" {
			return path, tried
		}
	}
	return "", tried
}

// findInDir looks for the kind's conventional file (including the nested
// old primary shape) inside one material directory.
func findInDir(dir string, kind Kind) string {
	for _, ext := range ExtPriority {
		path := filepath.Join(dir, conventionRelName(kind, ext))
		if isRegularFile(path) {
			return path
		}
	}
	if kind == KindPrimary {
		for _, ext := range ExtPriority {
			path := filepath.Join(dir, legacyNestedRelName(ext))
			if isRegularFile(path) {
				return path
			}
		}
	}
	return ""
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
