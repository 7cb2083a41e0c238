package imageref

import "runtime/debug"

// UnversionedTag is appended as the cache-bust value when no version token
// is configured and no build identifier is available.
const UnversionedTag = "unversioned"

// ResolveVersion picks the cache-bust token: the configured value wins,
// then the VCS revision embedded at build time, then UnversionedTag.
func ResolveVersion(configured string) string {
	if configured != "" {
		return configured
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				rev := s.Value
				if len(rev) > 7 {
					rev = rev[:7]
				}
				return rev
			}
		}
	}
	return UnversionedTag
}
