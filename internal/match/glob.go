package match

import (
	"path"
	"strings"
)

// Glob matches a slash-separated path against a glob pattern supporting
// `*`, `?`, character classes within a segment, and `**` spanning zero or
// more whole segments. Matching is case-sensitive; a malformed pattern
// matches nothing. A plain `*` never crosses a path separator, so `*.md`
// matches README.md but not docs/README.md.
func Glob(pattern, name string) bool {
	pattern = strings.TrimPrefix(pattern, "./")
	name = strings.TrimPrefix(name, "./")
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pat, parts []string) bool {
	if len(pat) == 0 {
		return len(parts) == 0
	}
	if pat[0] == "**" {
		// `**` consumes zero or more leading segments.
		if matchSegments(pat[1:], parts) {
			return true
		}
		if len(parts) > 0 {
			return matchSegments(pat, parts[1:])
		}
		return false
	}
	if len(parts) == 0 {
		return false
	}
	ok, err := path.Match(pat[0], parts[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pat[1:], parts[1:])
}

// AnyGlob reports whether at least one path matches at least one pattern.
func AnyGlob(patterns, paths []string) bool {
	for _, p := range paths {
		for _, pattern := range patterns {
			if Glob(pattern, p) {
				return true
			}
		}
	}
	return false
}
