package scaffold

import "strings"

// excludedNames are files/directories never copied from a template into a
// generated project. template.yaml is scaffolder metadata, not project content.
var excludedNames = map[string]bool{
	"node_modules":      true,
	".git":              true,
	"dist":              true,
	"build":             true,
	"coverage":          true,
	".env":              true,
	".DS_Store":         true,
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"template.yaml":     true,
}

// Excluded reports whether a slash-separated path relative to the template
// root should be skipped during the copy. A match on any path segment excludes
// the entry and everything beneath it. The whole-path check is redundant with
// the segment check but kept explicit for top-level entries.
func Excluded(rel string) bool {
	if rel == "" || rel == "." {
		return false
	}
	if excludedNames[rel] {
		return true
	}
	for _, seg := range strings.Split(rel, "/") {
		if excludedNames[seg] {
			return true
		}
	}
	return false
}
