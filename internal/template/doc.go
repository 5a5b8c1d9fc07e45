// Package template locates the bundled template trees shipped alongside the
// binary and reads their optional template.yaml manifests. Resolution checks
// the EXPRESSKIT_TEMPLATES environment variable, then the templates.dir
// config key, then a templates/ directory next to the executable. Manifests
// are validated against an embedded JSON Schema; validation problems are
// surfaced as warnings, never as scaffold failures.
package template
