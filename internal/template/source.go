package template

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/expresskit-labs/expresskit/internal/branding"
	"github.com/expresskit-labs/expresskit/internal/config"
)

// DefaultName is the template shipped with the distribution.
const DefaultName = "express"

// templatesDirName is the directory next to the installed binary that holds
// the bundled template trees.
const templatesDirName = "templates"

// Root returns the directory containing the bundled templates.
// It checks the EXPRESSKIT_TEMPLATES environment variable first, then the
// templates.dir config key, then falls back to <executable-dir>/templates.
func Root() (string, error) {
	if v := os.Getenv(branding.EnvVar("TEMPLATES")); v != "" {
		return v, nil
	}
	if v := config.Get("templates.dir"); v != "" {
		return v, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), templatesDirName), nil
}

// Resolve returns the source directory for a named template. It does not
// check existence; the scaffold engine validates the source itself.
func Resolve(name string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}
