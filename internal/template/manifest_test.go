package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadManifestValid(t *testing.T) {
	dir := writeManifest(t, `name: express
description: Express + Mongoose + Zod API starter
version: 1.2.0
minCliVersion: 0.3.0
tags:
  - express
  - typescript
`)

	m, warnings, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if m.Name != "express" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Version != "1.2.0" {
		t.Errorf("Version = %q", m.Version)
	}
	if m.MinCliVersion != "0.3.0" {
		t.Errorf("MinCliVersion = %q", m.MinCliVersion)
	}
	if len(m.Tags) != 2 {
		t.Errorf("Tags = %v", m.Tags)
	}
}

func TestLoadManifestMissingIsNoOp(t *testing.T) {
	m, warnings, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m != nil || warnings != nil {
		t.Errorf("missing manifest should yield nils, got %v, %v", m, warnings)
	}
}

func TestLoadManifestSchemaViolationsAreWarnings(t *testing.T) {
	// name missing, version malformed, unknown key present.
	dir := writeManifest(t, `version: not-a-version
color: blue
`)

	m, warnings, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("schema violations must not be errors: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected validation warnings")
	}
	if m == nil {
		t.Fatal("manifest should still parse")
	}

	joined := strings.Join(warnings, "\n")
	if !strings.Contains(joined, ManifestFileName) {
		t.Errorf("warnings should name the manifest file: %v", warnings)
	}
}

func TestLoadManifestUnparseableIsWarning(t *testing.T) {
	dir := writeManifest(t, "name: [unclosed\n")

	m, warnings, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("broken YAML must not be an error: %v", err)
	}
	if m != nil {
		t.Error("unparseable manifest should return nil")
	}
	if len(warnings) == 0 {
		t.Error("expected a parse warning")
	}
}

func TestCheckCliVersion(t *testing.T) {
	tests := []struct {
		name       string
		min        string
		cliVersion string
		wantWarn   bool
	}{
		{"cli newer", "1.0.0", "2.0.0", false},
		{"cli equal", "1.0.0", "1.0.0", false},
		{"cli older", "1.2.0", "1.1.9", true},
		{"v prefix tolerated", "v1.0.0", "v1.5.0", false},
		{"no constraint", "", "0.0.1", false},
		{"dev build skips check", "1.0.0", "dev", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manifest{Name: "express", MinCliVersion: tt.min}
			warn := m.CheckCliVersion(tt.cliVersion)
			if (warn != "") != tt.wantWarn {
				t.Errorf("CheckCliVersion(%q) with min %q = %q, wantWarn %v",
					tt.cliVersion, tt.min, warn, tt.wantWarn)
			}
		})
	}
}

func TestCheckCliVersionNilManifest(t *testing.T) {
	var m *Manifest
	if warn := m.CheckCliVersion("1.0.0"); warn != "" {
		t.Errorf("nil manifest should not warn, got %q", warn)
	}
}
