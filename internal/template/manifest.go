package template

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ManifestFileName is the optional metadata file at a template root.
// It describes the template and is never copied into generated projects.
const ManifestFileName = "template.yaml"

//go:embed schema/template.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Manifest describes a bundled template.
type Manifest struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Version       string   `yaml:"version"`
	MinCliVersion string   `yaml:"minCliVersion"`
	Tags          []string `yaml:"tags"`
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("template.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("template.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// LoadManifest reads the manifest of the template at templateDir, if any.
// A missing template.yaml returns (nil, nil, nil). Schema violations and an
// unparseable file are reported as warnings, never as errors — a broken
// manifest must not block scaffolding.
func LoadManifest(templateDir string) (*Manifest, []string, error) {
	path := filepath.Join(templateDir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	warnings := validate(data)

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		warnings = append(warnings, fmt.Sprintf("could not parse %s: %v", ManifestFileName, err))
		return nil, warnings, nil
	}
	return &m, warnings, nil
}

// validate checks raw manifest YAML against the embedded schema and returns
// one warning per violation.
func validate(data []byte) []string {
	schema, err := getSchema()
	if err != nil {
		return []string{fmt.Sprintf("loading manifest schema: %v", err)}
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return []string{fmt.Sprintf("parsing %s: %v", ManifestFileName, err)}
	}

	// Round-trip through JSON so the validator sees JSON-compatible types.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return []string{fmt.Sprintf("converting manifest to JSON: %v", err)}
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return []string{fmt.Sprintf("preparing manifest for validation: %v", err)}
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("validating manifest: %v", err)}
	}

	var warnings []string
	collectIssues(validationErr, &warnings)
	if len(warnings) == 0 {
		warnings = []string{validationErr.Error()}
	}
	return warnings
}

// collectIssues walks the validation error tree and records leaf errors with
// their instance path.
func collectIssues(ve *jsonschema.ValidationError, warnings *[]string) {
	if len(ve.Causes) == 0 {
		if ve.ErrorKind == nil {
			return
		}
		msg := ve.ErrorKind.LocalizedString(printer)
		if len(ve.InstanceLocation) > 0 {
			msg = "/" + strings.Join(ve.InstanceLocation, "/") + ": " + msg
		}
		*warnings = append(*warnings, ManifestFileName+": "+msg)
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, warnings)
	}
}

// CheckCliVersion compares the running CLI version against the manifest's
// minCliVersion. It returns a warning when the CLI is older, and nothing when
// the constraint is absent or either version is unparseable (dev builds carry
// non-semver versions).
func (m *Manifest) CheckCliVersion(cliVersion string) string {
	if m == nil || m.MinCliVersion == "" {
		return ""
	}

	cur, err := semver.NewVersion(strings.TrimPrefix(cliVersion, "v"))
	if err != nil {
		return ""
	}
	required, err := semver.NewVersion(strings.TrimPrefix(m.MinCliVersion, "v"))
	if err != nil {
		return fmt.Sprintf("%s: invalid minCliVersion %q", ManifestFileName, m.MinCliVersion)
	}

	if cur.LessThan(required) {
		return fmt.Sprintf("template %s wants CLI >= %s, running %s; consider upgrading",
			m.Name, m.MinCliVersion, cliVersion)
	}
	return ""
}
