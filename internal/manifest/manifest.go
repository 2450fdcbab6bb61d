// Package manifest reads manifest.yaml, the file that sits next to a guest module and
// names its Wasm file, its exports and how to rebuild it.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the manifest file looked up in a module directory.
const FileName = "manifest.yaml"

// Manifest represents the manifest.yaml structure.
type Manifest struct {
	Name        string     `yaml:"name"`
	Version     string     `yaml:"version"`
	Description string     `yaml:"description"`
	Wasm        WasmConfig `yaml:"wasm"`
	Exports     Exports    `yaml:"exports"`
	Build       Build      `yaml:"build"`

	// Internal fields
	dir  string // Directory containing manifest
	path string
}

// WasmConfig holds Wasm module configuration.
type WasmConfig struct {
	File string `yaml:"file"`
}

// Exports overrides the export names the host calls. Empty fields keep the host
// configuration.
type Exports struct {
	Init   []string `yaml:"init"`
	Frame  []string `yaml:"frame"`
	Exit   string   `yaml:"exit"`
	Resize string   `yaml:"resize"`
}

// Build describes how to rebuild the module. Paths are relative to the manifest.
type Build struct {
	Command   []string `yaml:"command"`
	Dir       string   `yaml:"dir"`
	SourceDir string   `yaml:"source_dir"`
	Extension string   `yaml:"extension"`
}

// Load parses the manifest at path, which is either the manifest file or the directory
// containing manifest.yaml.
func Load(path string) (*Manifest, error) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return parseFile(filepath.Dir(path), path)
	}
	return ParseManifest(path)
}

// ParseManifest reads and parses manifest.yaml from a directory.
func ParseManifest(dir string) (*Manifest, error) {
	return parseFile(dir, filepath.Join(dir, FileName))
}

func parseFile(dir, manifestPath string) (*Manifest, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, &NotFoundError{
			Path: manifestPath,
			Err:  err,
		}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{
			Path: manifestPath,
			Err:  err,
		}
	}

	m.dir = dir
	m.path = manifestPath

	// Validate manifest
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks manifest fields.
func (m *Manifest) Validate() error {
	// Check required fields
	if m.Name == "" {
		return &ValidationError{
			Path:    m.Path(),
			Field:   "name",
			Message: "name is required",
		}
	}

	if m.Version == "" {
		return &ValidationError{
			Path:    m.Path(),
			Field:   "version",
			Message: "version is required",
		}
	}

	if m.Wasm.File == "" {
		return &ValidationError{
			Path:    m.Path(),
			Field:   "wasm.file",
			Message: "wasm.file is required",
		}
	}

	if ext := m.Build.Extension; ext != "" && !strings.HasPrefix(ext, ".") {
		return &ValidationError{
			Path:    m.Path(),
			Field:   "build.extension",
			Message: "build.extension must start with a dot",
		}
	}

	if (m.Build.Dir != "" || m.Build.SourceDir != "") && len(m.Build.Command) == 0 {
		return &ValidationError{
			Path:    m.Path(),
			Field:   "build.command",
			Message: "build.command is required when build paths are set",
		}
	}

	// A buildable module may not have been built yet.
	if !m.Buildable() {
		if _, err := os.Stat(m.WasmPath()); os.IsNotExist(err) {
			return &WasmNotFoundError{
				ManifestPath: m.Path(),
				WasmFile:     m.Wasm.File,
			}
		}
	}

	return nil
}

// Buildable reports whether the manifest carries a build command.
func (m *Manifest) Buildable() bool {
	return len(m.Build.Command) > 0
}

// Path returns the manifest file path.
func (m *Manifest) Path() string {
	if m.path != "" {
		return m.path
	}
	return filepath.Join(m.dir, FileName)
}

// WasmPath returns the path to the Wasm file.
func (m *Manifest) WasmPath() string {
	return filepath.Join(m.dir, m.Wasm.File)
}

// BuildDir returns the directory the build command runs in.
func (m *Manifest) BuildDir() string {
	return filepath.Join(m.dir, m.Build.Dir)
}

// SourceDir returns the directory watched for source changes.
func (m *Manifest) SourceDir() string {
	return filepath.Join(m.dir, m.Build.SourceDir)
}

// Dir returns the directory containing the manifest.
func (m *Manifest) Dir() string {
	return m.dir
}
