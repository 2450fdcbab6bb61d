package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validManifest = `
name: triangle
version: 1.0.0
wasm:
  file: bin/main.wasm
exports:
  init: [enter]
  frame: [step]
  exit: exit
`

// writeModule creates a module directory with the given manifest and, optionally, the
// Wasm file it references.
func writeModule(t *testing.T, content string, wasmFile string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if wasmFile != "" {
		path := filepath.Join(dir, wasmFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("\x00asm\x01\x00\x00\x00"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestParseManifest_Valid(t *testing.T) {
	dir := writeModule(t, validManifest, "bin/main.wasm")

	manifest, err := ParseManifest(dir)
	if err != nil {
		t.Fatalf("ParseManifest() failed: %v", err)
	}

	if manifest.Name != "triangle" {
		t.Errorf("expected Name 'triangle', got '%s'", manifest.Name)
	}

	if manifest.Version != "1.0.0" {
		t.Errorf("expected Version '1.0.0', got '%s'", manifest.Version)
	}

	if len(manifest.Exports.Init) != 1 || manifest.Exports.Init[0] != "enter" {
		t.Errorf("expected init exports [enter], got %v", manifest.Exports.Init)
	}

	if manifest.Exports.Resize != "" {
		t.Errorf("expected no resize export, got '%s'", manifest.Exports.Resize)
	}

	if manifest.WasmPath() != filepath.Join(dir, "bin", "main.wasm") {
		t.Errorf("unexpected WasmPath '%s'", manifest.WasmPath())
	}

	if manifest.Buildable() {
		t.Error("manifest without build command should not be buildable")
	}
}

func TestLoad_FileOrDirectory(t *testing.T) {
	dir := writeModule(t, validManifest, "bin/main.wasm")

	for _, path := range []string{dir, filepath.Join(dir, FileName)} {
		manifest, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", path, err)
		}
		if manifest.Dir() != dir {
			t.Errorf("Load(%s): expected Dir '%s', got '%s'", path, dir, manifest.Dir())
		}
		if manifest.Path() != filepath.Join(dir, FileName) {
			t.Errorf("Load(%s): unexpected Path '%s'", path, manifest.Path())
		}
	}
}

func TestParseManifest_NotFound(t *testing.T) {
	_, err := ParseManifest(filepath.Join(t.TempDir(), "nonexistent"))
	if err == nil {
		t.Fatal("ParseManifest() should fail for nonexistent directory")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestParseManifest_InvalidYAML(t *testing.T) {
	dir := writeModule(t, "name: [unterminated\n", "")

	_, err := ParseManifest(dir)
	if err == nil {
		t.Fatal("ParseManifest() should fail for invalid YAML")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected ParseError, got %T", err)
	}
}

func TestParseManifest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"missing name", "version: 1.0.0\nwasm:\n  file: m.wasm\n", "name"},
		{"missing version", "name: m\nwasm:\n  file: m.wasm\n", "version"},
		{"missing wasm file", "name: m\nversion: 1.0.0\n", "wasm.file"},
		{
			"extension without dot",
			"name: m\nversion: 1.0.0\nwasm:\n  file: m.wasm\nbuild:\n  command: [zig, build]\n  extension: zig\n",
			"build.extension",
		},
		{
			"build paths without command",
			"name: m\nversion: 1.0.0\nwasm:\n  file: m.wasm\nbuild:\n  source_dir: src\n",
			"build.command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest(writeModule(t, tt.content, "m.wasm"))
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("expected field '%s', got '%s'", tt.field, validationErr.Field)
			}
		})
	}
}

func TestParseManifest_WasmNotFound(t *testing.T) {
	_, err := ParseManifest(writeModule(t, validManifest, ""))

	var notFound *WasmNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected WasmNotFoundError, got %v", err)
	}
	if notFound.WasmFile != "bin/main.wasm" {
		t.Errorf("expected WasmFile 'bin/main.wasm', got '%s'", notFound.WasmFile)
	}
}

func TestParseManifest_BuildableWithoutWasm(t *testing.T) {
	content := validManifest + `
build:
  command: [zig, build-exe, src/main.zig]
  source_dir: src
  extension: .zig
`
	dir := writeModule(t, content, "")

	manifest, err := ParseManifest(dir)
	if err != nil {
		t.Fatalf("buildable manifest should not require the Wasm file: %v", err)
	}

	if !manifest.Buildable() {
		t.Error("expected manifest to be buildable")
	}

	if manifest.SourceDir() != filepath.Join(dir, "src") {
		t.Errorf("unexpected SourceDir '%s'", manifest.SourceDir())
	}

	if manifest.BuildDir() != dir {
		t.Errorf("unexpected BuildDir '%s'", manifest.BuildDir())
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Path: "m/manifest.yaml", Field: "name", Message: "name is required"}
	want := "manifest validation failed at 'm/manifest.yaml': name is required (field: name)"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	err.Field = ""
	want = "manifest validation failed at 'm/manifest.yaml': name is required"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
