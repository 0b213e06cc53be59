package depm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeModule(t *testing.T, manifest string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ModuleFileName), []byte(manifest), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %s", err)
	}

	return dir
}

func TestLoadModule(t *testing.T) {
	dir := writeModule(t, "name = \"demo\"\n")

	mod, err := LoadModule(dir)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if mod.Name != "demo" {
		t.Errorf("expected name demo, got %s", mod.Name)
	}

	if mod.Output != "demo" {
		t.Errorf("expected the output to default to the name, got %s", mod.Output)
	}

	if mod.AbsPath != dir {
		t.Errorf("expected abs path %s, got %s", dir, mod.AbsPath)
	}
}

func TestLoadModuleExplicitOutput(t *testing.T) {
	dir := writeModule(t, "name = \"demo\"\noutput = \"demo.exe\"\nlink-objects = [\"runtime.o\"]\n")

	mod, err := LoadModule(dir)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if mod.Output != "demo.exe" {
		t.Errorf("expected output demo.exe, got %s", mod.Output)
	}

	if len(mod.LinkObjects) != 1 || mod.LinkObjects[0] != "runtime.o" {
		t.Errorf("expected one link object, got %v", mod.LinkObjects)
	}
}

func TestLoadModuleMissingName(t *testing.T) {
	dir := writeModule(t, "output = \"demo\"\n")

	if _, err := LoadModule(dir); err == nil || !strings.Contains(err.Error(), "missing a name") {
		t.Errorf("expected a missing name error, got %v", err)
	}
}

func TestLoadModuleMissingManifest(t *testing.T) {
	if _, err := LoadModule(t.TempDir()); err == nil {
		t.Error("expected an error for a directory without a manifest")
	}
}

func TestLoadModuleVersionConstraint(t *testing.T) {
	dir := writeModule(t, "name = \"demo\"\nppl-version = \"0.1.0\"\n")
	if _, err := LoadModule(dir); err != nil {
		t.Errorf("expected the current version to satisfy the constraint: %s", err)
	}

	dir = writeModule(t, "name = \"demo\"\nppl-version = \"^9.0.0\"\n")
	if _, err := LoadModule(dir); err == nil || !strings.Contains(err.Error(), "requires ppl") {
		t.Errorf("expected a version mismatch error, got %v", err)
	}

	dir = writeModule(t, "name = \"demo\"\nppl-version = \"not a version\"\n")
	if _, err := LoadModule(dir); err == nil || !strings.Contains(err.Error(), "invalid ppl-version") {
		t.Errorf("expected an invalid constraint error, got %v", err)
	}
}

func TestSourceFiles(t *testing.T) {
	dir := writeModule(t, "name = \"demo\"\n")

	for _, name := range []string{"b.ppl", "a.ppl", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("failed to write %s: %s", name, err)
		}
	}

	if err := os.Mkdir(filepath.Join(dir, "sub.ppl"), 0o755); err != nil {
		t.Fatalf("failed to create directory: %s", err)
	}

	mod, err := LoadModule(dir)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	files, err := mod.SourceFiles()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 source files, got %v", files)
	}

	if filepath.Base(files[0]) != "a.ppl" || filepath.Base(files[1]) != "b.ppl" {
		t.Errorf("expected lexical order, got %v", files)
	}
}

func TestNewCompilerBuiltin(t *testing.T) {
	c := NewCompiler()

	if c.Builtin == nil || !c.Builtin.IsBuiltin {
		t.Fatal("expected the builtin module to be lowered and marked")
	}

	if c.Builtin.TypeNamed("Integer") == nil {
		t.Error("expected the builtin Integer type")
	}

	if c.Builtin.FunctionWithName("destroy <:ReferenceMut<Integer>>") == nil {
		t.Error("expected the Integer destructor to be declared")
	}
}
