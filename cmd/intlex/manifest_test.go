package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "intlex.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindIntlexToml_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeManifest(t, root, "[package]\nname = \"app\"\n")

	got, ok, err := findIntlexToml(nested)
	if err != nil {
		t.Fatalf("findIntlexToml: %v", err)
	}
	if !ok || got != want {
		t.Errorf("found = %q (%v), want %q", got, ok, want)
	}
}

func TestFindIntlexToml_Missing(t *testing.T) {
	_, ok, err := findIntlexToml(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected no manifest in an empty tree")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "webapp"

[extract]
module_sources = ["react-intl", "app/i18n"]
component_names = ["FormattedMessage"]
require_description = true
out_dir = "build/lang"
`)

	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Package.Name != "webapp" {
		t.Errorf("name = %q", cfg.Package.Name)
	}
	ec := cfg.Extract
	if len(ec.ModuleSources) != 2 || ec.ModuleSources[1] != "app/i18n" {
		t.Errorf("module_sources = %v", ec.ModuleSources)
	}
	if !ec.RequireDescription || ec.OutDir != "build/lang" {
		t.Errorf("extract config = %+v", ec)
	}
}

func TestLoadProjectConfig_MissingName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\n")
	if _, err := loadProjectConfig(path); err == nil {
		t.Error("expected an error for a manifest without [package].name")
	}
}

func TestLoadProjectConfig_ExtractOptional(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nname = \"app\"\n")
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if len(cfg.Extract.ModuleSources) != 0 || cfg.Extract.OutDir != "" {
		t.Errorf("extract defaults = %+v", cfg.Extract)
	}
}
