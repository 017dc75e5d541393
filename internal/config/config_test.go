package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_missingFile(t *testing.T) {
	opts, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !opts.PublishEnabled() {
		t.Error("publish should default to enabled")
	}
	if opts.DistTag != "" || opts.SkipChecks {
		t.Errorf("expected zero options, got %+v", opts)
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	content := `
workspaces:
  - packages/*
distTag: next
skipChecks: true
publish: false
registry: https://npm.example.com
access: public
`
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	opts, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.Workspaces) != 1 || opts.Workspaces[0] != "packages/*" {
		t.Errorf("workspaces = %v", opts.Workspaces)
	}
	if opts.DistTag != "next" || !opts.SkipChecks || opts.Access != "public" {
		t.Errorf("options = %+v", opts)
	}
	if opts.Registry != "https://npm.example.com" {
		t.Errorf("registry = %q", opts.Registry)
	}
	if opts.PublishEnabled() {
		t.Error("publish: false should disable publishing")
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(":\nbroken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(root); err == nil {
		t.Fatal("expected parse error")
	}
}
