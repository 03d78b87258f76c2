package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParsePackProjectsWrapped(t *testing.T) {
	data := []byte(`
projects:
  - name: ui
    input: ./ui-src
    output: ./ui-dist
  - name: icons
    input: ./icons-src
    output: ./icons-dist
`)
	projects, err := parsePackProjects(data)
	if err != nil {
		t.Fatalf("parsePackProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("len = %d, want 2", len(projects))
	}
	if projects[0].Name != "ui" || projects[1].Name != "icons" {
		t.Fatalf("unexpected project names: %+v", projects)
	}
}

func TestParsePackProjectsBareList(t *testing.T) {
	data := []byte(`
- name: ui
  input: ./ui-src
  output: ./ui-dist
`)
	projects, err := parsePackProjects(data)
	if err != nil {
		t.Fatalf("parsePackProjects: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "ui" {
		t.Fatalf("unexpected result: %+v", projects)
	}
}

func TestFilterProjectsAppliesDefaultsAndPaths(t *testing.T) {
	projects := []CmdPack{
		{Name: "ui", Input: "ui-src", Output: "ui-dist"},
	}
	out, err := filterProjects(projects, nil, "/base")
	if err != nil {
		t.Fatalf("filterProjects: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].MaxAtlasSize != 2048 {
		t.Fatalf("default max_atlas_size not applied: %+v", out[0])
	}
	if out[0].Input != filepath.Join("/base", "ui-src") {
		t.Fatalf("input not normalized: %q", out[0].Input)
	}
}

func TestFilterProjectsOnlySelectsByName(t *testing.T) {
	projects := []CmdPack{
		{Name: "ui", Input: "ui-src", Output: "ui-dist"},
		{Name: "icons", Input: "icons-src", Output: "icons-dist"},
	}
	out, err := filterProjects(projects, []string{"icons"}, "/base")
	if err != nil {
		t.Fatalf("filterProjects: %v", err)
	}
	if len(out) != 1 || out[0].Name != "icons" {
		t.Fatalf("unexpected selection: %+v", out)
	}
}

func TestFilterProjectsUnknownOnlyIsEmptyNotError(t *testing.T) {
	projects := []CmdPack{{Name: "ui", Input: "ui-src", Output: "ui-dist"}}
	out, err := filterProjects(projects, []string{"missing"}, "/base")
	if err != nil {
		t.Fatalf("filterProjects: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no matches, got %+v", out)
	}
}

func TestResolveConfigPathDefaultsToCwdFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, defaultConfigName)
	if err := os.WriteFile(cfgPath, []byte("projects: []"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer os.Chdir(cwd)

	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	resolved, err := resolveConfigPath("")
	if err != nil {
		t.Fatalf("resolveConfigPath: %v", err)
	}
	if filepath.Clean(resolved) != filepath.Clean(cfgPath) {
		t.Fatalf("resolved = %q, want %q", resolved, cfgPath)
	}
}

func TestResolveConfigPathMissingErrors(t *testing.T) {
	if _, err := resolveConfigPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config path")
	}
}
