package publish

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/larkspur/atlaspacker/internal/manifest"
)

func sampleManifest() *manifest.Manifest {
	im := manifest.NewImagesMetadata()
	im.Set("zebra.png", map[string]any{"sha": "z"})
	im.Set("apple.png", map[string]any{"sha": "a"})

	return &manifest.Manifest{
		Version:        1,
		ImagesMetadata: im,
		Atlases: []manifest.AtlasRecord{
			{
				Filename: "atlas_x01_00.png",
				Scale:    1,
				SHA:      "deadbeef",
				UV: map[string]manifest.NormalizedUV{
					"zebra.png": {Width: 10, Height: 10},
					"apple.png": {Width: 20, Height: 20},
				},
			},
		},
	}
}

func TestCompressIndexesByInsertionOrder(t *testing.T) {
	t.Parallel()

	c := Compress(sampleManifest())

	if len(c.Mapping) != 2 {
		t.Fatalf("mapping length = %d, want 2", len(c.Mapping))
	}
	if c.Mapping[0]["sha"] != "z" || c.Mapping[1]["sha"] != "a" {
		t.Fatalf("mapping not in insertion order: %+v", c.Mapping)
	}

	uv := c.Atlases[0].UV
	if _, ok := uv["0"]; !ok {
		t.Fatalf("expected uv key \"0\" for zebra.png (index 0), got %v", uv)
	}
	if _, ok := uv["1"]; !ok {
		t.Fatalf("expected uv key \"1\" for apple.png (index 1), got %v", uv)
	}
	if uv["0"].Width != 10 {
		t.Fatalf("uv[0] width = %d, want 10 (zebra.png's)", uv["0"].Width)
	}
}

func TestCopyAtlasesRenamesByPosition(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	dstDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(srcDir, "atlas_x01_00.png"), []byte("fake-png"), 0o600); err != nil {
		t.Fatal(err)
	}

	m := sampleManifest()
	results, err := CopyAtlases(srcDir, dstDir, m)
	if err != nil {
		t.Fatalf("CopyAtlases: %v", err)
	}
	if len(results) != 1 || results[0].Missing {
		t.Fatalf("unexpected results: %+v", results)
	}

	want := filepath.Join(dstDir, "atlas", "0.png")
	if results[0].Dest != want {
		t.Fatalf("dest = %q, want %q", results[0].Dest, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected copied file at %s: %v", want, err)
	}
}

func TestCopyAtlasesWarnsOnMissingSource(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	dstDir := t.TempDir()

	m := sampleManifest()
	results, err := CopyAtlases(srcDir, dstDir, m)
	if err != nil {
		t.Fatalf("CopyAtlases should not fail on a missing source file: %v", err)
	}
	if len(results) != 1 || !results[0].Missing {
		t.Fatalf("expected a Missing result, got %+v", results)
	}
}
