package downscale

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/larkspur/atlaspacker/internal/imagesrc"
	"github.com/larkspur/atlaspacker/internal/manifest"
)

func solid(name string, w, h int) imagesrc.SourceImage {
	return imagesrc.SourceImage{Name: name, Img: image.NewRGBA(image.Rect(0, 0, w, h)), Width: w, Height: h}
}

func TestRunSingleImageEarlyStopsAfterScale1(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	images := []imagesrc.SourceImage{solid("a.png", 512, 256)}
	m := &manifest.Manifest{ImagesMetadata: manifest.NewImagesMetadata()}

	processed, err := Run(outDir, images, Config{MaxAtlasSize: 2048, Padding: 2}, m, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if processed != 1 {
		t.Fatalf("processed %d scale levels, want 1 (early stop)", processed)
	}
	if len(m.Atlases) != 1 {
		t.Fatalf("expected 1 atlas record, got %d", len(m.Atlases))
	}
	rec := m.Atlases[0]
	if rec.Width != 516 || rec.Height != 260 {
		t.Fatalf("atlas size = %dx%d, want 516x260 (512+2*2, 256+2*2)", rec.Width, rec.Height)
	}
	if rec.Filename != "atlas_x01_00.png" {
		t.Fatalf("filename = %q, want atlas_x01_00.png", rec.Filename)
	}

	if _, err := os.Stat(filepath.Join(outDir, rec.Filename)); err != nil {
		t.Fatalf("expected atlas file on disk: %v", err)
	}
}

func TestRunSpillProducesTwoAtlasesAtScale1(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	images := []imagesrc.SourceImage{
		solid("a.png", 1020, 1020),
		solid("b.png", 1020, 1020),
		solid("c.png", 1020, 1020),
	}
	m := &manifest.Manifest{ImagesMetadata: manifest.NewImagesMetadata()}

	if _, err := Run(outDir, images, Config{MaxAtlasSize: 2048, Padding: 2}, m, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	scale1 := 0
	for _, rec := range m.Atlases {
		if rec.Scale == 1 {
			scale1++
		}
	}
	if scale1 != 2 {
		t.Fatalf("expected 2 atlases at scale 1 for a 2+1 spill, got %d", scale1)
	}
}

func TestRunAtlasSHAMatchesWrittenFile(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	images := []imagesrc.SourceImage{solid("a.png", 64, 64)}
	m := &manifest.Manifest{ImagesMetadata: manifest.NewImagesMetadata()}

	if _, err := Run(outDir, images, Config{MaxAtlasSize: 2048, Padding: 2}, m, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	rec := m.Atlases[0]
	data, err := os.ReadFile(filepath.Join(outDir, rec.Filename))
	if err != nil {
		t.Fatal(err)
	}
	if got := manifest.SHA256Hex(data); got != rec.SHA {
		t.Fatalf("recorded sha %q does not match file sha %q", rec.SHA, got)
	}
}
