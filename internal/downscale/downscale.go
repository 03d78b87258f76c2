// Package downscale drives the multi-resolution packing loop: for each
// downscale factor it resamples every source image, invokes the
// multi-atlas driver (falling back to one-atlas-per-image on failure),
// writes the resulting PNGs, and records them in the manifest. It stops
// early once a factor packs everything into a single atlas.
package downscale

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/larkspur/atlaspacker/internal/imagesrc"
	"github.com/larkspur/atlaspacker/internal/manifest"
	"github.com/larkspur/atlaspacker/internal/multiatlas"
)

// Factors is the fixed sequence of integer downscale divisors tried, in
// order, coarsest work saved for last.
var Factors = []int{1, 2, 4, 8, 16}

// Config controls one full downscale-pipeline run.
type Config struct {
	MaxAtlasSize int
	Padding      int
}

// ProgressFunc is invoked at coarse phase boundaries; it must return
// quickly and is never called concurrently with itself.
type ProgressFunc func(step, total int, message string)

// Run executes the full downscale loop, writing atlas PNGs into outDir and
// appending a record to m for each one. It returns the number of scale
// levels actually processed (before any early stop).
func Run(outDir string, images []imagesrc.SourceImage, cfg Config, m *manifest.Manifest, progress ProgressFunc) (int, error) {
	if progress == nil {
		progress = func(int, int, string) {}
	}

	levels := len(Factors)
	processed := 0

	for i, factor := range Factors {
		progress(i+1, levels, fmt.Sprintf("packing scale factor %d", factor))

		scaled := make([]imagesrc.SourceImage, len(images))
		for j, im := range images {
			scaled[j] = im.Downscale(factor)
		}

		atlases, stuck := multiatlas.Drive(scaled, cfg.Padding)
		if stuck {
			progress(i+1, levels, fmt.Sprintf("scale factor %d: driver stuck at %d atlases", factor, multiatlas.MaxAtlases))
		}
		if len(atlases) == 0 {
			atlases = multiatlas.Fallback(scaled, cfg.Padding, cfg.MaxAtlasSize)
		}

		sort.SliceStable(atlases, func(a, b int) bool {
			return len(atlases[a].Placements) > len(atlases[b].Placements)
		})

		for idx, atlas := range atlases {
			filename := fmt.Sprintf("atlas_x%02d_%02d.png", factor, idx)
			pngBytes, err := encodePNG(atlas)
			if err != nil {
				return processed, fmt.Errorf("encode %s: %w", filename, err)
			}
			if err := os.WriteFile(filepath.Join(outDir, filename), pngBytes, 0o644); err != nil {
				return processed, fmt.Errorf("write %s: %w", filename, err)
			}
			m.AppendAtlas(filename, factor, idx, cfg.Padding, atlas, pngBytes)
		}

		processed++

		if len(atlases) == 1 {
			progress(i+1, levels, fmt.Sprintf("scale factor %d fit everything into one atlas, stopping", factor))
			break
		}
	}

	return processed, nil
}

func encodePNG(atlas multiatlas.Atlas) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, atlas.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
