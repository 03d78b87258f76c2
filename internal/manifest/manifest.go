// Package manifest assembles and (de)serializes the output manifest: it
// computes per-file content hashes, merges user-authored metadata, and
// emits per-atlas records with normalized UV rects.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/larkspur/atlaspacker/internal/multiatlas"
)

// AtlasRecord describes one emitted atlas file.
type AtlasRecord struct {
	Filename          string                  `json:"filename"`
	Scale             int                     `json:"scale"`
	Index             int                     `json:"index"`
	Width             int                     `json:"width"`
	Height            int                     `json:"height"`
	SHA               string                  `json:"sha"`
	UV                map[string]NormalizedUV `json:"uv"`
	PlacementStrategy string                  `json:"placement_strategy"`
	SortStrategy      string                  `json:"sort_strategy"`
	Efficiency        float64                 `json:"efficiency"`
}

// Manifest is the full output document written as manifest.json.
type Manifest struct {
	Version        int             `json:"version"`
	TotalImages    int             `json:"total_images"`
	MaxAtlasSize   int             `json:"max_atlas_size"`
	MaxImageSize   int             `json:"max_image_size"`
	Padding        int             `json:"padding"`
	Atlases        []AtlasRecord   `json:"atlases"`
	ImagesMetadata *ImagesMetadata `json:"images_metadata"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
}

// SHA256Hex returns the lowercase hex SHA-256 of data, matching the
// per-image and per-atlas hashing rule.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// AppendAtlas converts a rasterized multiatlas.Atlas into an AtlasRecord
// and appends it. pngBytes are the already-encoded PNG file bytes, whose
// SHA-256 becomes the record's sha field. Per §4.3's resolution of the
// efficiency ambiguity, the recorded percentage counts padding as used
// space, unlike the search-time score.
func (m *Manifest) AppendAtlas(filename string, scale, index, padding int, atlas multiatlas.Atlas, pngBytes []byte) {
	uv := make(map[string]NormalizedUV, len(atlas.Placements))
	paddedArea := 0
	for _, pl := range atlas.Placements {
		px := PixelUV{X: pl.Rect.X + padding, Y: pl.Rect.Y + padding, Width: pl.ImageWidth, Height: pl.ImageHeight}
		uv[pl.Name] = Normalize(px, atlas.Width, atlas.Height)
		paddedArea += pl.Rect.W * pl.Rect.H
	}

	efficiency := 0.0
	if atlas.Width > 0 && atlas.Height > 0 {
		efficiency = float64(paddedArea) / float64(atlas.Width*atlas.Height) * 100
	}

	m.Atlases = append(m.Atlases, AtlasRecord{
		Filename:          filename,
		Scale:             scale,
		Index:             index,
		Width:             atlas.Width,
		Height:            atlas.Height,
		SHA:               SHA256Hex(pngBytes),
		UV:                uv,
		PlacementStrategy: atlas.PlacementRule.String(),
		SortStrategy:      atlas.SortName,
		Efficiency:        efficiency,
	})
}

// Write encodes m as indented JSON to path.
func Write(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
