// Package publish implements the static publisher: it renumbers atlases
// and images by position, replacing filenames with compact integer
// indices for HTTP delivery, and copies the atlas files into their final
// published names.
package publish

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/larkspur/atlaspacker/internal/manifest"
)

// CompressedAtlas is one atlas entry in the published manifest, with UV
// keys replaced by stringified image indices.
type CompressedAtlas struct {
	Scale  int                              `json:"scale"`
	Width  int                              `json:"width"`
	Height int                              `json:"height"`
	SHA    string                           `json:"sha"`
	UV     map[string]manifest.NormalizedUV `json:"uv"`
}

// Compressed is the published atlas.json document.
type Compressed struct {
	Version  int               `json:"version"`
	Mapping  []map[string]any  `json:"mapping"`
	Atlases  []CompressedAtlas `json:"atlases"`
	Metadata map[string]any    `json:"metadata,omitempty"`
}

// Compress walks m.ImagesMetadata in its insertion order to assign each
// filename a 0-based index, then rewrites every atlas's UV map to use
// those indices (as strings) instead of filenames.
func Compress(m *manifest.Manifest) *Compressed {
	names := m.ImagesMetadata.Names()
	indexOf := make(map[string]int, len(names))
	mapping := make([]map[string]any, len(names))

	for i, name := range names {
		indexOf[name] = i
		fields, _ := m.ImagesMetadata.Get(name)
		mapping[i] = fields
	}

	atlases := make([]CompressedAtlas, len(m.Atlases))
	for i, rec := range m.Atlases {
		uv := make(map[string]manifest.NormalizedUV, len(rec.UV))
		for name, v := range rec.UV {
			idx, ok := indexOf[name]
			if !ok {
				continue
			}
			uv[strconv.Itoa(idx)] = v
		}
		atlases[i] = CompressedAtlas{Scale: rec.Scale, Width: rec.Width, Height: rec.Height, SHA: rec.SHA, UV: uv}
	}

	return &Compressed{Version: m.Version, Mapping: mapping, Atlases: atlases, Metadata: m.Metadata}
}

// CopyResult records the outcome of copying one atlas file during publish.
type CopyResult struct {
	Source  string
	Dest    string
	Missing bool
}

// CopyAtlases copies each atlas PNG named in m.Atlases from srcDir into
// dstDir/atlas/{i}.png, where i is its position in m.Atlases. A missing
// source file is recorded as Missing rather than failing the run
// (spec's PerFileMissingAtStaticPublish).
func CopyAtlases(srcDir, dstDir string, m *manifest.Manifest) ([]CopyResult, error) {
	atlasDir := filepath.Join(dstDir, "atlas")
	if err := os.MkdirAll(atlasDir, 0o750); err != nil {
		return nil, fmt.Errorf("create atlas output dir: %w", err)
	}

	results := make([]CopyResult, 0, len(m.Atlases))
	for i, rec := range m.Atlases {
		src := filepath.Join(srcDir, rec.Filename)
		dst := filepath.Join(atlasDir, fmt.Sprintf("%d%s", i, filepath.Ext(rec.Filename)))

		if _, err := os.Stat(src); err != nil {
			results = append(results, CopyResult{Source: src, Dest: dst, Missing: true})
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return results, fmt.Errorf("copy %s: %w", src, err)
		}
		results = append(results, CopyResult{Source: src, Dest: dst})
	}

	return results, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	_, err = io.Copy(out, in)
	return err
}
