package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// InputManifestName is the optional user-authored metadata file looked
// for inside an input directory.
const InputManifestName = "manifest.json"

// shapedInput matches the new-shape input manifest:
// {"version":1,"images":{...},"metadata":{...}}.
type shapedInput struct {
	Version  int                       `json:"version"`
	Images   map[string]map[string]any `json:"images"`
	Metadata map[string]any            `json:"metadata"`
}

// LoadInput reads dir/manifest.json if present and returns the per-image
// user fields plus any top-level metadata bag. A missing file is not an
// error: it returns empty maps. The new shape is detected by the presence
// of an "images" key; otherwise the whole document is treated as the
// legacy {filename: {...}} shape.
func LoadInput(dir string) (images map[string]map[string]any, metadata map[string]any, err error) {
	path := filepath.Join(dir, InputManifestName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]map[string]any{}, nil, nil
		}
		return nil, nil, fmt.Errorf("read input manifest: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("parse input manifest: %w", err)
	}

	if _, hasImages := probe["images"]; hasImages {
		var shaped shapedInput
		if err := json.Unmarshal(data, &shaped); err != nil {
			return nil, nil, fmt.Errorf("parse input manifest (new shape): %w", err)
		}
		if shaped.Images == nil {
			shaped.Images = map[string]map[string]any{}
		}
		return shaped.Images, shaped.Metadata, nil
	}

	var legacy map[string]map[string]any
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, nil, fmt.Errorf("parse input manifest (legacy shape): %w", err)
	}
	if legacy == nil {
		legacy = map[string]map[string]any{}
	}
	return legacy, nil, nil
}
