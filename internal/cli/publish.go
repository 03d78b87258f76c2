package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/larkspur/atlaspacker/internal/manifest"
	"github.com/larkspur/atlaspacker/internal/publish"
)

// CmdPublish renumbers a packed output directory's manifest for HTTP
// delivery and copies its atlases into their published names.
type CmdPublish struct {
	Input  string `short:"i" long:"input" description:"Directory containing manifest.json and atlas PNGs" required:"yes"`
	Output string `short:"o" long:"output" description:"Directory to write atlas.json and atlas/" required:"yes"`
}

// Execute runs the publish command.
func (c *CmdPublish) Execute(args []string) error {
	return runPublish(c)
}

func runPublish(opts *CmdPublish) error {
	data, err := os.ReadFile(filepath.Join(opts.Input, "manifest.json"))
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	m := &manifest.Manifest{ImagesMetadata: manifest.NewImagesMetadata()}
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	if err := os.MkdirAll(opts.Output, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	results, err := publish.CopyAtlases(opts.Input, opts.Output, m)
	if err != nil {
		return fmt.Errorf("copy atlases: %w", err)
	}
	for _, r := range results {
		if r.Missing {
			fmt.Fprintf(os.Stderr, "warning: atlas file missing, skipping: %s\n", r.Source)
		}
	}

	compressed := publish.Compress(m)
	out, err := json.MarshalIndent(compressed, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal compressed manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(opts.Output, "atlas.json"), out, 0o644); err != nil {
		return fmt.Errorf("write atlas.json: %w", err)
	}

	fmt.Printf("published %d atlas(es), %d image(s)\n", len(compressed.Atlases), len(compressed.Mapping))
	return nil
}
