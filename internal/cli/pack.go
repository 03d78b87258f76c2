package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/larkspur/atlaspacker/internal/downscale"
	"github.com/larkspur/atlaspacker/internal/imagesrc"
	"github.com/larkspur/atlaspacker/internal/manifest"
)

// CmdPack packs one directory of source images into a manifest plus a set
// of atlas PNGs. It doubles as a single project entry when parsed out of a
// build config file, hence the yaml tags alongside the go-flags ones.
type CmdPack struct {
	Name          string `short:"n" long:"name" description:"Project name, used by build's --project filter" yaml:"name,omitempty"`
	Input         string `short:"i" long:"input" description:"Input directory of source images" required:"yes" yaml:"input"`
	Output        string `short:"o" long:"output" description:"Output directory for atlases and manifest.json" required:"yes" yaml:"output"`
	MaxAtlasSize  int    `long:"max_atlas_size" description:"Atlas size cap for the per-image fallback and default for max_image_size (the packing search always tries 2048, 1536 and 1024 canvases)" default:"2048" yaml:"max_atlas_size"`
	Padding       int    `long:"padding" description:"Padding in pixels around each placed image" default:"2" yaml:"padding"`
	MaxImageSize  int    `long:"max_image_size" description:"Maximum source image size before packing (0 = same as max_atlas_size)" yaml:"max_image_size"`
	SkipUnchanged bool   `long:"skip-unchanged" description:"Skip packing if inputs are unchanged since the last run" yaml:"skip_unchanged"`
}

// Execute runs the pack command.
func (c *CmdPack) Execute(args []string) error {
	return runPack(c)
}

func runPack(opts *CmdPack) error {
	if _, err := os.Stat(opts.Input); err != nil {
		return fmt.Errorf("input directory: %w", err)
	}

	maxImageSize := opts.MaxImageSize
	if maxImageSize <= 0 {
		maxImageSize = opts.MaxAtlasSize
	}

	images, unreadable, err := imagesrc.LoadDir(opts.Input)
	if err != nil {
		return fmt.Errorf("load input images: %w", err)
	}
	for _, u := range unreadable {
		fmt.Fprintf(os.Stderr, "skipping unreadable image: %v\n", u)
	}

	if opts.SkipUnchanged {
		skip, err := shouldSkipPack(opts, images)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip-unchanged check failed, packing anyway: %v\n", err)
		} else if skip {
			fmt.Println("inputs unchanged, skipping pack")
			return nil
		}
	}

	if err := os.MkdirAll(opts.Output, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Fit into a separate slice so the skip-unchanged cache written below
	// fingerprints the same decoded sizes that shouldSkipPack compares.
	packImages := make([]imagesrc.SourceImage, len(images))
	for i, im := range images {
		packImages[i] = im.Fit(maxImageSize, maxImageSize)
	}

	inputMeta, userMetadata, err := manifest.LoadInput(opts.Input)
	if err != nil {
		return fmt.Errorf("load input manifest: %w", err)
	}

	imagesMeta := manifest.NewImagesMetadata()
	names := make([]string, len(images))
	for i, im := range images {
		names[i] = im.Name
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(opts.Input, name))
		if err != nil {
			return fmt.Errorf("read %s for hashing: %w", name, err)
		}

		fields := map[string]any{}
		for k, v := range inputMeta[name] {
			fields[k] = v
		}
		fields["sha"] = manifest.SHA256Hex(raw)
		imagesMeta.Set(name, fields)
	}

	m := &manifest.Manifest{
		Version:        1,
		TotalImages:    len(images),
		MaxAtlasSize:   opts.MaxAtlasSize,
		MaxImageSize:   maxImageSize,
		Padding:        opts.Padding,
		ImagesMetadata: imagesMeta,
		Metadata:       userMetadata,
	}

	progress := func(step, total int, message string) {
		fmt.Printf("[%d/%d] %s\n", step, total, message)
	}

	cfg := downscale.Config{MaxAtlasSize: opts.MaxAtlasSize, Padding: opts.Padding}
	if _, err := downscale.Run(opts.Output, packImages, cfg, m, progress); err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	if err := manifest.Write(filepath.Join(opts.Output, "manifest.json"), m); err != nil {
		return err
	}

	if opts.SkipUnchanged {
		if err := writeSkipCache(opts, images); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write skip-unchanged cache: %v\n", err)
		}
	}

	fmt.Printf("packed %d images into %d atlas(es)\n", len(images), len(m.Atlases))
	return nil
}
