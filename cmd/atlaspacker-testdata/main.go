// Command atlaspacker-testdata generates synthetic PNG fixtures for
// manually exercising the packer: random-sized, randomly colored
// rectangles with an index label, suitable as an input directory for
// "atlaspacker pack".
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type options struct {
	Args struct {
		OutputDir string `positional-arg-name:"output" description:"Output directory for generated PNG files" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	MinSize  int `short:"m" long:"min-size" description:"Minimum image side" default:"16"`
	MaxSize  int `short:"M" long:"max-size" description:"Maximum image side" default:"512"`
	Count    int `short:"c" long:"count" description:"Number of images to generate" default:"12"`
	MaxRatio int `short:"r" long:"max-ratio" description:"Maximum side ratio (1=squares only)" default:"4"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "atlaspacker-testdata"
	parser.Usage = "[OPTIONS] <output>"

	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(&opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	if opts.MinSize <= 0 || opts.MaxSize <= 0 || opts.MinSize > opts.MaxSize {
		return fmt.Errorf("min-size and max-size must be positive with min-size <= max-size")
	}
	if opts.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if opts.MaxRatio < 1 {
		return fmt.Errorf("max-ratio must be >= 1")
	}

	if err := os.MkdirAll(opts.Args.OutputDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	//nolint:gosec // non-crypto randomness is fine for test fixtures.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < opts.Count; i++ {
		w, h := randomSize(rng, opts)
		if err := generateImage(opts.Args.OutputDir, i, w, h, rng); err != nil {
			return fmt.Errorf("generate image %d: %w", i, err)
		}
	}

	fmt.Printf("generated %d images in %s\n", opts.Count, opts.Args.OutputDir)
	return nil
}

func randomSize(rng *rand.Rand, opts *options) (w, h int) {
	base := opts.MinSize + rng.Intn(opts.MaxSize-opts.MinSize+1)
	if opts.MaxRatio == 1 {
		return base, base
	}

	ratio := 1 + rng.Intn(opts.MaxRatio)
	if rng.Intn(2) == 0 {
		w, h = base*ratio, base
	} else {
		w, h = base, base*ratio
	}
	if w > opts.MaxSize {
		w = opts.MaxSize
	}
	if h > opts.MaxSize {
		h = opts.MaxSize
	}
	return w, h
}

func generateImage(outputDir string, index, w, h int, rng *rand.Rand) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	bg := color.RGBA{R: randByte(rng), G: randByte(rng), B: randByte(rng), A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bg)
		}
	}

	border := color.RGBA{R: randByte(rng), G: randByte(rng), B: randByte(rng), A: 255}
	for y := 0; y < h; y++ {
		img.Set(0, y, border)
		img.Set(w-1, y, border)
	}
	for x := 0; x < w; x++ {
		img.Set(x, 0, border)
		img.Set(x, h-1, border)
	}

	drawCenteredLabel(img, fmt.Sprintf("%d", index+1), float64(min(w, h))*0.5, color.RGBA{A: 160})

	path := filepath.Join(outputDir, fmt.Sprintf("test_%03d_%dx%d.png", index, w, h))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return png.Encode(f, img)
}

func drawCenteredLabel(img *image.RGBA, label string, size float64, c color.RGBA) {
	if size < 6 {
		return
	}
	tt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return
	}
	defer func() { _ = face.Close() }()

	bounds, _ := font.BoundString(face, label)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	b := img.Bounds()
	x := b.Min.X + (b.Dx()-textW)/2 - bounds.Min.X.Ceil()
	y := b.Min.Y + (b.Dy()-textH)/2 - bounds.Min.Y.Ceil()

	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face, Dot: fixed.P(x, y)}
	drawer.DrawString(label)
}

func randByte(rng *rand.Rand) uint8 {
	//nolint:gosec // Intn(256) is always within uint8.
	return uint8(rng.Intn(256))
}
