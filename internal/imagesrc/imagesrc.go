// Package imagesrc decodes supported input image formats into SourceImage
// values and provides the Lanczos downscale/resize capability the
// downscale pipeline and the per-image fallback need. It treats images as
// (pixels, w, h) buffers with a resize operation, per the capability
// boundary the packer core is written against.
package imagesrc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"
	_ "github.com/woozymasta/png" // registers an optimized PNG decoder/encoder
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// SupportedExtensions lists the case-insensitive file extensions treated
// as packable input images.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff"}

// ErrNoValidImages is returned by LoadDir when the input directory
// contains no file with a supported extension, or none of those files
// decodes.
var ErrNoValidImages = errors.New("imagesrc: no valid images in input directory")

// SourceImage is a decoded input image, immutable after decode. Downscale
// and Resize return fresh instances; they never mutate the receiver.
type SourceImage struct {
	Name   string
	Img    image.Image
	Width  int
	Height int
}

// UnreadableImage records a per-file decode failure. LoadDir collects
// these instead of aborting the run.
type UnreadableImage struct {
	Path string
	Err  error
}

func (u UnreadableImage) Error() string {
	return fmt.Sprintf("%s: %v", u.Path, u.Err)
}

// IsSupportedExt reports whether ext (as returned by filepath.Ext) names a
// supported input format, case-insensitively.
func IsSupportedExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadDir decodes every supported image file directly inside dir (no
// recursion), in natural filename order. Per-file decode failures are
// collected in the returned slice and the file is skipped, never aborting
// the run. LoadDir fails only if the directory holds no decodable image at
// all.
func LoadDir(dir string) ([]SourceImage, []UnreadableImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read input directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !IsSupportedExt(filepath.Ext(e.Name())) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(natural.StringSlice(names))

	if len(names) == 0 {
		return nil, nil, ErrNoValidImages
	}

	var images []SourceImage
	var unreadable []UnreadableImage
	for _, name := range names {
		path := filepath.Join(dir, name)
		img, err := decodeFile(path)
		if err != nil {
			unreadable = append(unreadable, UnreadableImage{Path: path, Err: err})
			continue
		}
		b := img.Bounds()
		images = append(images, SourceImage{Name: name, Img: img, Width: b.Dx(), Height: b.Dy()})
	}

	if len(images) == 0 {
		return nil, unreadable, ErrNoValidImages
	}

	return images, unreadable, nil
}

func decodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(data))
	case ".bmp":
		return bmp.Decode(bytes.NewReader(data))
	case ".tiff":
		return tiff.Decode(bytes.NewReader(data))
	default:
		// .png, dispatched through the registered image.Decode codec set
		// (woozymasta/png's blank import takes priority for PNG).
		img, _, err := image.Decode(bytes.NewReader(data))
		return img, err
	}
}

// Downscale returns a copy of s with both dimensions divided by factor,
// floored but never below 1px, resampled with Lanczos. factor=1 returns s
// unchanged (no copy).
func (s SourceImage) Downscale(factor int) SourceImage {
	if factor <= 1 {
		return s
	}

	w := s.Width / factor
	h := s.Height / factor
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return s.Resize(w, h)
}

// Resize returns a copy of s scaled to exactly w×h using Lanczos
// resampling.
func (s SourceImage) Resize(w, h int) SourceImage {
	resized := imaging.Resize(s.Img, w, h, imaging.Lanczos)
	return SourceImage{Name: s.Name, Img: resized, Width: w, Height: h}
}

// Fit returns a copy of s downscaled (preserving aspect ratio, Lanczos) so
// that both dimensions are at most maxW×maxH. If s already fits, it is
// returned unchanged.
func (s SourceImage) Fit(maxW, maxH int) SourceImage {
	if s.Width <= maxW && s.Height <= maxH {
		return s
	}

	fitted := imaging.Fit(s.Img, maxW, maxH, imaging.Lanczos)
	b := fitted.Bounds()
	return SourceImage{Name: s.Name, Img: fitted, Width: b.Dx(), Height: b.Dy()}
}
