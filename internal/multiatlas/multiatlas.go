// Package multiatlas drives the adaptive multi-atlas loop: it repeatedly
// invokes the single-atlas search on whatever images remain, commits the
// winner, and repeats until the residual set is empty or the search gets
// stuck. When the search cannot place anything at all it falls back to
// packing one atlas per image.
package multiatlas

import (
	"image"
	"image/draw"

	"github.com/larkspur/atlaspacker/internal/geometry"
	"github.com/larkspur/atlaspacker/internal/imagesrc"
	"github.com/larkspur/atlaspacker/internal/packer"
	"github.com/larkspur/atlaspacker/internal/search"
)

// MaxAtlases is the defensive safety cap on atlases produced by a single
// Drive call; hitting it signals a pathological input (spec's DriverStuck).
const MaxAtlases = 100

// Atlas is a canvas cropped to the bounding box of its placements, the
// strategy that produced it, and its rendered pixels.
type Atlas struct {
	Width         int
	Height        int
	Placements    []search.Placement
	PlacementRule packer.Rule
	SortName      string
	Score         search.Score
	Image         *image.RGBA
}

// Drive packs images into as many atlases as needed, each one chosen by
// the single-atlas search. It returns the atlases committed so far. An
// empty result means the search rejected the image set outright because
// some image's padded size exceeds the largest canvas (Unpackable), and
// the caller should apply Fallback. stuck reports
// whether MaxAtlases was reached while images still remained
// (spec's DriverStuck).
func Drive(images []imagesrc.SourceImage, padding int) (atlases []Atlas, stuck bool) {
	remaining := make([]imagesrc.SourceImage, len(images))
	copy(remaining, images)

	for len(remaining) > 0 {
		if len(atlases) >= MaxAtlases {
			return atlases, true
		}

		res, ok := search.FindBestSingleAtlas(remaining, padding)
		if !ok {
			break
		}

		atlases = append(atlases, rasterize(res, remaining, padding))
		remaining = removePlaced(remaining, res.Placements)
	}

	return atlases, false
}

// Fallback builds one tight atlas per image, downscaling (preserving
// aspect, Lanczos) any image whose padded size exceeds maxAtlasSize to fit
// within it first.
func Fallback(images []imagesrc.SourceImage, padding, maxAtlasSize int) []Atlas {
	atlases := make([]Atlas, 0, len(images))

	for _, im := range images {
		fitted := im
		limit := maxAtlasSize - 2*padding
		if limit < 1 {
			limit = 1
		}
		if im.Width+2*padding > maxAtlasSize || im.Height+2*padding > maxAtlasSize {
			fitted = im.Fit(limit, limit)
		}

		w, h := fitted.Width+2*padding, fitted.Height+2*padding
		canvas := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(canvas, image.Rect(padding, padding, padding+fitted.Width, padding+fitted.Height), fitted.Img, image.Point{}, draw.Src)

		placement := search.Placement{
			Name:        im.Name,
			Rect:        geometry.Rect{X: 0, Y: 0, W: w, H: h},
			ImageWidth:  fitted.Width,
			ImageHeight: fitted.Height,
		}

		atlases = append(atlases, Atlas{
			Width:      w,
			Height:     h,
			Placements: []search.Placement{placement},
			SortName:   "none",
			Score: search.Score{
				Placed:     1,
				Area:       w * h,
				Efficiency: float64(fitted.Width*fitted.Height) / float64(w*h) * 100,
			},
			Image: canvas,
		})
	}

	return atlases
}

func rasterize(res search.Result, pool []imagesrc.SourceImage, padding int) Atlas {
	canvas := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))

	byName := make(map[string]imagesrc.SourceImage, len(pool))
	for _, im := range pool {
		byName[im.Name] = im
	}

	for _, pl := range res.Placements {
		src, ok := byName[pl.Name]
		if !ok {
			continue
		}
		x := pl.Rect.X + padding
		y := pl.Rect.Y + padding
		draw.Draw(canvas, image.Rect(x, y, x+pl.ImageWidth, y+pl.ImageHeight), src.Img, image.Point{}, draw.Src)
	}

	return Atlas{
		Width:         res.Width,
		Height:        res.Height,
		Placements:    res.Placements,
		PlacementRule: res.Rule,
		SortName:      res.SortName,
		Score:         res.Score,
		Image:         canvas,
	}
}

func removePlaced(images []imagesrc.SourceImage, placed []search.Placement) []imagesrc.SourceImage {
	placedNames := make(map[string]struct{}, len(placed))
	for _, p := range placed {
		placedNames[p.Name] = struct{}{}
	}

	out := images[:0:0]
	for _, im := range images {
		if _, done := placedNames[im.Name]; !done {
			out = append(out, im)
		}
	}
	return out
}
