// Package search implements the single-atlas meta-search: for a residual
// image set it enumerates canvas sizes, placement heuristics and sort
// orders (plus randomized perturbations), scoring every attempt purely on
// placement geometry, and returns the best-scoring configuration. No pixel
// buffer is ever allocated during the search; only the caller rasterizes
// the winning configuration.
package search

import (
	"math/rand"

	"github.com/larkspur/atlaspacker/internal/geometry"
	"github.com/larkspur/atlaspacker/internal/imagesrc"
	"github.com/larkspur/atlaspacker/internal/packer"
	"github.com/larkspur/atlaspacker/internal/sortstrategy"
)

// CanvasSizes is the set of square canvas sides tried per spec, largest
// first so earlier attempts have the most room.
var CanvasSizes = []int{2048, 1536, 1024}

// GlobalShuffleAttempts is the number of seeded full-shuffle perturbations
// tried after the grid search, using the best canvas/placement found so
// far.
const GlobalShuffleAttempts = 10

// BlockShuffleAttempts is the number of seeded block-shuffle perturbations
// tried per (canvas size, placement, sort) triple.
const BlockShuffleAttempts = 2

// Placement associates a source image with its padded reservation inside
// a candidate canvas.
type Placement struct {
	Name        string
	Rect        geometry.Rect // padded reservation
	ImageWidth  int
	ImageHeight int
}

// Score is the lexicographic key the search optimizes: more images placed,
// then smaller cropped area, then higher unpadded fill efficiency.
type Score struct {
	Placed     int
	Area       int
	Efficiency float64 // percent, padding excluded
}

// Better reports whether a strictly outranks b.
func (a Score) Better(b Score) bool {
	if a.Placed != b.Placed {
		return a.Placed > b.Placed
	}
	if a.Area != b.Area {
		return a.Area < b.Area
	}
	return a.Efficiency > b.Efficiency
}

// Result is a candidate single-atlas configuration.
type Result struct {
	CanvasSize int
	Width      int // cropped bounding-box width
	Height     int // cropped bounding-box height
	Placements []Placement
	Rule       packer.Rule
	SortName   string
	Score      Score
}

// FindBestSingleAtlas runs the full grid-plus-perturbation search over
// images and padding, returning the best configuration found. ok is false
// when any image's padded size exceeds the largest canvas (Unpackable),
// matching spec's early-reject step, and when images is empty.
func FindBestSingleAtlas(images []imagesrc.SourceImage, padding int) (Result, bool) {
	maxCanvas := CanvasSizes[0]
	for _, im := range images {
		if im.Width+2*padding > maxCanvas || im.Height+2*padding > maxCanvas {
			return Result{}, false
		}
	}
	if len(images) == 0 {
		return Result{}, false
	}

	items := toItems(images)

	var best Result
	haveBest := false
	configCounter := 0

	consider := func(cand Result) {
		if !haveBest || cand.Score.Better(best.Score) {
			best = cand
			haveBest = true
		}
	}

	for _, canvasSize := range CanvasSizes {
		for _, rule := range packer.Rules {
			for _, sortName := range sortstrategy.SearchOrder {
				configCounter++
				sorted := sortstrategy.Apply(sortName, items)

				if cand, ok := attempt(sorted, canvasSize, rule, sortName, padding); ok {
					consider(cand)
				}

				for permIndex := 0; permIndex < BlockShuffleAttempts; permIndex++ {
					seed := canvasSize + configCounter + permIndex*1000
					perturbed := blockShuffle(sorted, seed)
					if cand, ok := attempt(perturbed, canvasSize, rule, sortName, padding); ok {
						consider(cand)
					}
				}
			}
		}
	}

	// Global random shuffles reuse the best canvas size and placement rule
	// found so far. Per the documented handling of an undefined "so far"
	// state, if the grid produced no successful configuration at all, the
	// global-shuffle phase is a no-op rather than an error.
	if haveBest {
		for i := 0; i < GlobalShuffleAttempts; i++ {
			seed := 5000 + i
			shuffled := globalShuffle(items, seed)
			if cand, ok := attempt(shuffled, best.CanvasSize, best.Rule, "none", padding); ok {
				consider(cand)
			}
		}
	}

	return best, haveBest
}

func toItems(images []imagesrc.SourceImage) []sortstrategy.Item {
	items := make([]sortstrategy.Item, len(images))
	for i, im := range images {
		items[i] = sortstrategy.Item{Name: im.Name, Width: im.Width, Height: im.Height}
	}
	return items
}

// attempt packs items in order into a fresh canvas, stopping at the first
// insertion failure, and scores the result. ok is false when nothing could
// be placed at all, which makes the candidate useless regardless of score.
func attempt(items []sortstrategy.Item, canvasSize int, rule packer.Rule, sortName string, padding int) (Result, bool) {
	p := packer.New(canvasSize, canvasSize)

	placements := make([]Placement, 0, len(items))
	for _, it := range items {
		pw := it.Width + 2*padding
		ph := it.Height + 2*padding

		rect, ok := p.Insert(pw, ph, rule)
		if !ok {
			break
		}
		placements = append(placements, Placement{
			Name:        it.Name,
			Rect:        rect,
			ImageWidth:  it.Width,
			ImageHeight: it.Height,
		})
	}

	if len(placements) == 0 {
		return Result{}, false
	}

	width, height := 0, 0
	usedArea := 0
	for _, pl := range placements {
		if pl.Rect.Right() > width {
			width = pl.Rect.Right()
		}
		if pl.Rect.Bottom() > height {
			height = pl.Rect.Bottom()
		}
		usedArea += pl.ImageWidth * pl.ImageHeight
	}

	area := width * height
	efficiency := 0.0
	if area > 0 {
		efficiency = float64(usedArea) / float64(area) * 100
	}

	return Result{
		CanvasSize: canvasSize,
		Width:      width,
		Height:     height,
		Placements: placements,
		Rule:       rule,
		SortName:   sortName,
		Score:      Score{Placed: len(placements), Area: area, Efficiency: efficiency},
	}, true
}

// blockShuffle splits items into overlapping windows of size
// max(3, N/10), advancing by half the block, and shuffles within each
// window using a seeded generator. Per §5's seed discipline, the caller
// supplies canvas_size + config_counter + perm_index*1000 as seed.
func blockShuffle(items []sortstrategy.Item, seed int) []sortstrategy.Item {
	n := len(items)
	out := make([]sortstrategy.Item, n)
	copy(out, items)
	if n < 2 {
		return out
	}

	blockSize := n / 10
	if blockSize < 3 {
		blockSize = 3
	}
	step := blockSize / 2
	if step < 1 {
		step = 1
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	for start := 0; start < n-blockSize; start += step {
		window := out[start : start+blockSize]
		rng.Shuffle(len(window), func(i, j int) { window[i], window[j] = window[j], window[i] })
	}

	return out
}

// globalShuffle returns a fully shuffled copy of items using seed.
func globalShuffle(items []sortstrategy.Item, seed int) []sortstrategy.Item {
	out := make([]sortstrategy.Item, len(items))
	copy(out, items)

	rng := rand.New(rand.NewSource(int64(seed)))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	return out
}
