// Package sortstrategy provides the deterministic, stable orderings the
// single-atlas search tries when feeding images to the packer.
package sortstrategy

import (
	"math"
	"sort"
)

// Item is the minimal shape a sortable element needs: a name identifying
// the source image (the strategies never compare it), and the dimensions
// the strategies compare.
type Item struct {
	Name   string
	Width  int
	Height int
}

// SearchOrder is the ordered set of strategies the single-atlas grid search
// tries per canvas size and placement heuristic. "none" and "area_asc" are
// valid strategy names for callers but are not part of the grid: the
// packer gets no benefit from re-trying an ascending-area order the
// descending pass already dominates. The unsorted input order is not
// tried by the grid; "none" only labels the global-shuffle attempts.
var SearchOrder = []string{
	"area", "height", "width", "perimeter", "max_side", "min_side",
	"ratio", "ratio_inv", "diagonal", "height_asc", "width_asc", "pathological",
}

// Apply returns a new slice containing items ordered by the strategy
// called name. Unknown names return an identity copy, matching "none".
func Apply(name string, items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	switch name {
	case "none":
		return out
	case "area":
		stableSort(out, func(a, b Item) bool { return area(a) > area(b) })
	case "area_asc":
		stableSort(out, func(a, b Item) bool { return area(a) < area(b) })
	case "height":
		stableSort(out, func(a, b Item) bool { return a.Height > b.Height })
	case "height_asc":
		stableSort(out, func(a, b Item) bool { return a.Height < b.Height })
	case "width":
		stableSort(out, func(a, b Item) bool { return a.Width > b.Width })
	case "width_asc":
		stableSort(out, func(a, b Item) bool { return a.Width < b.Width })
	case "perimeter":
		stableSort(out, func(a, b Item) bool { return perimeter(a) > perimeter(b) })
	case "max_side":
		stableSort(out, func(a, b Item) bool { return maxSide(a) > maxSide(b) })
	case "min_side":
		stableSort(out, func(a, b Item) bool { return minSide(a) > minSide(b) })
	case "ratio":
		stableSort(out, func(a, b Item) bool { return ratio(a) > ratio(b) })
	case "ratio_inv":
		stableSort(out, func(a, b Item) bool { return ratioInv(a) > ratioInv(b) })
	case "diagonal":
		stableSort(out, func(a, b Item) bool { return diagonal(a) > diagonal(b) })
	case "pathological":
		return pathological(out)
	default:
		return out
	}

	return out
}

func stableSort(items []Item, less func(a, b Item) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

func area(i Item) int         { return i.Width * i.Height }
func perimeter(i Item) int    { return i.Width + i.Height }
func maxSide(i Item) int      { return max(i.Width, i.Height) }
func minSide(i Item) int      { return min(i.Width, i.Height) }
func ratio(i Item) float64    { return float64(i.Width) / float64(max(i.Height, 1)) }
func ratioInv(i Item) float64 { return float64(i.Height) / float64(max(i.Width, 1)) }
func diagonal(i Item) float64 {
	return math.Sqrt(float64(i.Width)*float64(i.Width) + float64(i.Height)*float64(i.Height))
}

// pathological sorts by area descending, then interleaves the result from
// both ends: 0, N-1, 1, N-2, ... This scatters the largest and smallest
// images across the packing order, which occasionally beats a strictly
// monotonic order when the free list fragments unevenly.
func pathological(items []Item) []Item {
	stableSort(items, func(a, b Item) bool { return area(a) > area(b) })

	out := make([]Item, 0, len(items))
	left, right := 0, len(items)-1
	takeLeft := true
	for left <= right {
		if takeLeft {
			out = append(out, items[left])
			left++
		} else {
			out = append(out, items[right])
			right--
		}
		takeLeft = !takeLeft
	}

	return out
}
