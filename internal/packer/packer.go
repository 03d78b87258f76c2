// Package packer implements a MAXRECTS free-rectangle bin packer: insert
// one rectangle at a time under a chosen placement heuristic, maintaining
// the free-rectangle set by splitting and pruning on every insertion.
package packer

import "github.com/larkspur/atlaspacker/internal/geometry"

// Rule selects the placement heuristic used by Insert.
type Rule int

const (
	BestAreaFit Rule = iota
	BestShortSideFit
	BestLongSideFit
	BottomLeft
	ContactPoint
)

// Rules lists every placement heuristic, in the order the single-atlas
// search enumerates them.
var Rules = []Rule{BestAreaFit, BestShortSideFit, BestLongSideFit, BottomLeft, ContactPoint}

func (r Rule) String() string {
	switch r {
	case BestAreaFit:
		return "best_area_fit"
	case BestShortSideFit:
		return "best_short_side_fit"
	case BestLongSideFit:
		return "best_long_side_fit"
	case BottomLeft:
		return "bottom_left"
	case ContactPoint:
		return "contact_point"
	default:
		return "unknown"
	}
}

// Packer tracks the free and used rectangle sets for a single canvas.
// Rotation is not supported: the adaptive packer this module implements
// never rotates source images.
type Packer struct {
	used []geometry.Rect
	free []geometry.Rect
	w, h int
}

// New creates a packer for a canvas of the given size.
func New(w, h int) *Packer {
	p := &Packer{
		w:    w,
		h:    h,
		used: make([]geometry.Rect, 0, 64),
		free: make([]geometry.Rect, 0, 64),
	}
	p.free = append(p.free, geometry.Rect{X: 0, Y: 0, W: w, H: h})
	return p
}

// Used returns the rectangles placed so far, in insertion order.
func (p *Packer) Used() []geometry.Rect { return p.used }

// Insert places a w×h rectangle using rule, returning its position and
// true on success, or the zero rectangle and false if no free rectangle
// can hold it.
func (p *Packer) Insert(w, h int, rule Rule) (geometry.Rect, bool) {
	best := geometry.Rect{}
	bestPri, bestSec := 1<<62, 1<<62
	found := false

	for _, fr := range p.free {
		if fr.W < w || fr.H < h {
			continue
		}
		pri, sec := p.score(rule, fr, w, h)
		if pri < bestPri || (pri == bestPri && sec < bestSec) {
			bestPri, bestSec = pri, sec
			best = geometry.Rect{X: fr.X, Y: fr.Y, W: w, H: h}
			found = true
		}
	}

	if !found {
		return geometry.Rect{}, false
	}

	p.place(best)
	return best, true
}

func (p *Packer) place(used geometry.Rect) {
	kept := p.free[:0]
	for _, fr := range p.free {
		if fr.Overlaps(used) {
			kept = append(kept, fr.Split(used)...)
			continue
		}
		kept = append(kept, fr)
	}
	p.free = kept

	p.pruneFree()
	p.used = append(p.used, used)
}

// score returns the (primary, secondary) key for placing a w×h rectangle
// into free rectangle fr under rule. Lower is better in both slots, except
// for ContactPoint where the primary key is negated to turn a maximization
// into a minimization.
func (p *Packer) score(rule Rule, fr geometry.Rect, w, h int) (pri, sec int) {
	leftoverW := fr.W - w
	leftoverH := fr.H - h
	short, long := leftoverW, leftoverH
	if leftoverH < short {
		short = leftoverH
	}
	if leftoverW > long {
		long = leftoverW
	}

	switch rule {
	case BestAreaFit:
		return fr.W*fr.H - w*h, short
	case BestShortSideFit:
		return short, long
	case BestLongSideFit:
		return long, short
	case BottomLeft:
		return fr.Y + h, fr.X
	case ContactPoint:
		return -p.contactScore(fr.X, fr.Y, w, h), fr.W*fr.H - w*h
	default:
		return 1 << 62, 1 << 62
	}
}

// contactScore measures how much of a candidate placement's left and top
// edges touch the canvas's left/top edges or the right/bottom edges of
// previously placed rectangles.
func (p *Packer) contactScore(x, y, w, h int) int {
	score := 0
	if x == 0 {
		score += h
	}
	if y == 0 {
		score += w
	}

	for _, u := range p.used {
		if u.Right() == x && geometry.CommonInterval(u.Y, u.Bottom(), y, y+h) > 0 {
			score += min(h, u.H)
		}
		if u.Bottom() == y && geometry.CommonInterval(u.X, u.Right(), x, x+w) > 0 {
			score += min(w, u.W)
		}
	}

	return score
}

// pruneFree drops any free rectangle fully contained in another.
func (p *Packer) pruneFree() {
	for i := 0; i < len(p.free); i++ {
		a := p.free[i]
		for j := i + 1; j < len(p.free); j++ {
			b := p.free[j]
			if b.Contains(a) {
				p.free = removeAt(p.free, i)
				i--
				break
			}
			if a.Contains(b) {
				p.free = removeAt(p.free, j)
				j--
			}
		}
	}
}

func removeAt[T any](s []T, i int) []T {
	if i < 0 || i >= len(s) {
		return s
	}
	copy(s[i:], s[i+1:])
	return s[:len(s)-1]
}
