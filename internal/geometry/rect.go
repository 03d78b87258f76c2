// Package geometry provides axis-aligned integer rectangles and the
// predicates the packer needs: containment, overlap, and splitting.
package geometry

// Rect is an axis-aligned rectangle with integer coordinates and a
// top-left origin.
type Rect struct {
	X, Y, W, H int
}

// Right returns the exclusive right edge, X+W.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge, Y+H.
func (r Rect) Bottom() int { return r.Y + r.H }

// Area returns W*H.
func (r Rect) Area() int { return r.W * r.H }

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Split decomposes r into up to four residual rectangles representing what
// remains of r once used is subtracted, using used's intersection with r's
// extent. It returns no rectangle on a side where used consumes r fully on
// that side. Split assumes used overlaps r; callers must check Overlaps
// first.
func (r Rect) Split(used Rect) []Rect {
	var out []Rect

	if used.X < r.Right() && used.Right() > r.X {
		if used.Y > r.Y && used.Y < r.Bottom() {
			out = append(out, Rect{X: r.X, Y: r.Y, W: r.W, H: used.Y - r.Y})
		}
		if used.Bottom() < r.Bottom() {
			out = append(out, Rect{X: r.X, Y: used.Bottom(), W: r.W, H: r.Bottom() - used.Bottom()})
		}
	}

	if used.Y < r.Bottom() && used.Bottom() > r.Y {
		if used.X > r.X && used.X < r.Right() {
			out = append(out, Rect{X: r.X, Y: r.Y, W: used.X - r.X, H: r.H})
		}
		if used.Right() < r.Right() {
			out = append(out, Rect{X: used.Right(), Y: r.Y, W: r.Right() - used.Right(), H: r.H})
		}
	}

	return out
}

// CommonInterval returns the length of overlap between [a0,a1) and
// [b0,b1), or 0 if they don't overlap.
func CommonInterval(a0, a1, b0, b1 int) int {
	if a1 <= b0 || b1 <= a0 {
		return 0
	}

	end := a1
	if b1 < end {
		end = b1
	}
	start := a0
	if b0 > start {
		start = b0
	}

	return end - start
}
