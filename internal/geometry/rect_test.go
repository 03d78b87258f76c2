package geometry

import "testing"

func TestOverlaps(t *testing.T) {
	t.Parallel()

	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"disjoint-right", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"disjoint-below", Rect{X: 0, Y: 10, W: 5, H: 5}, false},
		{"overlap", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"contained", Rect{X: 1, Y: 1, W: 2, H: 2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := a.Overlaps(tc.b); got != tc.want {
				t.Fatalf("Overlaps(%+v) = %v, want %v", tc.b, got, tc.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	outer := Rect{X: 0, Y: 0, W: 10, H: 10}
	inner := Rect{X: 2, Y: 2, W: 4, H: 4}
	if !outer.Contains(inner) {
		t.Fatal("expected outer to contain inner")
	}
	if outer.Contains(Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Fatal("expected outer not to contain overflowing rect")
	}
}

func TestSplitCoversResidualArea(t *testing.T) {
	t.Parallel()

	free := Rect{X: 0, Y: 0, W: 10, H: 10}
	used := Rect{X: 2, Y: 2, W: 4, H: 4}

	residuals := free.Split(used)
	if len(residuals) != 4 {
		t.Fatalf("expected 4 residual strips for a centered cut, got %d: %+v", len(residuals), residuals)
	}

	total := 0
	for _, r := range residuals {
		total += r.Area()
	}
	// Strips overlap at the corners by construction (top/bottom span full
	// width, left/right span full height), so the sum exceeds the true
	// residual area; just check each strip is within free's bounds.
	for _, r := range residuals {
		if !free.Contains(r) {
			t.Fatalf("residual %+v not contained in free rect %+v", r, free)
		}
	}
	if total == 0 {
		t.Fatal("expected nonzero residual area")
	}
}

func TestCommonInterval(t *testing.T) {
	t.Parallel()

	if got := CommonInterval(0, 10, 5, 15); got != 5 {
		t.Fatalf("CommonInterval = %d, want 5", got)
	}
	if got := CommonInterval(0, 5, 5, 10); got != 0 {
		t.Fatalf("CommonInterval = %d, want 0 for touching intervals", got)
	}
}
