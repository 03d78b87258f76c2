package search

import (
	"image"
	"testing"

	"github.com/larkspur/atlaspacker/internal/imagesrc"
)

func solidSources(sizes [][2]int) []imagesrc.SourceImage {
	out := make([]imagesrc.SourceImage, len(sizes))
	for i, s := range sizes {
		out[i] = imagesrc.SourceImage{
			Name:   namesFor(i),
			Img:    image.NewRGBA(image.Rect(0, 0, s[0], s[1])),
			Width:  s[0],
			Height: s[1],
		}
	}
	return out
}

func namesFor(i int) string {
	return string(rune('a' + i))
}

func TestFindBestSingleAtlasPlacesAllWhenRoomy(t *testing.T) {
	t.Parallel()

	images := solidSources([][2]int{{100, 100}, {50, 200}, {300, 50}})
	res, ok := FindBestSingleAtlas(images, 2)
	if !ok {
		t.Fatal("expected a successful configuration")
	}
	if res.Score.Placed != len(images) {
		t.Fatalf("placed = %d, want %d", res.Score.Placed, len(images))
	}

	for i := 0; i < len(res.Placements); i++ {
		for j := i + 1; j < len(res.Placements); j++ {
			if res.Placements[i].Rect.Overlaps(res.Placements[j].Rect) {
				t.Fatalf("placements %q and %q overlap", res.Placements[i].Name, res.Placements[j].Name)
			}
		}
	}
}

func TestFindBestSingleAtlasUnpackableWhenOversize(t *testing.T) {
	t.Parallel()

	images := solidSources([][2]int{{3000, 3000}})
	_, ok := FindBestSingleAtlas(images, 2)
	if ok {
		t.Fatal("expected Unpackable (ok=false) for an oversize image")
	}
}

func TestFindBestSingleAtlasEmptyInput(t *testing.T) {
	t.Parallel()

	_, ok := FindBestSingleAtlas(nil, 2)
	if ok {
		t.Fatal("expected ok=false for empty input")
	}
}

func TestScoreBetterIsLexicographic(t *testing.T) {
	t.Parallel()

	more := Score{Placed: 3, Area: 1000, Efficiency: 10}
	fewer := Score{Placed: 2, Area: 10, Efficiency: 99}
	if !more.Better(fewer) {
		t.Fatal("more images placed should win regardless of area/efficiency")
	}

	smallerArea := Score{Placed: 3, Area: 500, Efficiency: 10}
	if !smallerArea.Better(more) {
		t.Fatal("equal placed count should prefer smaller area")
	}

	betterEff := Score{Placed: 3, Area: 500, Efficiency: 50}
	if !betterEff.Better(smallerArea) {
		t.Fatal("equal placed and area should prefer higher efficiency")
	}
}

func TestBlockShuffleIsDeterministic(t *testing.T) {
	t.Parallel()

	images := solidSources([][2]int{{10, 10}, {20, 20}, {30, 10}, {15, 15}, {5, 5}})
	items := toItems(images)

	a := blockShuffle(items, 42)
	b := blockShuffle(items, 42)
	for i := range a {
		if a[i].Name != b[i].Name {
			t.Fatalf("blockShuffle with same seed produced different order at %d: %v vs %v", i, a, b)
		}
	}
}
