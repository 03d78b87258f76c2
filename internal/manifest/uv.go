package manifest

// PixelUV is the intermediate per-image sub-rectangle in canvas pixels.
type PixelUV struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NormalizedUV is the emitted per-image UV record: normalized [0,1)
// coordinates with a bottom-left origin. Width/Height are pixel
// dimensions of the source image itself, not the padded reservation.
type NormalizedUV struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	RectX       float64 `json:"rect_x"`
	RectY       float64 `json:"rect_y"`
	RectWidth   float64 `json:"rect_width"`
	RectHeight  float64 `json:"rect_height"`
}

// Normalize converts a pixel UV within a canvasW×canvasH canvas to its
// normalized, bottom-left-origin form.
func Normalize(px PixelUV, canvasW, canvasH int) NormalizedUV {
	return NormalizedUV{
		Width:      px.Width,
		Height:     px.Height,
		RectX:      float64(px.X) / float64(canvasW),
		RectY:      1.0 - float64(px.Y+px.Height)/float64(canvasH),
		RectWidth:  float64(px.Width) / float64(canvasW),
		RectHeight: float64(px.Height) / float64(canvasH),
	}
}

// Denormalize is the inverse of Normalize, rounding to the nearest pixel.
// Round-tripping a value through Normalize then Denormalize reproduces the
// original pixel rect within ±1px due to integer rounding.
func Denormalize(n NormalizedUV, canvasW, canvasH int) PixelUV {
	x := roundInt(n.RectX * float64(canvasW))
	w := roundInt(n.RectWidth * float64(canvasW))
	h := roundInt(n.RectHeight * float64(canvasH))
	y := roundInt((1.0-n.RectY)*float64(canvasH)) - h

	return PixelUV{X: x, Y: y, Width: w, Height: h}
}

func roundInt(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
