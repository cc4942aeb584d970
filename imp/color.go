package imp

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBToHSV converts a 3-channel F64 Mat from RGB to HSV. H is in [0, 360),
// S and V in [0, 1].
func RGBToHSV(m *Mat) (*Mat, error) {
	if err := checkFloatRGB(m); err != nil {
		return nil, err
	}
	out := NewFloatMat(m.Rows, m.Cols, 3)
	for i := 0; i < len(m.floats); i += 3 {
		c := colorful.Color{R: m.floats[i], G: m.floats[i+1], B: m.floats[i+2]}
		out.floats[i], out.floats[i+1], out.floats[i+2] = c.Hsv()
	}
	return out, nil
}

// HSVToRGB is the inverse of RGBToHSV. Values are not clamped.
func HSVToRGB(m *Mat) (*Mat, error) {
	if err := checkFloatRGB(m); err != nil {
		return nil, err
	}
	out := NewFloatMat(m.Rows, m.Cols, 3)
	for i := 0; i < len(m.floats); i += 3 {
		c := colorful.Hsv(m.floats[i], m.floats[i+1], m.floats[i+2])
		out.floats[i], out.floats[i+1], out.floats[i+2] = c.R, c.G, c.B
	}
	return out, nil
}

func checkFloatRGB(m *Mat) error {
	if m.depth != F64 || m.Channels != 3 {
		return fmt.Errorf("%w: expected a 3 channel %v mat, got %v", ErrInvalidInput, F64, m)
	}
	return nil
}

// Hue returns the hue plane of a 3-channel U8 RGB Mat, in 8-bit hue units:
// degrees halved, so [0, 180).
func Hue(m *Mat) (*Mat, error) {
	if m.depth != U8 || m.Channels != 3 {
		return nil, fmt.Errorf("%w: expected a 3 channel %v mat, got %v", ErrInvalidInput, U8, m)
	}
	out := NewMat(m.Rows, m.Cols, 1)
	for i := range out.bytes {
		px := m.bytes[3*i : 3*i+3]
		h, _, _ := colorful.Color{
			R: float64(px[0]) / 255,
			G: float64(px[1]) / 255,
			B: float64(px[2]) / 255,
		}.Hsv()
		h8 := math.Round(h / 2)
		if h8 >= 180 {
			h8 -= 180
		}
		out.bytes[i] = uint8(h8)
	}
	return out, nil
}
