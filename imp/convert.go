package imp

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/floats"
)

// ReadMode tells how decoded images are mapped to channels.
type ReadMode int

const (
	// AnyColor keeps grayscale images on 1 channel, opaque images on 3
	// channels (R,G,B) and everything else on 4 channels (R,G,B,A).
	AnyColor ReadMode = iota
	// Color always produces 3 channels (R,G,B). Alpha is dropped.
	Color
)

// ToGray converts any image in a grayscale picture of the same size,
// anchored at the origin.
func ToGray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	if dst, ok := src.(*image.Gray); ok && bounds.Min == (image.Point{}) {
		return dst
	}

	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.GrayModel.Convert(src.At(x, y)).(color.Gray))
		}
	}
	return dst
}

func isGray(img image.Image) bool {
	m := img.ColorModel()
	return m == color.GrayModel || m == color.Gray16Model
}

// FromImage copies a decoded image into a U8 Mat.
func FromImage(img image.Image, mode ReadMode) *Mat {
	if isGray(img) {
		g := ToGray(img)
		m := NewMat(g.Rect.Dy(), g.Rect.Dx(), 1)
		for y := 0; y < m.Rows; y++ {
			copy(m.bytes[y*m.Cols:(y+1)*m.Cols], g.Pix[y*g.Stride:y*g.Stride+m.Cols])
		}
		if mode == Color {
			return grayToRGB(m)
		}
		return m
	}

	src := imaging.Clone(img)
	channels := 4
	if mode == Color || src.Opaque() {
		channels = 3
	}
	return fromNRGBA(src, channels)
}

// fromNRGBA keeps the first channels samples of every pixel.
func fromNRGBA(src *image.NRGBA, channels int) *Mat {
	m := NewMat(src.Rect.Dy(), src.Rect.Dx(), channels)
	for y := 0; y < m.Rows; y++ {
		line := src.Pix[y*src.Stride : y*src.Stride+m.Cols*4]
		for x := 0; x < m.Cols; x++ {
			copy(m.bytes[(y*m.Cols+x)*channels:(y*m.Cols+x+1)*channels], line[x*4:x*4+channels])
		}
	}
	return m
}

func grayToRGB(g *Mat) *Mat {
	m := NewMat(g.Rows, g.Cols, 3)
	for i, v := range g.bytes {
		m.bytes[3*i], m.bytes[3*i+1], m.bytes[3*i+2] = v, v, v
	}
	return m
}

// ToImage turns a U8 Mat back into an image: 1 channel gives an
// *image.Gray, 3 or 4 channels give an *image.NRGBA.
func ToImage(m *Mat) (image.Image, error) {
	if m.depth != U8 {
		return nil, fmt.Errorf("%w: can't build an image from %v samples", ErrInvalidInput, m.depth)
	}
	rect := image.Rect(0, 0, m.Cols, m.Rows)
	switch m.Channels {
	case 1:
		dst := image.NewGray(rect)
		copy(dst.Pix, m.bytes)
		return dst, nil
	case 3, 4:
		dst := image.NewNRGBA(rect)
		for i := 0; i < m.Rows*m.Cols; i++ {
			px := m.bytes[i*m.Channels : (i+1)*m.Channels]
			dst.Pix[4*i], dst.Pix[4*i+1], dst.Pix[4*i+2] = px[0], px[1], px[2]
			dst.Pix[4*i+3] = 255
			if m.Channels == 4 {
				dst.Pix[4*i+3] = px[3]
			}
		}
		return dst, nil
	}
	return nil, fmt.Errorf("%w: can't build an image from %d channels", ErrInvalidInput, m.Channels)
}

// ToFloat converts a U8 Mat to F64, mapping [0, 255] onto [0, 1].
func ToFloat(m *Mat) (*Mat, error) {
	if m.depth != U8 {
		return nil, fmt.Errorf("%w: expected %v samples, got %v", ErrInvalidInput, U8, m.depth)
	}
	out := NewFloatMat(m.Rows, m.Cols, m.Channels)
	for i, v := range m.bytes {
		out.floats[i] = float64(v)
	}
	floats.Scale(1.0/255.0, out.floats)
	return out, nil
}

// ToByte converts an F64 Mat to U8, mapping [0, 1] onto [0, 255].
// Values are rounded and saturated.
func ToByte(m *Mat) (*Mat, error) {
	if m.depth != F64 {
		return nil, fmt.Errorf("%w: expected %v samples, got %v", ErrInvalidInput, F64, m.depth)
	}
	scaled := floats.ScaleTo(make([]float64, len(m.floats)), 255, m.floats)
	out := NewMat(m.Rows, m.Cols, m.Channels)
	for i, v := range scaled {
		out.bytes[i] = saturate(v)
	}
	return out, nil
}

func saturate(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}

// Resize scales a U8 Mat to the given size with bilinear interpolation.
func Resize(m *Mat, cols, rows int) (*Mat, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: bad target size %dx%d", ErrInvalidInput, cols, rows)
	}
	if m.Cols == cols && m.Rows == rows {
		return m.Clone(), nil
	}
	img, err := ToImage(m)
	if err != nil {
		return nil, err
	}
	// Gray sources come back with R=G=B, so the first channel is enough.
	return fromNRGBA(imaging.Resize(img, cols, rows, imaging.Linear), m.Channels), nil
}
