package imp

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 1, color.Gray{Y: 77})

	m := FromImage(img, AnyColor)
	assert.Equal(t, 2, m.Rows)
	assert.Equal(t, 3, m.Cols)
	assert.Equal(t, 1, m.Channels)
	assert.Equal(t, uint8(77), m.At(1, 2, 0))

	c := FromImage(img, Color)
	assert.Equal(t, 3, c.Channels)
	assert.Equal(t, []uint8{77, 77, 77}, c.Bytes()[len(c.Bytes())-3:])
}

func TestFromImageColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 255})

	m := FromImage(img, AnyColor)
	assert.Equal(t, 3, m.Channels)
	assert.Equal(t, []uint8{10, 20, 30, 40, 50, 60}, m.Bytes())

	img.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 128})
	m = FromImage(img, AnyColor)
	assert.Equal(t, 4, m.Channels)
	assert.Equal(t, []uint8{10, 20, 30, 255, 40, 50, 60, 128}, m.Bytes())

	m = FromImage(img, Color)
	assert.Equal(t, 3, m.Channels)
	assert.Equal(t, []uint8{10, 20, 30, 40, 50, 60}, m.Bytes())
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 7, 6))
	img.SetGray(6, 5, color.Gray{Y: 9})
	m := FromImage(img, AnyColor)
	assert.Equal(t, []uint8{0, 9}, m.Bytes())
}

func TestToImage(t *testing.T) {
	for _, c := range []int{1, 3, 4} {
		m := NewMat(2, 3, c)
		for i := range m.Bytes() {
			m.Bytes()[i] = uint8(i * 10)
		}
		if c == 4 {
			for i := 3; i < len(m.Bytes()); i += 4 {
				m.Bytes()[i] = 200
			}
		}
		img, err := ToImage(m)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
		assert.Equal(t, m.Bytes(), FromImage(img, AnyColor).Bytes(), "%d channel(s)", c)
	}

	_, err := ToImage(NewMat(1, 1, 2))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ToImage(NewFloatMat(1, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestByteFloatRoundTrip(t *testing.T) {
	m := NewMat(16, 16, 3)
	for i := range m.Bytes() {
		m.Bytes()[i] = uint8(i)
	}
	f, err := ToFloat(m)
	require.NoError(t, err)
	assert.Equal(t, F64, f.Depth())
	assert.Equal(t, 0.0, f.FloatAt(0, 0, 0))
	assert.InDelta(t, 1.0, f.Floats()[255], 1e-12)
	assert.Equal(t, m.Channels, f.Channels)

	b, err := ToByte(f)
	require.NoError(t, err)
	assert.Equal(t, m, b)
}

func TestToByteSaturates(t *testing.T) {
	f := NewFloatMat(1, 4, 1)
	copy(f.Floats(), []float64{-0.5, 0.5, 1.5, 0.2})
	b, err := ToByte(f)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 128, 255, 51}, b.Bytes())
}

func TestConversionDepthChecks(t *testing.T) {
	_, err := ToFloat(NewFloatMat(1, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ToByte(NewMat(1, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResize(t *testing.T) {
	for _, c := range []int{1, 3, 4} {
		m := NewMat(2, 2, c)
		for i := range m.Bytes() {
			m.Bytes()[i] = 90
		}
		r, err := Resize(m, 5, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, r.Rows)
		assert.Equal(t, 5, r.Cols)
		assert.Equal(t, c, r.Channels)
		for _, v := range r.Bytes() {
			assert.Equal(t, uint8(90), v)
		}
	}

	_, err := Resize(NewMat(2, 2, 1), 0, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
