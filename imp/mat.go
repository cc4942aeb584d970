package imp

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned (wrapped) whenever an operation is given a
// buffer or a parameter it can't work with.
var ErrInvalidInput = errors.New("invalid input")

// Depth is the sample type of a Mat.
type Depth int

const (
	// U8 samples are bytes in [0, 255].
	U8 Depth = iota
	// F64 samples are floats, nominally in [0, 1].
	F64
)

func (d Depth) String() string {
	switch d {
	case U8:
		return "8U"
	case F64:
		return "64F"
	}
	return fmt.Sprintf("Depth(%d)", int(d))
}

// A Mat is a dense 2D grid of multi-channel pixels.
// Samples are stored row-major with interleaved channels, so the sample of
// channel c at (row, col) lives at index (row*Cols+col)*Channels+c.
type Mat struct {
	Rows     int
	Cols     int
	Channels int

	depth  Depth
	bytes  []uint8
	floats []float64
}

// NewMat allocates a zeroed U8 Mat.
func NewMat(rows, cols, channels int) *Mat {
	checkDims(rows, cols, channels)
	return &Mat{
		Rows:     rows,
		Cols:     cols,
		Channels: channels,
		depth:    U8,
		bytes:    make([]uint8, rows*cols*channels),
	}
}

// NewFloatMat allocates a zeroed F64 Mat.
func NewFloatMat(rows, cols, channels int) *Mat {
	checkDims(rows, cols, channels)
	return &Mat{
		Rows:     rows,
		Cols:     cols,
		Channels: channels,
		depth:    F64,
		floats:   make([]float64, rows*cols*channels),
	}
}

// NewMatFromBytes wraps existing row-major interleaved samples. The slice
// is not copied.
func NewMatFromBytes(rows, cols, channels int, data []uint8) (*Mat, error) {
	if rows < 0 || cols < 0 || channels < 1 {
		return nil, fmt.Errorf("%w: bad dimensions %dx%dx%d", ErrInvalidInput, rows, cols, channels)
	}
	if len(data) != rows*cols*channels {
		return nil, fmt.Errorf("%w: %d samples for a %dx%dx%d buffer", ErrInvalidInput, len(data), rows, cols, channels)
	}
	return &Mat{Rows: rows, Cols: cols, Channels: channels, depth: U8, bytes: data}, nil
}

func checkDims(rows, cols, channels int) {
	if rows < 0 || cols < 0 || channels < 1 {
		panic(fmt.Sprintf("imp: bad dimensions %dx%dx%d", rows, cols, channels))
	}
}

// Depth returns the sample type of m.
func (m *Mat) Depth() Depth { return m.depth }

// Empty reports whether m holds no pixel at all.
func (m *Mat) Empty() bool { return m.Rows == 0 || m.Cols == 0 }

// SameSize reports whether m and o have the same number of rows and columns.
func (m *Mat) SameSize(o *Mat) bool { return m.Rows == o.Rows && m.Cols == o.Cols }

// Bytes returns the underlying U8 samples (nil for F64 mats).
func (m *Mat) Bytes() []uint8 { return m.bytes }

// Floats returns the underlying F64 samples (nil for U8 mats).
func (m *Mat) Floats() []float64 { return m.floats }

func (m *Mat) index(row, col, ch int) int {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols || ch < 0 || ch >= m.Channels {
		panic(fmt.Sprintf("imp: index (%d,%d,%d) out of range for %dx%dx%d mat",
			row, col, ch, m.Rows, m.Cols, m.Channels))
	}
	return (row*m.Cols+col)*m.Channels + ch
}

// At returns the U8 sample of channel ch at (row, col).
func (m *Mat) At(row, col, ch int) uint8 {
	if m.depth != U8 {
		panic("imp: At called on " + m.depth.String() + " mat")
	}
	return m.bytes[m.index(row, col, ch)]
}

// Set sets the U8 sample of channel ch at (row, col).
func (m *Mat) Set(row, col, ch int, v uint8) {
	if m.depth != U8 {
		panic("imp: Set called on " + m.depth.String() + " mat")
	}
	m.bytes[m.index(row, col, ch)] = v
}

// FloatAt returns the F64 sample of channel ch at (row, col).
func (m *Mat) FloatAt(row, col, ch int) float64 {
	if m.depth != F64 {
		panic("imp: FloatAt called on " + m.depth.String() + " mat")
	}
	return m.floats[m.index(row, col, ch)]
}

// SetFloat sets the F64 sample of channel ch at (row, col).
func (m *Mat) SetFloat(row, col, ch int, v float64) {
	if m.depth != F64 {
		panic("imp: SetFloat called on " + m.depth.String() + " mat")
	}
	m.floats[m.index(row, col, ch)] = v
}

// Clone returns a deep copy of m.
func (m *Mat) Clone() *Mat {
	c := *m
	if m.bytes != nil {
		c.bytes = append([]uint8(nil), m.bytes...)
	}
	if m.floats != nil {
		c.floats = append([]float64(nil), m.floats...)
	}
	return &c
}

func (m *Mat) String() string {
	return fmt.Sprintf("Mat{%dx%d, %d channel(s), %v}", m.Cols, m.Rows, m.Channels, m.depth)
}

// Split returns one single-channel mat per channel of m.
func Split(m *Mat) []*Mat {
	planes := make([]*Mat, m.Channels)
	n := m.Rows * m.Cols
	for c := range planes {
		if m.depth == U8 {
			p := NewMat(m.Rows, m.Cols, 1)
			for i := 0; i < n; i++ {
				p.bytes[i] = m.bytes[i*m.Channels+c]
			}
			planes[c] = p
		} else {
			p := NewFloatMat(m.Rows, m.Cols, 1)
			for i := 0; i < n; i++ {
				p.floats[i] = m.floats[i*m.Channels+c]
			}
			planes[c] = p
		}
	}
	return planes
}

// Merge interleaves single-channel planes into one multi-channel mat.
// Planes must share size and depth.
func Merge(planes []*Mat) (*Mat, error) {
	if len(planes) == 0 {
		return nil, fmt.Errorf("%w: nothing to merge", ErrInvalidInput)
	}
	first := planes[0]
	for i, p := range planes {
		if p.Channels != 1 {
			return nil, fmt.Errorf("%w: plane %d has %d channels", ErrInvalidInput, i, p.Channels)
		}
		if !p.SameSize(first) || p.depth != first.depth {
			return nil, fmt.Errorf("%w: plane %d doesn't match plane 0", ErrInvalidInput, i)
		}
	}

	n := first.Rows * first.Cols
	k := len(planes)
	var out *Mat
	if first.depth == U8 {
		out = NewMat(first.Rows, first.Cols, k)
		for c, p := range planes {
			for i := 0; i < n; i++ {
				out.bytes[i*k+c] = p.bytes[i]
			}
		}
	} else {
		out = NewFloatMat(first.Rows, first.Cols, k)
		for c, p := range planes {
			for i := 0; i < n; i++ {
				out.floats[i*k+c] = p.floats[i]
			}
		}
	}
	return out, nil
}
