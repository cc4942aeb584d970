package imp

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Extrema holds, for every channel of a buffer, its minimum and maximum
// values along with where they were found. Locations use X for the column
// and Y for the row.
type Extrema struct {
	MinValues []uint8
	MaxValues []uint8
	MinLocs   []image.Point
	MaxLocs   []image.Point
}

func newExtrema(channels int) *Extrema {
	return &Extrema{
		MinValues: make([]uint8, channels),
		MaxValues: make([]uint8, channels),
		MinLocs:   make([]image.Point, channels),
		MaxLocs:   make([]image.Point, channels),
	}
}

// Channels returns the number of channels covered by e.
func (e *Extrema) Channels() int {
	return len(e.MinValues)
}

func (e *Extrema) String() string {
	var b strings.Builder
	for i := range e.MinValues {
		fmt.Fprintf(&b, "channel %d: min %d at (%d,%d), max %d at (%d,%d)\n",
			i,
			e.MinValues[i], e.MinLocs[i].X, e.MinLocs[i].Y,
			e.MaxValues[i], e.MaxLocs[i].X, e.MaxLocs[i].Y,
		)
	}
	return b.String()
}

// CheckScannable returns an error wrapping ErrInvalidInput unless m is a
// non-empty U8 buffer whose samples match its dimensions.
func CheckScannable(m *Mat) error {
	if m == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidInput)
	}
	if m.depth != U8 {
		return fmt.Errorf("%w: expected %v samples, got %v", ErrInvalidInput, U8, m.depth)
	}
	if m.Rows <= 0 || m.Cols <= 0 {
		return fmt.Errorf("%w: empty %dx%d buffer", ErrInvalidInput, m.Cols, m.Rows)
	}
	if m.Channels < 1 {
		return fmt.Errorf("%w: buffer has %d channels", ErrInvalidInput, m.Channels)
	}
	if len(m.bytes) != m.Rows*m.Cols*m.Channels {
		return fmt.Errorf("%w: %d samples for a %dx%dx%d buffer",
			ErrInvalidInput, len(m.bytes), m.Cols, m.Rows, m.Channels)
	}
	return nil
}

// FindExtrema scans m in row-major order and reports, per channel, the
// minimum and maximum values and the first pixel holding each of them.
func FindExtrema(m *Mat) (*Extrema, error) {
	if err := CheckScannable(m); err != nil {
		return nil, err
	}
	e := newExtrema(m.Channels)
	for ch := 0; ch < m.Channels; ch++ {
		scanChannel(m, ch, e)
	}
	return e, nil
}

// FindExtremaConcurrent gives the same results as FindExtrema, scanning
// each channel in its own goroutine.
func FindExtremaConcurrent(m *Mat) (*Extrema, error) {
	if err := CheckScannable(m); err != nil {
		return nil, err
	}
	e := newExtrema(m.Channels)
	var g errgroup.Group
	for ch := 0; ch < m.Channels; ch++ {
		g.Go(func() error {
			scanChannel(m, ch, e)
			return nil
		})
	}
	return e, g.Wait()
}

// scanChannel only writes slot ch of e.
func scanChannel(m *Mat, ch int, e *Extrema) {
	minV := m.At(0, 0, ch)
	maxV := minV
	var minLoc, maxLoc image.Point

	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			v := m.At(row, col, ch)
			// Strict comparisons: the first pixel holding an extremum wins.
			if v < minV {
				minV = v
				minLoc = image.Point{X: col, Y: row}
			} else if v > maxV {
				maxV = v
				maxLoc = image.Point{X: col, Y: row}
			}
		}
	}

	e.MinValues[ch], e.MaxValues[ch] = minV, maxV
	e.MinLocs[ch], e.MaxLocs[ch] = minLoc, maxLoc
}
