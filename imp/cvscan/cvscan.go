// Package cvscan finds per-channel extrema with OpenCV.
//
// Values always match imp.FindExtrema. Locations point to a pixel holding
// the extreme value, but not necessarily the first one in row-major order.
package cvscan

import (
	"fmt"
	"image"

	"github.com/ArnaudCalmettes/fsiv/imp"
	"gocv.io/x/gocv"
)

var matTypes = map[int]gocv.MatType{
	1: gocv.MatTypeCV8UC1,
	2: gocv.MatTypeCV8UC2,
	3: gocv.MatTypeCV8UC3,
	4: gocv.MatTypeCV8UC4,
}

// ToMat copies a U8 imp.Mat into an OpenCV Mat. The caller must Close it.
func ToMat(m *imp.Mat) (gocv.Mat, error) {
	mt, ok := matTypes[m.Channels]
	if !ok {
		return gocv.Mat{}, fmt.Errorf("%w: %d channels", imp.ErrInvalidInput, m.Channels)
	}
	data := append([]byte(nil), m.Bytes()...)
	return gocv.NewMatFromBytes(m.Rows, m.Cols, mt, data)
}

// ApproximateExtrema returns the same values as imp.FindExtrema using one
// MinMaxLoc call per channel.
func ApproximateExtrema(m *imp.Mat) (*imp.Extrema, error) {
	if err := imp.CheckScannable(m); err != nil {
		return nil, err
	}
	mat, err := ToMat(m)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	planes := gocv.Split(mat)
	defer func() {
		for _, p := range planes {
			p.Close()
		}
	}()

	e := &imp.Extrema{
		MinValues: make([]uint8, len(planes)),
		MaxValues: make([]uint8, len(planes)),
		MinLocs:   make([]image.Point, len(planes)),
		MaxLocs:   make([]image.Point, len(planes)),
	}
	for i, p := range planes {
		minVal, maxVal, minLoc, maxLoc := gocv.MinMaxLoc(p)
		e.MinValues[i], e.MaxValues[i] = uint8(minVal), uint8(maxVal)
		e.MinLocs[i], e.MaxLocs[i] = minLoc, maxLoc
	}
	return e, nil
}
