// Package input turns image sources into imp.Mat buffers.
package input

import (
	"github.com/ArnaudCalmettes/fsiv/imp"
	"github.com/sirupsen/logrus"
)

// Open decodes a local image file.
func Open(path string, mode imp.ReadMode) (*imp.Mat, error) {
	m, err := imp.ReadMat(path, mode)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"source":   path,
		"cols":     m.Cols,
		"rows":     m.Rows,
		"channels": m.Channels,
	}).Debug("Decoded image")
	return m, nil
}
