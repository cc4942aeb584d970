package imp

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"

	// Registers the webp decoder; imaging already pulls in bmp and tiff.
	_ "golang.org/x/image/webp"
)

// ReadFile reads an image from a file.
func ReadFile(filename string) (image.Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return img, nil
}

// ReadBytes reads an image from raw bytes.
func ReadBytes(data []byte) (image.Image, error) {
	return Read(bytes.NewReader(data))
}

// Read reads an image from a io.Reader. EXIF orientation is applied.
func Read(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

// ReadMat reads an image file straight into a Mat.
func ReadMat(filename string, mode ReadMode) (*Mat, error) {
	img, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return FromImage(img, mode), nil
}

// Save creates a file and writes an image to it. Image format is decided based
// upon its extension.
func Save(filename string, img image.Image) error {
	return imaging.Save(img, filename, imaging.JPEGQuality(100))
}

// SaveMat writes a U8 Mat to an image file.
func SaveMat(filename string, m *Mat) error {
	img, err := ToImage(m)
	if err != nil {
		return err
	}
	return Save(filename, img)
}
