package input

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"

	"github.com/ArnaudCalmettes/fsiv/imp"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxBytes is the largest download a Fetcher accepts by default.
	DefaultMaxBytes = 20 << 20
	// DefaultMaxPixels is the largest decoded image a Fetcher accepts by
	// default.
	DefaultMaxPixels = 40 << 20
)

// ErrTooLarge is returned when a remote image exceeds the size limit.
var ErrTooLarge = errors.New("image is too large")

// A Fetcher downloads and decodes remote images.
type Fetcher struct {
	Client    *http.Client
	MaxBytes  int64
	MaxPixels int64
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func (f *Fetcher) maxBytes() int64 {
	if f.MaxBytes > 0 {
		return f.MaxBytes
	}
	return DefaultMaxBytes
}

func (f *Fetcher) maxPixels() int64 {
	if f.MaxPixels > 0 {
		return f.MaxPixels
	}
	return DefaultMaxPixels
}

// Fetch downloads the image at url and decodes it.
func (f *Fetcher) Fetch(ctx context.Context, url string, mode imp.ReadMode) (*imp.Mat, error) {
	logrus.WithField("url", url).Debug("Downloading image")

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client().Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	limit := f.maxBytes()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("GET %s: %w (more than %d bytes)", url, ErrTooLarge, limit)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > f.maxPixels() {
		return nil, fmt.Errorf("%s: %w (%dx%d pixels)", url, ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, err := imp.ReadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return imp.FromImage(img, mode), nil
}
