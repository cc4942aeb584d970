package input

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ArnaudCalmettes/fsiv/imp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(1, 1, color.Gray{Y: 200})
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, img))
	return b.Bytes()
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	m := imp.NewMat(2, 3, 1)
	m.Set(1, 1, 0, 200)
	require.NoError(t, imp.SaveMat(path, m))

	got, err := Open(path, imp.AnyColor)
	require.NoError(t, err)
	assert.Equal(t, m.Bytes(), got.Bytes())

	_, err = Open(filepath.Join(t.TempDir(), "nope.png"), imp.AnyColor)
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	data := testPNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/img.png":
			w.Write(data)
		case "/junk":
			w.Write([]byte("definitely not a picture"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := &Fetcher{Client: srv.Client()}

	m, err := f.Fetch(context.Background(), srv.URL+"/img.png", imp.AnyColor)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Channels)
	assert.Equal(t, uint8(200), m.At(1, 1, 0))

	m, err = f.Fetch(context.Background(), srv.URL+"/img.png", imp.Color)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Channels)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png", imp.AnyColor)
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), srv.URL+"/junk", imp.AnyColor)
	assert.Error(t, err)

	small := &Fetcher{Client: srv.Client(), MaxBytes: 10}
	_, err = small.Fetch(context.Background(), srv.URL+"/img.png", imp.AnyColor)
	assert.ErrorIs(t, err, ErrTooLarge)

	// 3x2 pixels: the download is small but the decoded image isn't.
	tiny := &Fetcher{Client: srv.Client(), MaxPixels: 5}
	_, err = tiny.Fetch(context.Background(), srv.URL+"/img.png", imp.AnyColor)
	assert.ErrorIs(t, err, ErrTooLarge)

	exact := &Fetcher{Client: srv.Client(), MaxPixels: 6}
	_, err = exact.Fetch(context.Background(), srv.URL+"/img.png", imp.AnyColor)
	assert.NoError(t, err)
}

func TestFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Fetcher{}).Fetch(ctx, srv.URL, imp.AnyColor)
	assert.ErrorIs(t, err, context.Canceled)
}
