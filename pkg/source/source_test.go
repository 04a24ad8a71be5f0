package source

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func encoded(t *testing.T, w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "pics/a.png", encoded(t, 40, 30), 0644))

	l := NewLoader(fs, zaptest.NewLogger(t))
	b, err := l.Load(context.Background(), "pics/a.png")
	require.NoError(t, err)
	assert.Equal(t, 40, b.Width())
	assert.Equal(t, 30, b.Height())
	assert.Equal(t, color.NRGBA{R: 3, G: 2, B: 90, A: 255}, b.Get(3, 2))
}

func TestLoadFitsLargePictures(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "big.png", encoded(t, 200, 100), 0644))

	b, err := NewLoader(fs, zaptest.NewLogger(t), WithMaxDim(50)).Load(context.Background(), "big.png")
	require.NoError(t, err)
	assert.Equal(t, 50, b.Width())
	assert.Equal(t, 25, b.Height())

	b, err = NewLoader(fs, zaptest.NewLogger(t), WithMaxDim(0)).Load(context.Background(), "big.png")
	require.NoError(t, err)
	assert.Equal(t, 200, b.Width())
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "notes.txt", []byte("hello"), 0644))
	l := NewLoader(fs, zaptest.NewLogger(t))

	_, err := l.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = l.Load(context.Background(), "missing.png")
	assert.Error(t, err)
	_, err = l.Load(context.Background(), "notes.txt")
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestLoadURL(t *testing.T) {
	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, image.NewGray(image.Rect(0, 0, 12, 8)), nil))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pic.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(jpg.Bytes())
	}))
	defer srv.Close()

	l := NewLoader(afero.NewMemMapFs(), zaptest.NewLogger(t))
	b, err := l.Load(context.Background(), srv.URL+"/pic.jpg")
	require.NoError(t, err)
	assert.Equal(t, 12, b.Width())
	assert.Equal(t, 8, b.Height())

	_, err = l.Load(context.Background(), srv.URL+"/gone.jpg")
	assert.ErrorIs(t, err, ErrStatus)
}

func TestLoadUsesCache(t *testing.T) {
	body := encoded(t, 20, 10)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	cache := afero.NewMemMapFs()
	l := NewLoader(afero.NewMemMapFs(), zaptest.NewLogger(t), WithCache(cache), WithMaxDim(10))

	first, err := l.Load(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	second, err := l.Load(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)

	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, first.Pix, second.Pix)
	assert.Equal(t, 10, second.Width())

	other := NewLoader(afero.NewMemMapFs(), zaptest.NewLogger(t), WithCache(cache), WithMaxDim(20))
	_, err = other.Load(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.EqualValues(t, 2, hits.Load())
}

func TestLoadOneOff(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.png", encoded(t, 30, 60), 0644))

	b, err := Load(context.Background(), fs, "a.png", 20)
	require.NoError(t, err)
	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 20, b.Height())
}
