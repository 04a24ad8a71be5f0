// Package source loads the picture an animation is rendered from, either
// from a filesystem or over http.
package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"rerewind/pkg/raster"
)

// DefaultMaxDim bounds the longer side of a loaded picture.
const DefaultMaxDim = 1000

var (
	ErrEmpty  = errors.New("empty source")
	ErrStatus = errors.New("unexpected status")
)

func NewLoader(fs afero.Fs, logger *zap.Logger, opts ...Option) *Loader {
	l := &Loader{
		fs:     fs,
		cli:    resty.New().SetDoNotParseResponse(true),
		log:    logger,
		maxDim: DefaultMaxDim,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

type Loader struct {
	fs       afero.Fs
	cli      *resty.Client
	log      *zap.Logger
	cache    *Cache
	maxDim   int
	progress bool
}

func remote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Load reads location, decodes it and fits it within the loader's maximum
// dimension.
func (l *Loader) Load(ctx context.Context, location string) (*raster.Buffer, error) {
	if location == "" {
		return nil, ErrEmpty
	}
	log := l.log.With(zap.String("location", location))

	if img, ok, err := l.cache.Load(location, l.maxDim); err != nil {
		log.With(zap.Error(err)).Info("source cache unreadable")
	} else if ok {
		log.Debug("source cache hit")
		return raster.FromImage(img), nil
	}

	var (
		bs  []byte
		err error
	)
	if remote(location) {
		bs, err = l.fetch(ctx, location)
	} else {
		bs, err = afero.ReadFile(l.fs, location)
	}
	if err != nil {
		return nil, fmt.Errorf("read source failed: %w", err)
	}

	img, err := Decode(bytes.NewReader(bs), l.maxDim)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Save(location, l.maxDim, img); err != nil {
		log.With(zap.Error(err)).Info("source cache write failed")
	}

	b := img.Bounds()
	log.With(zap.Int("width", b.Dx()), zap.Int("height", b.Dy())).Debug("source loaded")
	return raster.FromImage(img), nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := l.cli.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Wrapf(ErrStatus, "%s: %d", url, resp.StatusCode())
	}

	var buf bytes.Buffer
	w := io.Writer(&buf)
	if l.progress {
		bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", url))
		w = io.MultiWriter(&buf, bar)
	}
	if _, err := io.Copy(w, resp.RawBody()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode reads any registered image format and shrinks it so neither side
// exceeds maxDim. Pictures already small enough keep their size.
func Decode(r io.Reader, maxDim int) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode source failed: %w", err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}
	if maxDim > 0 && (b.Dx() > maxDim || b.Dy() > maxDim) {
		return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos), nil
	}
	return img, nil
}

// Load is a one-off Loader without logging or cache.
func Load(ctx context.Context, fs afero.Fs, location string, maxDim int) (*raster.Buffer, error) {
	return NewLoader(fs, zap.NewNop(), WithMaxDim(maxDim)).Load(ctx, location)
}
