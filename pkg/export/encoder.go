package export

import (
	"image"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

var (
	ErrUnknownFormat = errors.New("unknown format")
	ErrFrameSize     = errors.New("frame size mismatch")
)

// Encoder turns captured frames into a file body.
type Encoder interface {
	Encode(w io.Writer, frames []Snapshot, delay time.Duration, width, height int) error
	Ext() string
}

// ForPath picks an encoder from the file extension of path.
func ForPath(path string) (Encoder, error) {
	return ForExt(filepath.Ext(path))
}

func ForExt(ext string) (Encoder, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return Still(imaging.PNG), nil
	case "jpg", "jpeg":
		return Still(imaging.JPEG), nil
	case "gif":
		return GIF(), nil
	case "mp4":
		return Video(MP4), nil
	case "webm":
		return Video(WebM), nil
	}
	return nil, errors.Wrap(ErrUnknownFormat, ext)
}

// Still writes the first frame as a single image.
func Still(format imaging.Format) Encoder {
	return &still{format: format}
}

type still struct {
	format imaging.Format
}

func (e *still) Ext() string {
	switch e.format {
	case imaging.JPEG:
		return ".jpg"
	case imaging.GIF:
		return ".gif"
	case imaging.BMP:
		return ".bmp"
	case imaging.TIFF:
		return ".tif"
	default:
		return ".png"
	}
}

func (e *still) Encode(w io.Writer, frames []Snapshot, _ time.Duration, width, height int) error {
	if err := check(frames, width, height); err != nil {
		return err
	}
	return imaging.Encode(w, frames[0].Image, e.format, imaging.JPEGQuality(92))
}

// IsStill reports whether enc writes a single frame.
func IsStill(enc Encoder) bool {
	_, ok := enc.(*still)
	return ok
}

func check(frames []Snapshot, width, height int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	want := image.Rect(0, 0, width, height)
	for _, f := range frames {
		if f.Image.Rect != want {
			return errors.Wrapf(ErrFrameSize, "frame %d is %v, want %v", f.Index, f.Image.Rect.Size(), want.Size())
		}
	}
	return nil
}
