package raster

import (
	"image"
	"math"

	"github.com/pkg/errors"
)

// ErrScratchUnavailable is returned when a scratch buffer cannot be allocated.
var ErrScratchUnavailable = errors.New("scratch buffer unavailable")

// DefaultMaxPixels caps a single scratch allocation (64 megapixels).
const DefaultMaxPixels = 1 << 26

// Allocator hands out private scratch buffers for a single effect call.
type Allocator interface {
	Alloc(w, h int) (*Buffer, error)
}

func NewHeap(maxPixels int) *Heap {
	return &Heap{maxPixels: maxPixels}
}

// Heap allocates fresh zeroed buffers, refusing requests above maxPixels
// (no limit when maxPixels <= 0).
type Heap struct {
	maxPixels int
}

func (a *Heap) Alloc(w, h int) (*Buffer, error) {
	if w < 0 || h < 0 {
		return nil, ErrScratchUnavailable
	}
	if a != nil && a.maxPixels > 0 && w*h > a.maxPixels {
		return nil, ErrScratchUnavailable
	}
	return New(w, h), nil
}

// Snapshot allocates a scratch buffer holding a copy of src.
func Snapshot(alloc Allocator, src *Buffer) (*Buffer, error) {
	dst, err := alloc.Alloc(src.Width(), src.Height())
	if err != nil {
		return nil, err
	}
	copy(dst.Pix, src.Pix)
	return dst, nil
}

func clampAbs(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

func roundPoint(x, y float64) image.Point {
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}
