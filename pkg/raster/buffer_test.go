package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *Buffer {
	b := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Put(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}
	return b
}

func TestBufferGetPutOutOfBounds(t *testing.T) {
	b := New(4, 3)
	b.Put(-1, 0, color.NRGBA{R: 1, A: 255})
	b.Put(4, 0, color.NRGBA{R: 1, A: 255})
	b.Put(0, 3, color.NRGBA{R: 1, A: 255})

	for _, v := range b.Pix {
		assert.Zero(t, v)
	}
	assert.Equal(t, Transparent, b.Get(10, 10))
	assert.Equal(t, Transparent, b.Get(-1, -1))
}

func TestPutRGBClamps(t *testing.T) {
	b := New(1, 1)
	b.Put(0, 0, color.NRGBA{A: 77})
	b.PutRGB(0, 0, 300, -20, 127.6)

	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 128, A: 77}, b.Get(0, 0))
}

func TestCloneIsDeep(t *testing.T) {
	b := gradient(8, 8)
	c := b.Clone()
	c.Put(0, 0, color.NRGBA{R: 9, G: 9, B: 9, A: 9})

	assert.NotEqual(t, b.Get(0, 0), c.Get(0, 0))
}

func TestCopyRectClipsSource(t *testing.T) {
	src := gradient(8, 8)
	dst := New(8, 8)

	// half of the source rectangle lies left of the buffer
	dst.CopyRect(src, image.Rect(-4, 0, 4, 2), image.Pt(0, 0))

	assert.Equal(t, Transparent, dst.Get(0, 0))
	assert.Equal(t, Transparent, dst.Get(3, 0))
	assert.Equal(t, src.Get(0, 0), dst.Get(4, 0))
	assert.Equal(t, src.Get(3, 1), dst.Get(7, 1))
}

func TestCopyRectClipsDestination(t *testing.T) {
	src := gradient(8, 8)
	dst := New(8, 8)

	require.NotPanics(t, func() {
		dst.CopyRect(src, src.Rect, image.Pt(6, 6))
		dst.CopyRect(src, src.Rect, image.Pt(-100, 3))
		dst.CopyRect(src, image.Rect(100, 100, 200, 200), image.Pt(0, 0))
		dst.CopyRect(src, src.Rect, image.Pt(1<<20, -(1 << 20)))
	})
	assert.Equal(t, src.Get(0, 0), dst.Get(6, 6))
	assert.Equal(t, src.Get(1, 1), dst.Get(7, 7))
}

func TestCopyRectMirrored(t *testing.T) {
	src := gradient(4, 1)
	dst := New(4, 1)
	dst.CopyRectMirrored(src, src.Rect, image.Pt(0, 0))

	for x := 0; x < 4; x++ {
		assert.Equal(t, src.Get(3-x, 0), dst.Get(x, 0))
	}
}

func TestDrawScaled(t *testing.T) {
	src := New(2, 2)
	src.Put(0, 0, color.NRGBA{R: 255, A: 255})
	src.Put(1, 1, color.NRGBA{B: 255, A: 255})
	dst := New(4, 4)
	dst.DrawScaled(src.NRGBA, dst.Rect)

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, dst.Get(1, 1))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, dst.Get(3, 3))
}

func TestFromImageNormalizesOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 14, 12))
	img.Set(10, 10, color.NRGBA{G: 200, A: 255})
	b := FromImage(img)

	assert.Equal(t, image.Rect(0, 0, 4, 2), b.Rect)
	assert.Equal(t, color.NRGBA{G: 200, A: 255}, b.Get(0, 0))
}

func TestSnapshotIsImmutableCopy(t *testing.T) {
	b := gradient(4, 4)
	snap := b.Snapshot()
	b.Clear()

	assert.Equal(t, uint8(128), snap.Pix[2])
}

func TestHeapAllocLimit(t *testing.T) {
	_, err := NewHeap(10).Alloc(4, 4)
	assert.ErrorIs(t, err, ErrScratchUnavailable)

	b, err := NewHeap(0).Alloc(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Width())
}

func TestClamp8(t *testing.T) {
	assert.Equal(t, uint8(0), Clamp8(-1))
	assert.Equal(t, uint8(255), Clamp8(1e9))
	assert.Equal(t, uint8(128), Clamp8(127.5))
	assert.Equal(t, uint8(0), Clamp8(nan()))
}
