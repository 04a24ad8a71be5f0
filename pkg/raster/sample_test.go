package raster

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }

func TestSampleNearest(t *testing.T) {
	b := gradient(4, 4)

	c, ok := Sample(b, 2.9, 1.2, Nearest)
	require.True(t, ok)
	assert.Equal(t, b.Get(2, 1), c)

	for _, p := range [][2]float64{{-0.1, 0}, {4, 0}, {0, 4}, {nan(), 0}, {math.Inf(1), 1}} {
		c, ok := Sample(b, p[0], p[1], Nearest)
		assert.False(t, ok, "%v", p)
		assert.Equal(t, Transparent, c)
	}
}

func TestSampleBilinearInterpolatesLinearly(t *testing.T) {
	b := New(3, 3)
	b.Put(0, 0, color.NRGBA{R: 0, A: 255})
	b.Put(1, 0, color.NRGBA{R: 100, A: 255})
	b.Put(0, 1, color.NRGBA{R: 0, A: 255})
	b.Put(1, 1, color.NRGBA{R: 100, A: 255})

	c, ok := Sample(b, 0.5, 0.5, Bilinear)
	require.True(t, ok)
	assert.Equal(t, uint8(50), c.R)
	assert.Equal(t, uint8(255), c.A)
}

func TestSampleBilinearRejectsBorderTaps(t *testing.T) {
	b := gradient(4, 4)

	// inside the buffer but the right/bottom neighbor would be outside
	_, ok := Sample(b, 3.2, 1, Bilinear)
	assert.False(t, ok)
	_, ok = Sample(b, 1, 3, Bilinear)
	assert.False(t, ok)

	// nearest still serves those positions
	_, ok = Sample(b, 3.2, 1, Nearest)
	assert.True(t, ok)
}

func TestWarpKeepsPixelsWithoutSource(t *testing.T) {
	src := gradient(8, 8)
	dst := src.Clone()
	dst.Fill(dst.Rect, color.NRGBA{R: 7, G: 7, B: 7, A: 255})

	Warp(dst, src, func(x, y int) (float64, float64) { return 1e12, -1e12 }, Nearest)
	assert.Equal(t, color.NRGBA{R: 7, G: 7, B: 7, A: 255}, dst.Get(3, 3))

	Warp(dst, src, func(x, y int) (float64, float64) { return 0, 0 }, Bilinear)
	assert.Equal(t, src.Pix, dst.Pix)
}

func TestWarpBilinearFallsBackAtBorder(t *testing.T) {
	src := gradient(8, 8)
	dst := New(8, 8)

	Warp(dst, src, func(x, y int) (float64, float64) { return 0.5, 0 }, Bilinear)

	// last column: bilinear impossible, nearest floors 7.5 to 7
	assert.Equal(t, src.Get(7, 2), dst.Get(7, 2))
	// interior: halfway between columns 2 and 3
	assert.Equal(t, uint8(10), dst.Get(2, 2).R)
}

func TestWarpExtremeFieldsStayInBounds(t *testing.T) {
	src := gradient(16, 16)
	dst := src.Clone()
	fields := []Field{
		func(x, y int) (float64, float64) { return math.Inf(1), math.Inf(-1) },
		func(x, y int) (float64, float64) { return nan(), nan() },
		func(x, y int) (float64, float64) { return math.MaxFloat64, -math.MaxFloat64 },
		func(x, y int) (float64, float64) { return float64(x * 1e9), float64(-y) },
	}
	for _, f := range fields {
		require.NotPanics(t, func() {
			Warp(dst, src, f, Nearest)
			Warp(dst, src, f, Bilinear)
		})
	}
}
