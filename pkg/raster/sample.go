package raster

import (
	"image/color"
	"math"
)

type SampleMode uint8

const (
	Nearest SampleMode = iota
	Bilinear
)

// Field is a lazily evaluated displacement: the destination pixel (x,y)
// takes its color from (x+dx, y+dy).
type Field func(x, y int) (dx, dy float64)

// Sample reads src at a fractional position.
//
// Nearest floors the coordinates and fails for reads outside the buffer.
// Bilinear needs all four taps strictly inside (x < w-1, y < h-1) and fails
// otherwise, including on the last row and column; callers fall back to
// Nearest there. That asymmetry leaves a visible one-pixel seam at the right
// and bottom edges of bilinear warps.
func Sample(src *Buffer, x, y float64, mode SampleMode) (color.NRGBA, bool) {
	w, h := float64(src.Width()), float64(src.Height())
	if mode == Bilinear {
		if !(x >= 0 && y >= 0 && x < w-1 && y < h-1) {
			return Transparent, false
		}
		x0, y0 := math.Floor(x), math.Floor(y)
		wx, wy := x-x0, y-y0
		ix, iy := int(x0), int(y0)
		c00 := src.Get(ix, iy)
		c10 := src.Get(ix+1, iy)
		c01 := src.Get(ix, iy+1)
		c11 := src.Get(ix+1, iy+1)
		lerp := func(a, b, c, d uint8) uint8 {
			return Clamp8(float64(a)*(1-wx)*(1-wy) +
				float64(b)*wx*(1-wy) +
				float64(c)*(1-wx)*wy +
				float64(d)*wx*wy)
		}
		return color.NRGBA{
			R: lerp(c00.R, c10.R, c01.R, c11.R),
			G: lerp(c00.G, c10.G, c01.G, c11.G),
			B: lerp(c00.B, c10.B, c01.B, c11.B),
			A: lerp(c00.A, c10.A, c01.A, c11.A),
		}, true
	}

	if !(x >= 0 && y >= 0 && x < w && y < h) {
		return Transparent, false
	}
	return src.Get(int(x), int(y)), true
}

// Warp resamples src through field into dst. Destination pixels whose
// source lies outside src keep their current value. Bilinear mode falls
// back to nearest-neighbor where the four taps are not all inside.
func Warp(dst, src *Buffer, field Field, mode SampleMode) {
	w, h := dst.Width(), dst.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := field(x, y)
			sx, sy := float64(x)+dx, float64(y)+dy
			c, ok := Sample(src, sx, sy, mode)
			if !ok && mode == Bilinear {
				c, ok = Sample(src, sx, sy, Nearest)
			}
			if ok {
				dst.Put(x, y, c)
			}
		}
	}
}
