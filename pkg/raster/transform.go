package raster

import (
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Affine describes a transform about the buffer center: scale first (a
// negative ScaleX mirrors), then rotate by Angle radians, then translate.
type Affine struct {
	Angle          float64
	ScaleX, ScaleY float64
	TX, TY         float64
}

func (a Affine) matrix(w, h int) f64.Aff3 {
	cx, cy := float64(w)/2, float64(h)/2
	sx, sy := a.ScaleX, a.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	sin, cos := math.Sincos(a.Angle)
	m00, m01 := cos*sx, -sin*sy
	m10, m11 := sin*sx, cos*sy
	return f64.Aff3{
		m00, m01, cx + a.TX - (m00*cx + m01*cy),
		m10, m11, cy + a.TY - (m10*cx + m11*cy),
	}
}

func (a Affine) identity() bool {
	return a.Angle == 0 && (a.ScaleX == 0 || a.ScaleX == 1) && (a.ScaleY == 0 || a.ScaleY == 1)
}

// bounded keeps the transform finite and the translation within a couple
// of buffer sizes; anything further away covers nothing anyway.
func (a Affine) bounded(w, h int) Affine {
	finite := func(v, def float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return v
	}
	a.Angle = math.Mod(finite(a.Angle, 0), 2*math.Pi)
	a.ScaleX = finite(a.ScaleX, 1)
	a.ScaleY = finite(a.ScaleY, 1)
	a.TX = clampAbs(finite(a.TX, 0), float64(2*w))
	a.TY = clampAbs(finite(a.TY, 0), float64(2*h))
	return a
}

// Transformed renders src through a into a new transparent buffer of the
// same size using nearest-neighbor sampling. Areas not covered stay
// transparent.
func Transformed(src *Buffer, a Affine, alloc Allocator) (*Buffer, error) {
	dst, err := alloc.Alloc(src.Width(), src.Height())
	if err != nil {
		return nil, err
	}
	a = a.bounded(src.Width(), src.Height())
	if a.identity() {
		dst.CopyRect(src, src.Rect, roundPoint(a.TX, a.TY))
		return dst, nil
	}
	draw.NearestNeighbor.Transform(dst.NRGBA, a.matrix(src.Width(), src.Height()), src.NRGBA, src.Rect, draw.Src, nil)
	return dst, nil
}
