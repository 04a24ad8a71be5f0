package raster

import (
	"image"
	"image/color"
	"math"
)

// BlendMode selects how a source color combines with the destination.
// Every composite call takes its mode and alpha explicitly.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendScreen
	BlendMultiply
	BlendOverlay
	BlendDifference
	BlendLighten
	BlendAdd
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendScreen:
		return "screen"
	case BlendMultiply:
		return "multiply"
	case BlendOverlay:
		return "overlay"
	case BlendDifference:
		return "difference"
	case BlendLighten:
		return "lighten"
	case BlendAdd:
		return "add"
	default:
		return "unknown"
	}
}

// channel blends normalized values a (backdrop) and s (source).
func (m BlendMode) channel(a, s float64) float64 {
	switch m {
	case BlendScreen:
		return a + s - a*s
	case BlendMultiply:
		return a * s
	case BlendOverlay:
		if a <= 0.5 {
			return 2 * a * s
		}
		return 1 - 2*(1-a)*(1-s)
	case BlendDifference:
		return math.Abs(a - s)
	case BlendLighten:
		return math.Max(a, s)
	case BlendAdd:
		return math.Min(1, a+s)
	default:
		return s
	}
}

// Over combines src onto dst with mode at the given opacity. The source
// alpha multiplies opacity; the result alpha follows source-over.
func (m BlendMode) Over(dst, src color.NRGBA, alpha float64) color.NRGBA {
	a := clamp01(alpha) * float64(src.A) / 255
	if a <= 0 {
		return dst
	}
	da := float64(dst.A) / 255
	out := color.NRGBA{A: Clamp8((a + da*(1-a)) * 255)}
	mix := func(d, s uint8) uint8 {
		dn, sn := float64(d)/255, float64(s)/255
		b := m.channel(dn, sn)
		// a transparent backdrop shows the plain source
		b = da*b + (1-da)*sn
		return Clamp8((dn*(1-a) + b*a) * 255)
	}
	out.R = mix(dst.R, src.R)
	out.G = mix(dst.G, src.G)
	out.B = mix(dst.B, src.B)
	return out
}

// Composite blends src onto b with src's origin placed at (dx,dy).
func (b *Buffer) Composite(src *Buffer, dx, dy int, mode BlendMode, alpha float64) {
	if !(alpha > 0) {
		return
	}
	target := src.Rect.Add(image.Pt(dx, dy)).Intersect(b.Rect)
	for y := target.Min.Y; y < target.Max.Y; y++ {
		for x := target.Min.X; x < target.Max.X; x++ {
			s := src.Get(x-dx, y-dy)
			if s.A == 0 {
				continue
			}
			b.Put(x, y, mode.Over(b.Get(x, y), s, alpha))
		}
	}
}

// FillBlend blends a solid color over r.
func (b *Buffer) FillBlend(r image.Rectangle, c color.NRGBA, mode BlendMode, alpha float64) {
	if !(alpha > 0) {
		return
	}
	r = r.Intersect(b.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Put(x, y, mode.Over(b.Get(x, y), c, alpha))
		}
	}
}

// Shader yields the paint color of a pixel.
type Shader func(x, y int) color.NRGBA

// Paint blends shader output over the whole buffer.
func (b *Buffer) Paint(shader Shader, mode BlendMode, alpha float64) {
	if !(alpha > 0) {
		return
	}
	w, h := b.Width(), b.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := shader(x, y)
			if c.A == 0 {
				continue
			}
			b.Put(x, y, mode.Over(b.Get(x, y), c, alpha))
		}
	}
}

func clamp01(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v > 0:
		return v
	default:
		return 0
	}
}
