package raster

import (
	"image"
	"image/color"
	"math"
)

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return Clamp8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// LinearGradient interpolates from c0 at (x0,y0) to c1 at (x1,y1), projected
// onto the line between them and padded past either end.
func LinearGradient(x0, y0, x1, y1 float64, c0, c1 color.NRGBA) Shader {
	dx, dy := x1-x0, y1-y0
	l2 := dx*dx + dy*dy
	return func(x, y int) color.NRGBA {
		if l2 == 0 {
			return c0
		}
		t := ((float64(x)-x0)*dx + (float64(y)-y0)*dy) / l2
		return lerpColor(c0, c1, t)
	}
}

// RadialGradient interpolates from c0 at radius r0 to c1 at radius r1 around
// (cx,cy), padded inside r0 and outside r1.
func RadialGradient(cx, cy, r0, r1 float64, c0, c1 color.NRGBA) Shader {
	return func(x, y int) color.NRGBA {
		d := math.Hypot(float64(x)-cx, float64(y)-cy)
		if r1 <= r0 {
			if d < r0 {
				return c0
			}
			return c1
		}
		return lerpColor(c0, c1, (d-r0)/(r1-r0))
	}
}

func (b *Buffer) Disc(cx, cy, r float64, c color.NRGBA, mode BlendMode, alpha float64) {
	if !(r > 0) || !(alpha > 0) {
		return
	}
	box := image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r))+1, int(math.Ceil(cy+r))+1,
	).Intersect(b.Rect)
	r2 := r * r
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r2 {
				b.Put(x, y, mode.Over(b.Get(x, y), c, alpha))
			}
		}
	}
}

// Stroke draws a polyline of the given width. Pixels covered by more than
// one stamp are painted once.
func (b *Buffer) Stroke(pts []Point, width float64, c color.NRGBA, mode BlendMode, alpha float64) {
	if len(pts) == 0 || !(alpha > 0) || !(width > 0) {
		return
	}
	mask := make(map[image.Point]struct{})
	r := width / 2
	stamp := func(px, py float64) {
		box := image.Rect(
			int(math.Floor(px-r)), int(math.Floor(py-r)),
			int(math.Ceil(px+r))+1, int(math.Ceil(py+r))+1,
		).Intersect(b.Rect)
		for y := box.Min.Y; y < box.Max.Y; y++ {
			for x := box.Min.X; x < box.Max.X; x++ {
				dx, dy := float64(x)+0.5-px, float64(y)+0.5-py
				if dx*dx+dy*dy <= r*r+0.25 {
					mask[image.Pt(x, y)] = struct{}{}
				}
			}
		}
	}
	stamp(pts[0].X, pts[0].Y)
	for i := 1; i < len(pts); i++ {
		a, z := pts[i-1], pts[i]
		steps := int(math.Ceil(math.Hypot(z.X-a.X, z.Y-a.Y)))
		if steps > 4*(b.Width()+b.Height()) {
			steps = 4 * (b.Width() + b.Height())
		}
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)
			stamp(a.X+(z.X-a.X)*t, a.Y+(z.Y-a.Y)*t)
		}
	}
	for p := range mask {
		b.Put(p.X, p.Y, mode.Over(b.Get(p.X, p.Y), c, alpha))
	}
}

type Point struct {
	X, Y float64
}

// Arc returns points along a circular arc, one roughly every pixel.
func Arc(cx, cy, r, from, to float64) []Point {
	n := int(math.Ceil(math.Abs(to-from) * r))
	if n < 2 {
		n = 2
	}
	if n > 4096 {
		n = 4096
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := from + (to-from)*float64(i)/float64(n)
		pts = append(pts, Point{X: cx + math.Cos(a)*r, Y: cy + math.Sin(a)*r})
	}
	return pts
}
