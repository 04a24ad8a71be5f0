package effect

import (
	"image"
	"image/color"
)

func EffectPixelate() Effect {
	return &pixelate{}
}

type pixelate struct{}

func (e *pixelate) Name() string {
	return NamePixelate
}

func (e *pixelate) Requires() []Channel {
	return nil
}

func (e *pixelate) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	size := 1 + int(1.5*f.Level())
	if size < 2 {
		return nil, nil
	}
	b := f.Buf
	for y := 0; y < b.Height(); y += size {
		for x := 0; x < b.Width(); x += size {
			r := image.Rect(x, y, x+size, y+size).Intersect(b.Rect)
			b.Fill(r, average(f, r))
		}
	}
	return nil, nil
}

func average(f *Frame, r image.Rectangle) color.NRGBA {
	var sr, sg, sb, sa, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := f.Buf.Get(x, y)
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
			sa += int(c.A)
			n++
		}
	}
	if n == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: uint8(sa / n)}
}
