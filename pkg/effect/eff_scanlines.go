package effect

import (
	"image"
	"math"

	"rerewind/pkg/raster"
)

func EffectScanLines() Effect {
	return &scanLines{}
}

type scanLines struct{}

func (e *scanLines) Name() string {
	return NameScanLines
}

func (e *scanLines) Requires() []Channel {
	return nil
}

func (e *scanLines) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	i, t := f.Level(), f.Time
	b := f.Buf
	w, h := b.Width(), b.Height()
	spacing := max(2, 12-int(i))
	opacity := 0.2 + i/20

	for y := 0; y < h; y += spacing {
		fy := float64(y)
		lh := 1 + math.Sin(0.05*fy+2*t)*i*0.3
		pos := fy + math.Sin(0.02*fy+t)*i
		b.FillBlend(span(0, pos, float64(w), lh), black, raster.BlendNormal, opacity)

		if chance(f.Rand, 0.02*i) {
			gw := f.Rand.Float64() * float64(w) * 0.8
			gx := f.Rand.Float64() * (float64(w) - gw)
			b.FillBlend(span(gx, pos, gw, lh*3), black, raster.BlendNormal, opacity)
		}
	}
	return nil, nil
}

// span rounds a fractional rectangle to pixels; a negative height extends
// upward from y.
func span(x, y, w, h float64) image.Rectangle {
	return image.Rect(round(x), round(y), round(x+w), round(y+h))
}
