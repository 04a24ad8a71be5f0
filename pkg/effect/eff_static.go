package effect

import (
	"image"
	"image/color"
	"math"

	"rerewind/pkg/raster"
)

func EffectStatic() Effect {
	return &static{}
}

type static struct{}

func (e *static) Name() string {
	return NameStatic
}

func (e *static) Requires() []Channel {
	return nil
}

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func (e *static) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	i := f.Level()

	var pre *raster.Buffer
	if i > 3 {
		var err error
		if pre, err = f.snapshot(); err != nil {
			return nil, err
		}
	}

	b := f.Buf
	w, h := b.Width(), b.Height()
	r := f.Rand

	for y := 0; y < h; y++ {
		p := i * (1 + 0.2*math.Sin(0.1*float64(y))) / 30
		for x := 0; x < w; x++ {
			if chance(r, p) {
				v := uint8(intn(r, 256))
				b.Put(x, y, raster.BlendNormal.Over(b.Get(x, y), gray(v), 0.3+r.Float64()*0.7))
			}
			if chance(r, i/200) {
				b.Put(x, y, withAlpha(black, b.Get(x, y).A))
			}
			if chance(r, i/300) {
				b.Put(x, y, withAlpha(white, b.Get(x, y).A))
			}
		}
	}

	for y := 0; y < h; y++ {
		if !chance(r, i/50) {
			continue
		}
		rows := 1 + intn(r, 3)
		x0 := intn(r, w)
		lw := 1 + intn(r, w-x0)
		if chance(r, 0.5) {
			// torn line running to the right edge
			lw = w - x0
		}
		c := gray(uint8(intn(r, 256)))
		b.FillBlend(image.Rect(x0, y, x0+lw, y+rows), c, raster.BlendNormal, 0.8)
	}

	if pre != nil {
		// the band slips with its noise
		pre.CopyFrom(b)
		band := 10 + intn(r, 30)
		y0 := intn(r, max(1, h-band))
		off := int(math.Floor(r.Float64()*10) * i / 3)
		vsync(b, pre, y0, band, off)
	}

	if i > 5 {
		for y := 0; y < h; y += 2 {
			b.FillBlend(image.Rect(0, y, w, y+1), black, raster.BlendMultiply, 0.2)
		}
	}
	return nil, nil
}

// vsync shifts rows [y0, y0+band) of pre leftward by off pixels, wrapping
// the part that falls off the left edge around to the right.
func vsync(dst, pre *raster.Buffer, y0, band, off int) {
	w := pre.Width()
	if w == 0 || off%w == 0 {
		return
	}
	off %= w
	for y := y0; y < y0+band && y < pre.Height(); y++ {
		dst.CopyRect(pre, image.Rect(off, y, w, y+1), image.Pt(0, y))
		dst.CopyRect(pre, image.Rect(0, y, off, y+1), image.Pt(w-off, y))
	}
}

func gray(v uint8) color.NRGBA {
	return color.NRGBA{R: v, G: v, B: v, A: 255}
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
