package effect

import (
	"image/color"
	"math"

	"rerewind/pkg/raster"
)

func EffectVHS() Effect {
	return &vhs{}
}

type vhs struct{}

func (e *vhs) Name() string {
	return NameVHS
}

func (e *vhs) Requires() []Channel {
	return nil
}

func (e *vhs) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	i := f.Level()
	b := f.Buf
	w, h := b.Width(), b.Height()

	var bleed *raster.Buffer
	if i > 3 {
		var err error
		if bleed, err = f.alloc().Alloc(w, h); err != nil {
			return nil, err
		}
	}

	k := 1 + 0.2*i
	contrast := func(v float64) float64 {
		return (v-128)*k + 128
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := b.Get(x, y)
			r, g, bl := math.Min(255, float64(c.R)+15*i), float64(c.G), math.Max(0, float64(c.B)-8*i)
			if r < 128 {
				g += 5 * i
			}
			b.PutRGB(x, y, contrast(r), contrast(g), contrast(bl))
		}
	}

	fw, fh := float64(w), float64(h)
	edge := color.NRGBA{A: 255}
	b.Paint(raster.RadialGradient(fw/2, fh/2, 0.3*math.Min(fw, fh), 0.7*math.Max(fw, fh), raster.Transparent, edge),
		raster.BlendMultiply, 0.4*i)

	grain := 0.1 * i * 50 / 255
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Put(x, y, raster.BlendOverlay.Over(b.Get(x, y), gray(uint8(intn(f.Rand, 256))), grain))
		}
	}

	if bleed != nil {
		bleed.CopyFrom(b)
		shift := 1
		if i > 6 {
			shift = 2
		}
		b.Composite(bleed, shift, 0, raster.BlendScreen, 0.1*i)
	}
	return nil, nil
}
