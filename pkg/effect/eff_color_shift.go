package effect

import (
	"math"

	"rerewind/pkg/raster"
)

func EffectColorShift() Effect {
	return &colorShift{}
}

type colorShift struct{}

func (e *colorShift) Name() string {
	return NameColorShift
}

func (e *colorShift) Requires() []Channel {
	return nil
}

func (e *colorShift) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	i, t := f.Level(), f.Time
	var off [3]float64
	for k := range off {
		off[k] = math.Sin(2*t+float64(k)*2*math.Pi/3) * 20 * i
	}
	b := f.Buf
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := b.Get(x, y)
			b.PutRGB(x, y, float64(c.R)+off[0], float64(c.G)+off[1], float64(c.B)+off[2])
		}
	}

	if i > 7 {
		hue := 30 * t
		w, h := float64(b.Width()), float64(b.Height())
		b.Paint(raster.LinearGradient(0, 0, w, h, raster.HSL(hue, 1, 0.5), raster.HSL(hue+180, 1, 0.5)), raster.BlendOverlay, 0.06)
	}
	return nil, nil
}
