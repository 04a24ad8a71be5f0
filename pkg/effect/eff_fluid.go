package effect

import (
	"math"

	"rerewind/pkg/raster"
)

func EffectFluid() Effect {
	return &fluid{}
}

// Every time term is an integer multiple of t, so at integer intensities the
// frame at t+2π equals the frame at t and exported loops close seamlessly.
type fluid struct{}

func (e *fluid) Name() string {
	return NameFluid
}

func (e *fluid) Requires() []Channel {
	return nil
}

func (e *fluid) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	pre, err := f.snapshot()
	if err != nil {
		return nil, err
	}
	b := f.Buf
	i, t := f.Level(), f.Time
	raster.Warp(b, pre, flowField(i, t), raster.Bilinear)

	w, h := float64(b.Width()), float64(b.Height())
	if i > 2 {
		hue := t * 180 / math.Pi
		tint := raster.LinearGradient(0, 0, w, h, raster.HSL(hue, 0.7, 0.5), raster.HSL(hue+60, 0.7, 0.5))
		b.Paint(tint, raster.BlendOverlay, 0.01*i)
	}
	if i > 6 {
		r := math.Min(w, h) / 4
		for k := 0; k < 3; k++ {
			ph := t + 2*math.Pi*float64(k)/3
			cx, cy := w/2+math.Sin(ph)*w/4, h/2+math.Cos(ph)*h/4
			glow := raster.HSLA(0, 0, 1, 0.8)
			b.Paint(raster.RadialGradient(cx, cy, 0, r, glow, raster.Transparent), raster.BlendLighten, 0.2)
		}
	}
	return nil, nil
}

func flowField(i, t float64) raster.Field {
	ti := t * i
	return func(x, y int) (float64, float64) {
		fx, fy := float64(x), float64(y)
		dx := math.Sin(0.05*fy+ti)*5*i + math.Cos(0.025*(fx+fy)+ti)*3*i
		dy := math.Cos(0.05*fx+ti)*5*i + math.Sin(0.025*(fx-fy)+2*ti)*3*i
		if i > 3 {
			dx += math.Sin(0.015*fx+ti) * 2 * i
			dy += math.Cos(0.015*fy+ti) * 2 * i
		}
		return dx, dy
	}
}
