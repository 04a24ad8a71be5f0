package effect

import (
	"math"

	"rerewind/pkg/raster"
)

func EffectTurbulence() Effect {
	return &turbulence{}
}

type turbulence struct{}

func (e *turbulence) Name() string {
	return NameTurbulence
}

func (e *turbulence) Requires() []Channel {
	return nil
}

func (e *turbulence) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	pre, err := f.snapshot()
	if err != nil {
		return nil, err
	}
	i, t := f.Level(), f.Time
	raster.Warp(f.Buf, pre, func(x, y int) (float64, float64) {
		fx, fy := float64(x), float64(y)
		dx := math.Sin(0.1*fx+t) * math.Cos(0.1*fy+0.5*t) * 5 * i
		dy := math.Cos(0.1*fx+0.7*t) * math.Sin(0.1*fy+0.3*t) * 5 * i
		return dx, dy
	}, raster.Nearest)

	if i > 5 {
		w, h := float64(f.Buf.Width()), float64(f.Buf.Height())
		for k := 0; k < int(5*i); k++ {
			x, y := f.Rand.Float64()*w, f.Rand.Float64()*h
			r := 1 + f.Rand.Float64()*3
			c := raster.HSLA(f.Rand.Float64()*360, 0.8, 0.7, 0.6)
			f.Buf.Disc(x, y, r, c, raster.BlendScreen, 1)
		}
	}
	return nil, nil
}
