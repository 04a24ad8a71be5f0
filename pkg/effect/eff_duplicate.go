package effect

import (
	"math"

	"rerewind/pkg/raster"
)

func EffectDuplicate() Effect {
	return &duplicate{}
}

type duplicate struct{}

func (e *duplicate) Name() string {
	return NameDuplicate
}

func (e *duplicate) Requires() []Channel {
	return nil
}

func (e *duplicate) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	i := f.Level()
	t := f.Time
	n := int(1 + 0.4*i)

	ghosts := make([]*raster.Buffer, 0, n)
	for k := 0; k < n; k++ {
		kf := float64(k)
		a := raster.Affine{
			TX: math.Sin(t*(0.5+0.2*kf)) * 2 * i,
			TY: math.Cos(t*(0.3+0.2*kf)) * 2 * i,
		}
		if i > 5 {
			a.Angle = 0.02 * (i - 5) * math.Sin(t*(0.4+0.1*kf))
		}
		g, err := raster.Transformed(f.Buf, a, f.alloc())
		if err != nil {
			return nil, err
		}
		g.HueRotate(360 * kf / float64(n))
		ghosts = append(ghosts, g)
	}

	for _, g := range ghosts {
		f.Buf.Composite(g, 0, 0, raster.BlendScreen, 0.03*i)
	}
	return nil, nil
}
