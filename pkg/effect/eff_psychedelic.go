package effect

import (
	"math"

	"rerewind/pkg/raster"
)

func EffectPsychedelic() Effect {
	return &psychedelic{}
}

type psychedelic struct{}

func (e *psychedelic) Name() string {
	return NamePsychedelic
}

func (e *psychedelic) Requires() []Channel {
	return nil
}

func (e *psychedelic) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	i, t := f.Level(), f.Time
	n := int(i/2.5) + 1

	copies := make([]*raster.Buffer, 0, n)
	for k := 0; k < n; k++ {
		kf := float64(k)
		s := 1 + 0.05*math.Sin(t+kf)*i/10
		a := raster.Affine{Angle: 2 * math.Pi * kf / float64(n), ScaleX: s, ScaleY: s}
		if k%2 == 1 {
			a.ScaleX = -s
		}
		c, err := raster.Transformed(f.Buf, a, f.alloc())
		if err != nil {
			return nil, err
		}
		c.HueRotate(math.Mod(20*t+30*kf, 360))
		copies = append(copies, c)
	}

	for _, c := range copies {
		f.Buf.Composite(c, 0, 0, raster.BlendScreen, 0.05*i)
	}
	return nil, nil
}
