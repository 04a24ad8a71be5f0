package effect

import (
	"image/color"

	"github.com/disintegration/imaging"

	"rerewind/pkg/raster"
)

func EffectBrightness() Effect {
	return &brightness{}
}

type brightness struct{}

func (e *brightness) Name() string {
	return NameBrightness
}

func (e *brightness) Requires() []Channel {
	return nil
}

func (e *brightness) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	pre, err := f.snapshot()
	if err != nil {
		return nil, err
	}
	i := f.Level()

	lit := &raster.Buffer{NRGBA: imaging.AdjustBrightness(pre, 10*i)}
	mean := lit.MeanLuminance()
	k := 1 + 0.05*i
	stretch := func(v uint8) uint8 {
		return raster.Clamp8((float64(v)-mean)*k + mean)
	}
	out := imaging.AdjustFunc(lit, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: stretch(c.R), G: stretch(c.G), B: stretch(c.B), A: c.A}
	})
	copy(f.Buf.Pix, out.Pix)
	return nil, nil
}
