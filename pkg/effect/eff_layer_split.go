package effect

import (
	"math"

	"rerewind/pkg/raster"
)

func EffectLayerSplit() Effect {
	return &layerSplit{}
}

type layerSplit struct{}

func (e *layerSplit) Name() string {
	return NameLayerSplit
}

func (e *layerSplit) Requires() []Channel {
	return nil
}

func (e *layerSplit) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}

	var red, blue *raster.Buffer
	if f.Intensity > 5 {
		var err error
		if red, err = f.snapshot(); err != nil {
			return nil, err
		}
		if blue, err = f.snapshot(); err != nil {
			return nil, err
		}
		isolate(red, true, false, false)
		isolate(blue, false, false, true)
	}

	layers := splitLayers(f, f.Buf.Height())

	if red != nil {
		k := f.Level() - 5
		t := f.Time
		f.Buf.Composite(red, round(math.Sin(0.8*t)*k*0.6), round(math.Cos(0.7*t)*k*0.3), raster.BlendScreen, 0.5)
		f.Buf.Composite(blue, round(math.Sin(1.1*t)*k*-0.5), round(math.Cos(0.8*t)*k*-0.2), raster.BlendScreen, 0.5)
	}
	return LayersSide(layers), nil
}

// splitLayers partitions h rows into 5..15 bands. Every band but the last
// is 5-20% of h tall; the last takes whatever is left.
func splitLayers(f *Frame, h int) []Layer {
	n := int(5 + f.Level())
	layers := make([]Layer, 0, n)
	y := 0
	for i := 0; i < n && y < h; i++ {
		lh := h - y
		if i < n-1 {
			lh = max(1, int(float64(h)*(0.05+f.Rand.Float64()*0.15)))
			lh = min(lh, h-y)
		}
		layers = append(layers, Layer{Y: y, Height: lh})
		y += lh
	}
	return layers
}

func isolate(b *raster.Buffer, r, g, bl bool) {
	for i := 0; i+3 < len(b.Pix); i += 4 {
		if !r {
			b.Pix[i] = 0
		}
		if !g {
			b.Pix[i+1] = 0
		}
		if !bl {
			b.Pix[i+2] = 0
		}
	}
}

// round converts an offset to pixels. NaN becomes 0 and the magnitude is
// capped well inside int range.
func round(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(-1<<30, math.Min(1<<30, v))))
}
