package effect

import (
	"image"
	"image/color"
	"math"
)

func EffectLayerSeparation() Effect {
	return &layerSeparation{}
}

type layerSeparation struct{}

func (e *layerSeparation) Name() string {
	return NameLayerSeparation
}

func (e *layerSeparation) Requires() []Channel {
	return []Channel{ChannelLayers}
}

var black = color.NRGBA{A: 255}

func (e *layerSeparation) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	layers := f.In.Layers()
	if len(layers) == 0 {
		return GapsSide([]Gap{}), nil
	}

	pre, err := f.snapshot()
	if err != nil {
		return nil, err
	}

	w, h := f.Buf.Width(), f.Buf.Height()
	// at least one pixel, at most the frame height
	maxGap := max(1, int(math.Min(math.Floor(f.Intensity), float64(h))))

	gaps := make([]Gap, 0, len(layers)-1)
	shift := 0
	for i, l := range layers {
		if i > 0 {
			g := 1 + intn(f.Rand, maxGap)
			y := l.Y + shift
			if y < h {
				gh := min(g, h-y)
				f.Buf.Fill(image.Rect(0, y, w, y+gh), black)
				gaps = append(gaps, Gap{Y: y, Height: gh})
			}
			shift += g
		}
		if shift > 0 {
			f.Buf.CopyRect(pre, image.Rect(0, l.Y, w, l.Y+l.Height), image.Pt(0, l.Y+shift))
		}
	}
	return GapsSide(gaps), nil
}
