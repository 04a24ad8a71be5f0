package effect

import (
	"image"
	"image/color"
	"math"

	"rerewind/pkg/raster"
)

func EffectZigZag() Effect {
	return &zigZag{}
}

type zigZag struct{}

func (e *zigZag) Name() string {
	return NameZigZag
}

func (e *zigZag) Requires() []Channel {
	return nil
}

func (e *zigZag) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	pre, err := f.snapshot()
	if err != nil {
		return nil, err
	}

	b := f.Buf
	w, h := b.Width(), b.Height()
	i := f.Level()
	r := f.Rand
	freq := 0.1 + 0.02*i
	speed := (2 + 0.5*i) * f.speed()
	t := f.Time

	for _, s := range strips(f.In.Layers(), h, max(2, int(10-0.5*i))) {
		y := float64(s.Y)
		shift := math.Sin(y*freq+t*speed)*3*i + math.Sin(2.7*y*freq+0.6*t*speed)*1.5*i
		if chance(r, i/30) {
			shift += (r.Float64() - 0.5) * 20 * i
		}
		rect := image.Rect(0, s.Y, w, s.Y+s.Height)
		b.Fill(rect, raster.Transparent)
		b.CopyRect(pre, rect, image.Pt(round(shift), s.Y))

		if i > 5 && chance(r, 0.1) {
			band := 10 + intn(r, 50)
			off := round((r.Float64() - 0.5) * 0.5 * float64(w))
			src := image.Rect(0, s.Y, w, s.Y+band)
			if chance(r, 0.3) {
				b.CopyRectMirrored(pre, src, image.Pt(off, s.Y))
			} else {
				b.CopyRect(pre, src, image.Pt(off, s.Y))
			}
		}

		if chance(r, i/20) {
			tint := color.NRGBA{R: 255, A: 255}
			if chance(r, 0.5) {
				tint = color.NRGBA{B: 255, A: 255}
			}
			b.FillBlend(rect, tint, raster.BlendScreen, 0.2)
		}
	}

	if i > 7 {
		corrupt(f, pre, int(2*i))
	}
	return nil, nil
}

func strips(layers []Layer, h, size int) []Layer {
	if len(layers) > 0 {
		return layers
	}
	out := make([]Layer, 0, h/size+1)
	for y := 0; y < h; y += size {
		out = append(out, Layer{Y: y, Height: min(size, h-y)})
	}
	return out
}

// corrupt stamps n blocks copied from random places of pre, each tinted by
// a random color in difference mode.
func corrupt(f *Frame, pre *raster.Buffer, n int) {
	w, h := f.Buf.Width(), f.Buf.Height()
	r := f.Rand
	for k := 0; k < n; k++ {
		bw := 4 + intn(r, max(1, w/6))
		bh := 2 + intn(r, max(1, h/12))
		at := image.Pt(intn(r, w), intn(r, h))
		src := image.Rectangle{Min: at, Max: at.Add(image.Pt(bw, bh))}
		dst := image.Pt(intn(r, w), intn(r, h))
		f.Buf.CopyRect(pre, src, dst)
		c := color.NRGBA{R: uint8(intn(r, 256)), G: uint8(intn(r, 256)), B: uint8(intn(r, 256)), A: 255}
		f.Buf.FillBlend(image.Rectangle{Min: dst, Max: dst.Add(src.Size())}, c, raster.BlendDifference, 0.5)
	}
}
