package raster

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSL builds an opaque color from hue in degrees (any value, wrapped),
// saturation and lightness in [0,1].
func HSL(hue, s, l float64) color.NRGBA {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	if math.IsNaN(hue) {
		hue = 0
	}
	r, g, b := colorful.Hsl(hue, clamp01(s), clamp01(l)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func HSLA(hue, s, l, a float64) color.NRGBA {
	c := HSL(hue, s, l)
	c.A = Clamp8(clamp01(a) * 255)
	return c
}

// HueMatrix is the linear hue-rotate filter used by CSS, applied in 8-bit
// space. It is not a perceptual rotation; saturated colors drift slightly.
type HueMatrix [9]float64

func NewHueMatrix(deg float64) HueMatrix {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return HueMatrix{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072,
	}
}

func (m HueMatrix) Apply(c color.NRGBA) color.NRGBA {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return color.NRGBA{
		R: Clamp8(m[0]*r + m[1]*g + m[2]*b),
		G: Clamp8(m[3]*r + m[4]*g + m[5]*b),
		B: Clamp8(m[6]*r + m[7]*g + m[8]*b),
		A: c.A,
	}
}

// HueRotate rotates the hue of every pixel in place.
func (b *Buffer) HueRotate(deg float64) {
	if math.Mod(deg, 360) == 0 {
		return
	}
	m := NewHueMatrix(deg)
	for i := 0; i+3 < len(b.Pix); i += 4 {
		c := m.Apply(color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]})
		b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c.R, c.G, c.B
	}
}

func Luminance(c color.NRGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// MeanLuminance averages Luminance over every pixel; 0 for empty buffers.
func (b *Buffer) MeanLuminance() float64 {
	n := len(b.Pix) / 4
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i+3 < len(b.Pix); i += 4 {
		sum += Luminance(color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]})
	}
	return sum / float64(n)
}
