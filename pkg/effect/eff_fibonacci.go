package effect

import (
	"math"

	"rerewind/pkg/raster"
)

func EffectFibonacci() Effect {
	return &fibonacci{}
}

type fibonacci struct{}

func (e *fibonacci) Name() string {
	return NameFibonacci
}

func (e *fibonacci) Requires() []Channel {
	return nil
}

var fib = [...]float64{1, 1, 2, 3, 5, 8, 13, 21, 34, 55}

func (e *fibonacci) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	pre, err := f.snapshot()
	if err != nil {
		return nil, err
	}

	b := f.Buf
	i, t := f.Level(), f.Time
	w, h := float64(b.Width()), float64(b.Height())
	cx, cy := w/2, h/2
	maxR := 0.4 * math.Min(w, h) * i / 10
	n := 1 + int(i/5)

	for k := 0; k < n; k++ {
		rot := 0.2*t + 2*math.Pi*float64(k)/float64(n)
		b.Stroke(spiral(cx, cy, maxR, rot), 2, white, raster.BlendNormal, i/10)
	}

	b.Composite(pre, 0, 0, raster.BlendScreen, 0.5)

	if i > 5 {
		for k := 0; k < int(3*i); k++ {
			a := f.Rand.Float64() * 2 * math.Pi
			d := f.Rand.Float64() * maxR
			c := raster.HSL(50*t+30*float64(k), 1, 0.6)
			b.Disc(cx+math.Cos(a)*d, cy+math.Sin(a)*d, 1+f.Rand.Float64()*2, c, raster.BlendScreen, 0.8)
		}
	}
	return nil, nil
}

// spiral chains quarter arcs with Fibonacci radii, largest reaching maxR.
// Each arc is centered so that it starts where the previous one ended.
func spiral(cx, cy, maxR, rot float64) []raster.Point {
	scale := maxR / fib[len(fib)-1]
	var pts []raster.Point
	for j, v := range fib {
		r := v * scale
		a0 := rot + float64(j)*math.Pi/2
		a1 := a0 + math.Pi/2
		pts = append(pts, raster.Arc(cx, cy, r, a0, a1)...)
		if j+1 < len(fib) {
			next := fib[j+1] * scale
			ex, ey := cx+math.Cos(a1)*r, cy+math.Sin(a1)*r
			cx, cy = ex-math.Cos(a1)*next, ey-math.Sin(a1)*next
		}
	}
	return pts
}
