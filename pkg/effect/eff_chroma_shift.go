package effect

import "math"

func EffectChromaShift() Effect {
	return &chromaShift{}
}

type chromaShift struct{}

func (e *chromaShift) Name() string {
	return NameChromaShift
}

func (e *chromaShift) Requires() []Channel {
	return nil
}

func (e *chromaShift) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	pre, err := f.snapshot()
	if err != nil {
		return nil, err
	}
	b := f.Buf
	w := b.Width()
	s := max(1, int(2*f.Level()*(0.7+0.3*math.Sin(2*f.Time))))
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < w; x++ {
			c := pre.Get(x, y)
			// reads past either edge come back transparent, i.e. zero
			c.R = pre.Get(x-s, y).R
			c.B = pre.Get(x+s, y).B
			b.Put(x, y, c)
		}
	}
	return nil, nil
}
