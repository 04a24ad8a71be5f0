package effect

func EffectStaticGap() Effect {
	return &staticGap{}
}

type staticGap struct{}

func (e *staticGap) Name() string {
	return NameStaticGap
}

func (e *staticGap) Requires() []Channel {
	return []Channel{ChannelGaps}
}

func (e *staticGap) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	p := f.Level() / 10
	w := f.Buf.Width()
	for _, g := range f.In.Gaps() {
		for y := max(0, g.Y); y < g.Y+g.Height && y < f.Buf.Height(); y++ {
			for x := 0; x < w; x++ {
				if chance(f.Rand, p) {
					f.Buf.Put(x, y, gray(uint8(intn(f.Rand, 256))))
				}
			}
		}
	}
	return nil, nil
}
