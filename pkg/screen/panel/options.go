package panel

type Option func(p *Panel)

func WithLight(percent uint8) Option {
	return func(p *Panel) {
		p.light = min(percent, 100)
	}
}

// WithLandscape swaps the panel to 480x320.
func WithLandscape() Option {
	return func(p *Panel) {
		if !p.landscape {
			p.width, p.height = p.height, p.width
			p.landscape = true
		}
	}
}
