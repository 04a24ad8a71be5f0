package live

import (
	"time"

	"go.uber.org/zap"
)

type Option func(r *Renderer)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

func WithInterval(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithSeed(seed int64) Option {
	return func(r *Renderer) {
		r.seed = seed
	}
}

func withNow(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}
