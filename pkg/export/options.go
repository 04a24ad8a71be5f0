package export

import "go.uber.org/zap"

type Option func(e *Exporter)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

func WithFrameBatch(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.batch = n
		}
	}
}
