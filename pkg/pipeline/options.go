package pipeline

import (
	"go.uber.org/zap"

	"rerewind/pkg/raster"
)

type Option func(p *Pipeline)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

func WithAllocator(alloc raster.Allocator) Option {
	return func(p *Pipeline) {
		p.alloc = alloc
	}
}

// WithStages replaces the stage list, e.g. to run a subset.
func WithStages(stages ...Stage) Option {
	return func(p *Pipeline) {
		p.stages = stages
	}
}
