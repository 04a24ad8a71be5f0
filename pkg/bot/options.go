package bot

import (
	"time"

	"go.uber.org/zap"
)

type Option func(c *Commands)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Commands) {
		c.log = logger
	}
}

func WithMaxDim(n int) Option {
	return func(c *Commands) {
		c.maxDim = n
	}
}

// WithMaxFrames caps the frame count a chat may ask for.
func WithMaxFrames(n int) Option {
	return func(c *Commands) {
		if n > 0 {
			c.maxFrames = n
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Commands) {
		if d > 0 {
			c.timeout = d
		}
	}
}
