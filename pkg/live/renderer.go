// Package live renders the effect stack continuously for preview.
package live

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"rerewind/pkg/clock"
	"rerewind/pkg/pipeline"
	"rerewind/pkg/raster"
	"rerewind/pkg/screen"
)

var ErrNoSource = errors.New("no source to render")

func NewRenderer(p *pipeline.Pipeline, src *raster.Buffer, params *Params, scr screen.Screen, opts ...Option) *Renderer {
	r := &Renderer{
		pipeline: p,
		src:      src,
		params:   params,
		screen:   scr,
		logger:   zap.NewNop(),
		interval: time.Second / 30,
		seed:     time.Now().UnixNano(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Renderer draws one frame per tick at wall-clock derived virtual time.
// Time spent paused does not advance the animation.
type Renderer struct {
	pipeline *pipeline.Pipeline
	src      *raster.Buffer
	params   *Params
	screen   screen.Screen
	logger   *zap.Logger
	interval time.Duration
	seed     int64
	now      func() time.Time

	frames int
}

// Run renders until ctx is done and returns ctx.Err(). Render and screen
// errors are logged and the loop keeps going.
func (r *Renderer) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	rng := rand.New(rand.NewSource(r.seed))
	var elapsed time.Duration
	last := r.now()
	wakeup := r.params.WakeupChan()

	for {
		select {
		case <-ctx.Done():
			r.logger.With(zap.Int("frames", r.frames)).Info("live render stopped")
			return ctx.Err()
		case <-wakeup:
			last = r.now()
			continue
		case <-ticker.C:
			now := r.now()
			if r.params.Paused() {
				last = now
				continue
			}
			elapsed += now.Sub(last)
			last = now
			if err := r.Frame(elapsed, rng); errors.Is(err, ErrNoSource) {
				r.logger.Debug("no source yet, skip...")
			} else if err != nil {
				r.logger.With(zap.Error(err)).Info("live frame failed")
			}
		}
	}
}

// Frame renders and shows the frame for the given running time. A source
// set on the params takes precedence over the one the renderer was built
// with.
func (r *Renderer) Frame(elapsed time.Duration, rng *rand.Rand) error {
	s := r.params.Settings()
	src := r.params.Source()
	if src == nil {
		src = r.src
	}
	if src == nil {
		return ErrNoSource
	}
	t := clock.Live(elapsed, s.AnimationSpeed)
	res, err := r.pipeline.Render(src, s, t, rng)
	if err != nil {
		return err
	}
	r.frames++
	return r.screen.Show(res.Buffer)
}
