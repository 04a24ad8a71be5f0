package pipeline

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"rerewind/pkg/effect"
	"rerewind/pkg/raster"
)

func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: zap.NewNop(),
		alloc:  raster.NewHeap(raster.DefaultMaxPixels),
		stages: DefaultStages(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Pipeline runs the effect stages over a frame in a fixed order. It holds
// no per-render state and may be shared between goroutines.
type Pipeline struct {
	logger *zap.Logger
	alloc  raster.Allocator
	stages []Stage
}

type Stage struct {
	State  State
	Effect effect.Effect
}

func DefaultStages() []Stage {
	return lo.Map(effect.All(), func(e effect.Effect, i int) Stage {
		return Stage{State: State(i), Effect: e}
	})
}

type StageReport struct {
	State    State
	Name     string
	Status   Status
	Produced []effect.Channel
	Took     time.Duration
}

type Result struct {
	Buffer *raster.Buffer
	Sides  effect.Sides
	Trace  []StageReport
	State  State
}

func (r *Result) Layers() []effect.Layer {
	return r.Sides.Layers()
}

func (r *Result) Gaps() []effect.Gap {
	return r.Sides.Gaps()
}

func (r *Result) GapHeight() int {
	return effect.GapHeight(r.Gaps())
}

func (r *Result) Report(name string) (StageReport, bool) {
	return lo.Find(r.Trace, func(s StageReport) bool { return s.Name == name })
}

// Render composites every enabled stage over a private clone of src at
// virtual time t. src is never written. A nil rng is seeded from the clock.
//
// Stages that are off, lack a required side channel or cannot get scratch
// memory are skipped and the render carries on.
func (p *Pipeline) Render(src *raster.Buffer, s Settings, t float64, rng *rand.Rand) (*Result, error) {
	res := &Result{
		Buffer: src.Clone(),
		Sides:  effect.Sides{},
		State:  StateComposited,
	}
	if res.Buffer.Empty() {
		return res, nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for _, st := range p.stages {
		name := st.Effect.Name()
		rep := StageReport{State: st.State, Name: name}
		start := time.Now()

		f := &effect.Frame{
			Buf:       res.Buffer,
			Intensity: s.Intensity(name),
			Time:      t,
			Speed:     s.ZigZagSpeed,
			Rand:      rng,
			Alloc:     p.alloc,
			In:        res.Sides,
		}

		switch {
		case f.Off():
			rep.Status = StatusOff
		case !p.satisfied(st.Effect, res.Sides):
			rep.Status = StatusMissingInput
			p.logger.With(zap.Stringer("state", st.State)).Debug("missing side input, skipped")
		default:
			out, err := st.Effect.Apply(f)
			if errors.Is(err, raster.ErrScratchUnavailable) {
				rep.Status = StatusNoScratch
				p.logger.With(zap.Stringer("state", st.State)).Debug("scratch unavailable, skipped")
				break
			}
			if err != nil {
				return nil, fmt.Errorf("%s failed: %w", name, err)
			}
			rep.Produced = lo.Keys(out)
			slices.Sort(rep.Produced)
			res.Sides.Merge(out)
		}

		rep.Took = time.Since(start)
		res.Trace = append(res.Trace, rep)
	}

	p.logger.With(
		zap.Float64("time", t),
		zap.Strings("applied", lo.FilterMap(res.Trace, func(s StageReport, _ int) (string, bool) {
			return s.Name, s.Status == StatusApplied
		})),
	).Debug("frame composited")
	return res, nil
}

func (p *Pipeline) satisfied(e effect.Effect, sides effect.Sides) bool {
	return lo.EveryBy(e.Requires(), sides.Has)
}
