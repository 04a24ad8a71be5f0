package export

import (
	"context"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"rerewind/pkg/clock"
	"rerewind/pkg/pipeline"
	"rerewind/pkg/raster"
)

var ErrNoSource = errors.New("no source image")

func NewExporter(p *pipeline.Pipeline, fs afero.Fs, opts ...Option) *Exporter {
	e := &Exporter{
		pipeline: p,
		fs:       fs,
		logger:   zap.NewNop(),
		batch:    5,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Exporter renders jobs through a pipeline and saves them onto fs.
type Exporter struct {
	pipeline *pipeline.Pipeline
	fs       afero.Fs
	logger   *zap.Logger
	batch    int
}

// Job describes one export. Zero values fall back to the settings (frame
// count, duration) or to derived values (cycle, encoder from the path).
type Job struct {
	Source   *raster.Buffer
	Settings pipeline.Settings
	Path     string
	Encoder  Encoder

	Frames   int
	Duration time.Duration
	Cycle    float64
	// Start shifts every frame's virtual time; a still is rendered at Start.
	Start float64
	Seed  int64

	Progress func(done, total int)
}

type Report struct {
	Path     string
	Frames   int
	Size     int64
	Delay    time.Duration
	Duration time.Duration
}

func (e *Exporter) Export(ctx context.Context, job Job) (*Report, error) {
	start := time.Now()
	if job.Source == nil {
		return nil, ErrNoSource
	}
	enc := job.Encoder
	if enc == nil {
		var err error
		if enc, err = ForPath(job.Path); err != nil {
			return nil, err
		}
	}

	total := job.Frames
	if total <= 0 {
		total = job.Settings.Frames
	}
	dur := job.Duration
	if dur <= 0 {
		dur = job.Settings.Duration.Duration
	}
	cycle := job.Cycle
	if cycle <= 0 {
		cycle = clock.Cycle(dur, job.Settings.AnimationSpeed)
	}
	if IsStill(enc) {
		total, cycle = 1, 0
	}
	delay := clock.FrameDelay(total, dur)

	log := e.logger.With(
		zap.String("path", job.Path),
		zap.String("format", enc.Ext()),
		zap.Int("frames", total),
		zap.Float64("cycle", cycle),
	)
	log.Debug("export started")

	render := func(i int, t float64) (*raster.Buffer, error) {
		res, err := e.pipeline.Render(job.Source, job.Settings, job.Start+t, rand.New(rand.NewSource(job.Seed+int64(i))))
		if err != nil {
			return nil, err
		}
		return res.Buffer, nil
	}
	frames, err := Capture(ctx, total, cycle, render, WithBatch(e.batch), WithProgress(job.Progress))
	if err != nil {
		log.With(zap.Error(err)).Info("capture failed")
		return nil, err
	}
	if l, ok := enc.(interface{ Loops() bool }); ok && !l.Loops() {
		frames = Loop(frames)
	}

	size, err := Save(e.fs, job.Path, enc, frames, delay)
	if err != nil {
		log.With(zap.Error(err)).Info("save failed")
		return nil, err
	}

	r := &Report{
		Path:     filepath.Clean(job.Path),
		Frames:   len(frames),
		Size:     size,
		Delay:    delay,
		Duration: time.Since(start),
	}
	log.With(
		zap.String("size", bytesize.New(float64(size)).String()),
		zap.Duration("took", r.Duration),
	).Info("export saved")
	return r, nil
}
