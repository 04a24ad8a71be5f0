// Package export renders an animation at fixed virtual times and writes it
// out as a still, a GIF or a video.
package export

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/pkg/errors"

	"rerewind/pkg/clock"
	"rerewind/pkg/raster"
)

var (
	ErrCapture  = errors.New("capture failed")
	ErrNoFrames = errors.New("no frames")
)

type Snapshot struct {
	Index int
	Time  float64
	Image *image.NRGBA
}

// RenderFunc renders frame index at virtual time t. The returned buffer may
// be reused by the next call.
type RenderFunc func(index int, t float64) (*raster.Buffer, error)

type CaptureOption func(c *capture)

func WithBatch(n int) CaptureOption {
	return func(c *capture) {
		if n > 0 {
			c.batch = n
		}
	}
}

func WithProgress(fn func(done, total int)) CaptureOption {
	return func(c *capture) {
		c.progress = fn
	}
}

type capture struct {
	batch    int
	progress func(done, total int)
}

// Capture renders total frames evenly spaced over one cycle. The first
// render error aborts the capture and nothing is returned; so does ctx being
// done, which is checked between batches.
func Capture(ctx context.Context, total int, cycle float64, render RenderFunc, opts ...CaptureOption) ([]Snapshot, error) {
	c := &capture{batch: 5}
	for _, opt := range opts {
		opt(c)
	}
	if total <= 0 {
		return nil, ErrNoFrames
	}

	shots := make([]Snapshot, 0, total)
	for i, t := range clock.Times(total, cycle) {
		if i%c.batch == 0 {
			if i > 0 {
				runtime.Gosched()
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		buf, err := render(i, t)
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d: %w", ErrCapture, i, err)
		}
		shots = append(shots, Snapshot{Index: i, Time: t, Image: buf.Snapshot()})

		if c.progress != nil {
			c.progress(i+1, total)
		}
	}
	return shots, nil
}

// Loop closes an animation for containers that do not loop by themselves
// by appending a copy of the first frame.
func Loop(frames []Snapshot) []Snapshot {
	if len(frames) == 0 {
		return frames
	}
	first := frames[0]
	out := append(frames[:len(frames):len(frames)], Snapshot{
		Index: len(frames),
		Time:  first.Time,
		Image: (&raster.Buffer{NRGBA: first.Image}).Snapshot(),
	})
	return out
}
