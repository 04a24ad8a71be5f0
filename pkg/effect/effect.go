package effect

import (
	"math/rand"

	"rerewind/pkg/raster"
)

type Effect interface {
	Name() string
	Requires() []Channel
	Apply(f *Frame) (Sides, error)
}

// Frame is everything one effect call may touch. Buf is mutated in place;
// scratch copies come from Alloc and never outlive the call.
type Frame struct {
	Buf       *raster.Buffer
	Intensity float64
	Time      float64
	// Speed scales the animation rate of effects that have their own speed
	// control; zero means 1.
	Speed float64
	Rand  *rand.Rand
	Alloc raster.Allocator
	In    Sides
}

func (f *Frame) Off() bool {
	return !(f.Intensity > 0)
}

// Level is the intensity clamped to the nominal 0..10 range, for anything
// that sizes loops, counts or offsets.
func (f *Frame) Level() float64 {
	if f.Off() {
		return 0
	}
	if f.Intensity > MaxIntensity {
		return MaxIntensity
	}
	return f.Intensity
}

func (f *Frame) speed() float64 {
	if f.Speed > 0 {
		return f.Speed
	}
	return 1
}

func (f *Frame) snapshot() (*raster.Buffer, error) {
	return raster.Snapshot(f.alloc(), f.Buf)
}

func (f *Frame) alloc() raster.Allocator {
	if f.Alloc == nil {
		return raster.NewHeap(raster.DefaultMaxPixels)
	}
	return f.Alloc
}

const MaxIntensity = 10.0

func intn(r *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return r.Intn(n)
}

func chance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}
