// Package clock maps wall-clock time and frame indices to the virtual time
// effects are rendered at.
package clock

import (
	"math"
	"time"
)

const DefaultCycle = 2 * math.Pi

const MinFrameDelay = 20 * time.Millisecond

func Live(elapsed time.Duration, speed float64) float64 {
	return float64(elapsed.Milliseconds()) * speed / 1000
}

// FrameTime is the virtual time of frame index when frames are shown
// frame apart, matching Live at the same playback position.
func FrameTime(index int, speed float64, frame time.Duration) float64 {
	return float64(index) * speed * frame.Seconds()
}

// Export spreads total frames evenly over one cycle, so frame total would
// land exactly on cycle and equal frame 0 again.
func Export(index, total int, cycle float64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(index) * cycle / float64(total)
}

func Times(total int, cycle float64) []float64 {
	ts := make([]float64, max(0, total))
	for i := range ts {
		ts[i] = Export(i, total, cycle)
	}
	return ts
}

// Cycle picks the export cycle closest to what the live preview shows
// during d at the given speed, rounded to whole periods so the loop closes.
func Cycle(d time.Duration, speed float64) float64 {
	n := math.Round(d.Seconds() * math.Abs(speed) / DefaultCycle)
	if !(n >= 1) {
		n = 1
	}
	return n * DefaultCycle
}

func FrameDelay(total int, d time.Duration) time.Duration {
	if total <= 0 {
		return MinFrameDelay
	}
	return max(MinFrameDelay, d/time.Duration(total))
}
