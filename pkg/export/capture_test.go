package export

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rerewind/pkg/raster"
)

func TestCaptureTimes(t *testing.T) {
	var times []float64
	buf := raster.New(2, 2)
	shots, err := Capture(context.Background(), 10, 2*math.Pi, func(i int, tm float64) (*raster.Buffer, error) {
		times = append(times, tm)
		return buf, nil
	})
	require.NoError(t, err)
	require.Len(t, shots, 10)
	for i, s := range shots {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, float64(i)*(2*math.Pi)/10, s.Time)
	}
	assert.Equal(t, times, []float64{shots[0].Time, shots[1].Time, shots[2].Time, shots[3].Time, shots[4].Time,
		shots[5].Time, shots[6].Time, shots[7].Time, shots[8].Time, shots[9].Time})
}

func TestCaptureDeepCopies(t *testing.T) {
	buf := raster.New(1, 1)
	shots, err := Capture(context.Background(), 3, 1, func(i int, _ float64) (*raster.Buffer, error) {
		buf.Put(0, 0, color.NRGBA{R: uint8(i + 1), A: 255})
		return buf, nil
	})
	require.NoError(t, err)
	for i, s := range shots {
		assert.Equal(t, uint8(i+1), s.Image.NRGBAAt(0, 0).R)
	}
	buf.Clear()
	assert.Equal(t, uint8(3), shots[2].Image.NRGBAAt(0, 0).R)
}

func TestCaptureProgress(t *testing.T) {
	var got [][2]int
	_, err := Capture(context.Background(), 7, 1, func(int, float64) (*raster.Buffer, error) {
		return raster.New(1, 1), nil
	}, WithProgress(func(done, total int) { got = append(got, [2]int{done, total}) }))
	require.NoError(t, err)
	require.Len(t, got, 7)
	assert.Equal(t, [2]int{1, 7}, got[0])
	assert.Equal(t, [2]int{7, 7}, got[6])
}

func TestCaptureFailsFast(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	shots, err := Capture(context.Background(), 10, 1, func(i int, _ float64) (*raster.Buffer, error) {
		calls++
		if i == 3 {
			return nil, boom
		}
		return raster.New(1, 1), nil
	})
	assert.Nil(t, shots)
	assert.ErrorIs(t, err, ErrCapture)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 4, calls)
}

func TestCaptureCancelsBetweenBatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := 0
	shots, err := Capture(ctx, 12, 1, func(i int, _ float64) (*raster.Buffer, error) {
		calls++
		if i == 1 {
			cancel()
		}
		return raster.New(1, 1), nil
	}, WithBatch(5))
	assert.Nil(t, shots)
	assert.ErrorIs(t, err, context.Canceled)
	// the running batch finishes, the next one never starts
	assert.Equal(t, 5, calls)
}

func TestCaptureNoFrames(t *testing.T) {
	_, err := Capture(context.Background(), 0, 1, nil)
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestLoop(t *testing.T) {
	assert.Empty(t, Loop(nil))

	a := raster.New(1, 1)
	a.Put(0, 0, color.NRGBA{R: 5, A: 255})
	frames := []Snapshot{{Index: 0, Image: a.Snapshot()}, {Index: 1, Time: 0.5, Image: raster.New(1, 1).Snapshot()}}
	looped := Loop(frames)
	require.Len(t, looped, 3)
	assert.Len(t, frames, 2)
	assert.Equal(t, 2, looped[2].Index)
	assert.Equal(t, frames[0].Image.Pix, looped[2].Image.Pix)
	assert.NotSame(t, frames[0].Image, looped[2].Image)
}
