package effect

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rerewind/pkg/raster"
)

func TestColorShiftPhases(t *testing.T) {
	b := solid(4, 4, 100)
	_, err := EffectColorShift().Apply(frame(b, 1, 0, 1))
	require.NoError(t, err)

	c := b.Get(2, 2)
	assert.Equal(t, uint8(100), c.R)
	assert.Equal(t, uint8(117), c.G)
	assert.Equal(t, uint8(83), c.B)
	assert.Equal(t, uint8(255), c.A)
}

func TestColorShiftClamps(t *testing.T) {
	b := solid(4, 4, 250)
	_, err := EffectColorShift().Apply(frame(b, 10, math.Pi/4, 1))
	require.NoError(t, err)
	// sin(π/2) pushes red far above 255
	assert.Equal(t, uint8(255), b.Get(0, 0).R)
}

func TestChromaShiftSplitsChannels(t *testing.T) {
	b := photo(32, 4)
	pre := b.Clone()
	_, err := EffectChromaShift().Apply(frame(b, 1, 0, 1))
	require.NoError(t, err)

	// s = max(1, ⌊2·0.7⌋) = 1
	assert.Equal(t, pre.Get(9, 1).R, b.Get(10, 1).R)
	assert.Equal(t, pre.Get(10, 1).G, b.Get(10, 1).G)
	assert.Equal(t, pre.Get(11, 1).B, b.Get(10, 1).B)
	assert.Equal(t, uint8(0), b.Get(0, 1).R)
	assert.Equal(t, uint8(0), b.Get(31, 1).B)
}

func TestPixelateBlocks(t *testing.T) {
	b := photo(20, 20)
	_, err := EffectPixelate().Apply(frame(b, 2, 0, 1))
	require.NoError(t, err)

	// block size 4
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, b.Get(0, 0), b.Get(x, y))
		}
	}
	assert.NotEqual(t, b.Get(0, 0), b.Get(4, 0))
}

func TestBrightnessLifts(t *testing.T) {
	b := solid(8, 8, 100)
	_, err := EffectBrightness().Apply(frame(b, 3, 0, 1))
	require.NoError(t, err)
	// flat frames sit on their mean, so only the brightness step shows
	assert.Greater(t, b.Get(4, 4).R, uint8(100))
	assert.Equal(t, b.Get(0, 0), b.Get(7, 7))
}

func TestVHSBias(t *testing.T) {
	b := solid(9, 9, 128)
	_, err := EffectVHS().Apply(frame(b, 2, 0, 1))
	require.NoError(t, err)
	c := b.Get(4, 4)
	assert.Greater(t, c.R, c.B)
}

func TestFluidLoopsOverTwoPi(t *testing.T) {
	for _, i := range []float64{1, 4, 7} {
		a, b := photo(40, 30), photo(40, 30)
		_, err := EffectFluid().Apply(frame(a, i, 0.9, 1))
		require.NoError(t, err)
		_, err = EffectFluid().Apply(frame(b, i, 0.9+2*math.Pi, 1))
		require.NoError(t, err)
		assert.LessOrEqual(t, maxDiff(a, b), 2, "I=%v", i)
	}
}

func TestWarpsMovePixels(t *testing.T) {
	for _, e := range []Effect{EffectLiquidMesh(), EffectTurbulence(), EffectFluid()} {
		b := photo(40, 40)
		want := b.Clone()
		_, err := e.Apply(frame(b, 3, 1, 1))
		require.NoError(t, err)
		assert.NotEqual(t, want.Pix, b.Pix, e.Name())
	}
}

func maxDiff(a, b *raster.Buffer) int {
	d := 0
	for i := range a.Pix {
		v := int(a.Pix[i]) - int(b.Pix[i])
		if v < 0 {
			v = -v
		}
		d = max(d, v)
	}
	return d
}

func TestVHSShadowTintFollowsRed(t *testing.T) {
	// red climbs past the shadow threshold, so green gets no lift
	b := raster.New(9, 9)
	b.Fill(b.Rect, color.NRGBA{R: 120, G: 50, B: 50, A: 255})
	_, err := EffectVHS().Apply(frame(b, 1, 0, 1))
	require.NoError(t, err)
	assert.LessOrEqual(t, b.Get(4, 4).G, uint8(36))

	b.Fill(b.Rect, color.NRGBA{R: 60, G: 50, B: 50, A: 255})
	_, err = EffectVHS().Apply(frame(b, 1, 0, 1))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, b.Get(4, 4).G, uint8(38))
}
