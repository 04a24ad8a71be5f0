package effect

import (
	"errors"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rerewind/pkg/raster"
)

func photo(w, h int) *raster.Buffer {
	b := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Put(x, y, color.NRGBA{R: uint8(x * 255 / max(1, w-1)), G: uint8(y * 255 / max(1, h-1)), B: uint8((x + y) % 256), A: 255})
		}
	}
	return b
}

func solid(w, h int, v uint8) *raster.Buffer {
	b := raster.New(w, h)
	b.Fill(b.Rect, gray(v))
	return b
}

func frame(b *raster.Buffer, intensity, t float64, seed int64) *Frame {
	return &Frame{
		Buf:       b,
		Intensity: intensity,
		Time:      t,
		Rand:      rand.New(rand.NewSource(seed)),
		Alloc:     raster.NewHeap(raster.DefaultMaxPixels),
		In: Sides{
			ChannelLayers: {Kind: ChannelLayers, Layers: []Layer{{Y: 0, Height: 10}, {Y: 10, Height: 14}}},
			ChannelGaps:   {Kind: ChannelGaps, Gaps: []Gap{{Y: 4, Height: 3}}},
		},
	}
}

type refuse struct{}

func (refuse) Alloc(w, h int) (*raster.Buffer, error) {
	return nil, raster.ErrScratchUnavailable
}

func TestAllInPipelineOrder(t *testing.T) {
	var names []string
	for _, e := range All() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{
		NameLayerSplit, NameLayerSeparation, NameStatic, NameStaticGap, NameZigZag,
		NameDuplicate, NameLiquidMesh, NamePsychedelic, NameBrightness, NameFibonacci,
		NameVHS, NameFluid, NameTurbulence, NameColorShift,
		NameChromaShift, NameScanLines, NamePixelate,
	}, names)
}

func TestOffIsNoop(t *testing.T) {
	for _, e := range All() {
		for _, i := range []float64{0, -1, -1e9, math.NaN(), math.Inf(-1)} {
			b := photo(32, 24)
			want := b.Clone()
			f := frame(b, i, 1.5, 7)

			sides, err := e.Apply(f)
			require.NoError(t, err, e.Name())
			assert.Nil(t, sides, e.Name())
			assert.Equal(t, want.Pix, b.Pix, "%s at %v", e.Name(), i)
			// no randomness consumed
			assert.Equal(t, rand.New(rand.NewSource(7)).Int63(), f.Rand.Int63(), e.Name())
		}
	}
}

func TestExtremeInputsStayInBounds(t *testing.T) {
	for _, e := range All() {
		for _, i := range []float64{0.01, 3.7, 10, 1e6, math.Inf(1)} {
			for _, tm := range []float64{0, -3, 1e9} {
				b := photo(17, 13)
				f := frame(b, i, tm, 3)
				require.NotPanics(t, func() {
					_, err := e.Apply(f)
					require.NoError(t, err)
				}, "%s I=%v t=%v", e.Name(), i, tm)
				assert.Equal(t, 17, b.Width())
				assert.Len(t, b.Pix, 17*13*4)
			}
		}
	}
}

func TestTinyBuffers(t *testing.T) {
	for _, e := range All() {
		for _, sz := range [][2]int{{0, 0}, {1, 1}, {1, 9}, {9, 1}} {
			b := photo(sz[0], sz[1])
			f := frame(b, 9, 2, 1)
			f.In = nil
			require.NotPanics(t, func() { _, _ = e.Apply(f) }, "%s %v", e.Name(), sz)
		}
	}
}

func TestRefusedScratchLeavesBuffer(t *testing.T) {
	for _, e := range All() {
		b := photo(20, 20)
		want := b.Clone()
		f := frame(b, 8, 1, 5)
		f.Alloc = refuse{}

		_, err := e.Apply(f)
		if err != nil {
			assert.True(t, errors.Is(err, raster.ErrScratchUnavailable), e.Name())
			assert.Equal(t, want.Pix, b.Pix, e.Name())
		}
	}
}

func TestSeededRunsRepeat(t *testing.T) {
	for _, e := range All() {
		a, b := photo(24, 24), photo(24, 24)
		_, err := e.Apply(frame(a, 6.5, 0.7, 11))
		require.NoError(t, err)
		_, err = e.Apply(frame(b, 6.5, 0.7, 11))
		require.NoError(t, err)
		assert.Equal(t, a.Pix, b.Pix, e.Name())
	}
}

func TestSides(t *testing.T) {
	s := Sides{}
	assert.False(t, s.Has(ChannelLayers))
	assert.Nil(t, s.Layers())

	s.Merge(LayersSide([]Layer{{Y: 0, Height: 3}}))
	s.Merge(GapsSide([]Gap{}))
	assert.True(t, s.Has(ChannelLayers))
	assert.False(t, s.Has(ChannelGaps))
	assert.Equal(t, 1, s[ChannelLayers].Len())
	assert.Equal(t, 7, GapHeight([]Gap{{Y: 1, Height: 3}, {Y: 9, Height: 4}}))
}

func TestStaticNoiseCoversEveryBand(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b := solid(64, 64, 128)
		want := solid(64, 64, 128)
		_, err := EffectStatic().Apply(frame(b, 4, 0, seed))
		require.NoError(t, err)

		run, longest := 0, 0
		for y := 0; y < 64; y++ {
			untouched := true
			for x := 0; x < 64; x++ {
				if b.Get(x, y) != want.Get(x, y) {
					untouched = false
					break
				}
			}
			if untouched {
				run++
				longest = max(longest, run)
			} else {
				run = 0
			}
		}
		assert.Less(t, longest, 10, "seed %d", seed)
	}
}
