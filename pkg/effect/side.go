package effect

import "github.com/samber/lo"

// Channel names a kind of side data passed between effects of one pass.
type Channel string

const (
	ChannelLayers Channel = "layers"
	ChannelGaps   Channel = "gaps"
)

type Layer struct {
	Y, Height int
}

type Gap struct {
	Y, Height int
}

// Side is one tagged side-channel value; only the field matching Kind is set.
type Side struct {
	Kind   Channel
	Layers []Layer
	Gaps   []Gap
}

func (s Side) Len() int {
	switch s.Kind {
	case ChannelLayers:
		return len(s.Layers)
	case ChannelGaps:
		return len(s.Gaps)
	}
	return 0
}

// Sides holds the side channels produced so far in a pipeline pass.
type Sides map[Channel]Side

func LayersSide(layers []Layer) Sides {
	return Sides{ChannelLayers: {Kind: ChannelLayers, Layers: layers}}
}

func GapsSide(gaps []Gap) Sides {
	return Sides{ChannelGaps: {Kind: ChannelGaps, Gaps: gaps}}
}

func (s Sides) Layers() []Layer {
	return s[ChannelLayers].Layers
}

func (s Sides) Gaps() []Gap {
	return s[ChannelGaps].Gaps
}

func (s Sides) Has(ch Channel) bool {
	v, ok := s[ch]
	return ok && v.Len() > 0
}

func (s Sides) Merge(other Sides) {
	for k, v := range other {
		s[k] = v
	}
}

func GapHeight(gaps []Gap) int {
	return lo.SumBy(gaps, func(g Gap) int { return g.Height })
}
