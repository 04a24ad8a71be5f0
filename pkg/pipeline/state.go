package pipeline

import "rerewind/pkg/effect"

// State is a position in the fixed stage order. A render walks every state
// once and ends in StateComposited.
type State int

const (
	StateLayerSplit State = iota
	StateLayerSeparation
	StateStatic
	StateStaticGap
	StateZigZag
	StateDuplicate
	StateLiquidMesh
	StatePsychedelic
	StateBrightness
	StateFibonacci
	StateVHS
	StateFluid
	StateTurbulence
	StateColorShift
	StateChromaShift
	StateScanLines
	StatePixelate
	StateComposited
)

var stateNames = [...]string{
	effect.NameLayerSplit,
	effect.NameLayerSeparation,
	effect.NameStatic,
	effect.NameStaticGap,
	effect.NameZigZag,
	effect.NameDuplicate,
	effect.NameLiquidMesh,
	effect.NamePsychedelic,
	effect.NameBrightness,
	effect.NameFibonacci,
	effect.NameVHS,
	effect.NameFluid,
	effect.NameTurbulence,
	effect.NameColorShift,
	effect.NameChromaShift,
	effect.NameScanLines,
	effect.NamePixelate,
	"composited",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Status tells what a stage did during one render.
type Status int

const (
	StatusApplied Status = iota
	StatusOff
	StatusMissingInput
	StatusNoScratch
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusOff:
		return "off"
	case StatusMissingInput:
		return "missing input"
	case StatusNoScratch:
		return "no scratch"
	default:
		return "unknown"
	}
}
