package effect

// Settings keys, in pipeline order.
const (
	NameLayerSplit      = "layerVariation"
	NameLayerSeparation = "layerSeparation"
	NameStatic          = "staticOnScreen"
	NameStaticGap       = "staticOnLayerSeparation"
	NameZigZag          = "zigZag"
	NameDuplicate       = "duplicateSynth"
	NameLiquidMesh      = "liquidMesh"
	NamePsychedelic     = "psychedelic"
	NameBrightness      = "brightness"
	NameFibonacci       = "fibonacci"
	NameVHS             = "vhsColorGrade"
	NameFluid           = "flowSpeed"
	NameTurbulence      = "turbulence"
	NameColorShift      = "colorShift"
	NameChromaShift     = "chromaShift"
	NameScanLines       = "scanLines"
	NamePixelate        = "pixelate"
)

// All returns one instance of every effect in pipeline order.
func All() []Effect {
	return []Effect{
		EffectLayerSplit(),
		EffectLayerSeparation(),
		EffectStatic(),
		EffectStaticGap(),
		EffectZigZag(),
		EffectDuplicate(),
		EffectLiquidMesh(),
		EffectPsychedelic(),
		EffectBrightness(),
		EffectFibonacci(),
		EffectVHS(),
		EffectFluid(),
		EffectTurbulence(),
		EffectColorShift(),
		EffectChromaShift(),
		EffectScanLines(),
		EffectPixelate(),
	}
}
