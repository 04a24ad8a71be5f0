package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"rerewind/pkg/effect"
)

var ErrUnknownEffect = errors.New("unknown effect")

func DefaultSettings() Settings {
	return Settings{
		ZigZagSpeed:    1,
		AnimationSpeed: 1,
		Frames:         30,
		Duration:       Duration{3 * time.Second},
	}
}

// Settings is the flat record a user tunes: one intensity per effect plus
// the animation and export controls. Values are not range checked.
type Settings struct {
	LayerVariation          float64 `toml:"layerVariation"`
	LayerSeparation         float64 `toml:"layerSeparation"`
	StaticOnScreen          float64 `toml:"staticOnScreen"`
	StaticOnLayerSeparation float64 `toml:"staticOnLayerSeparation"`
	ZigZag                  float64 `toml:"zigZag"`
	DuplicateSynth          float64 `toml:"duplicateSynth"`
	LiquidMesh              float64 `toml:"liquidMesh"`
	Psychedelic             float64 `toml:"psychedelic"`
	Brightness              float64 `toml:"brightness"`
	Fibonacci               float64 `toml:"fibonacci"`
	VHSColorGrade           float64 `toml:"vhsColorGrade"`
	FlowSpeed               float64 `toml:"flowSpeed"`
	Turbulence              float64 `toml:"turbulence"`
	ColorShift              float64 `toml:"colorShift"`
	ChromaShift             float64 `toml:"chromaShift"`
	ScanLines               float64 `toml:"scanLines"`
	Pixelate                float64 `toml:"pixelate"`

	ZigZagSpeed    float64  `toml:"zigZagSpeed"`
	AnimationSpeed float64  `toml:"animationSpeed"`
	Frames         int      `toml:"frames"`
	Duration       Duration `toml:"duration"`
}

func (s *Settings) field(name string) *float64 {
	switch name {
	case effect.NameLayerSplit:
		return &s.LayerVariation
	case effect.NameLayerSeparation:
		return &s.LayerSeparation
	case effect.NameStatic:
		return &s.StaticOnScreen
	case effect.NameStaticGap:
		return &s.StaticOnLayerSeparation
	case effect.NameZigZag:
		return &s.ZigZag
	case effect.NameDuplicate:
		return &s.DuplicateSynth
	case effect.NameLiquidMesh:
		return &s.LiquidMesh
	case effect.NamePsychedelic:
		return &s.Psychedelic
	case effect.NameBrightness:
		return &s.Brightness
	case effect.NameFibonacci:
		return &s.Fibonacci
	case effect.NameVHS:
		return &s.VHSColorGrade
	case effect.NameFluid:
		return &s.FlowSpeed
	case effect.NameTurbulence:
		return &s.Turbulence
	case effect.NameColorShift:
		return &s.ColorShift
	case effect.NameChromaShift:
		return &s.ChromaShift
	case effect.NameScanLines:
		return &s.ScanLines
	case effect.NamePixelate:
		return &s.Pixelate
	case "zigZagSpeed":
		return &s.ZigZagSpeed
	case "animationSpeed":
		return &s.AnimationSpeed
	}
	return nil
}

// Intensity returns the value stored under an effect name; unknown names
// read as 0, which switches the effect off.
func (s Settings) Intensity(name string) float64 {
	if p := s.field(name); p != nil {
		return *p
	}
	return 0
}

func (s *Settings) Set(name string, v float64) error {
	p := s.field(name)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownEffect, name)
	}
	*p = v
	return nil
}

func (s Settings) Active() []string {
	var names []string
	for _, e := range effect.All() {
		if s.Intensity(e.Name()) > 0 {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func LoadSettings(fs afero.Fs, path string) (Settings, error) {
	s := DefaultSettings()
	bs, err := afero.ReadFile(fs, path)
	if err != nil {
		return s, fmt.Errorf("read settings failed: %w", err)
	}
	if _, err := toml.Decode(string(bs), &s); err != nil {
		return s, fmt.Errorf("decode settings failed: %w", err)
	}
	return s, nil
}

// Duration is a time.Duration written as "3s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
