package effect

import (
	"math"

	"rerewind/pkg/raster"
)

func EffectLiquidMesh() Effect {
	return &liquidMesh{}
}

type liquidMesh struct{}

func (e *liquidMesh) Name() string {
	return NameLiquidMesh
}

func (e *liquidMesh) Requires() []Channel {
	return nil
}

func (e *liquidMesh) Apply(f *Frame) (Sides, error) {
	if f.Off() {
		return nil, nil
	}
	pre, err := f.snapshot()
	if err != nil {
		return nil, err
	}
	i, t := f.Level(), f.Time
	field := func(x, y int) (float64, float64) {
		fx, fy := float64(x), float64(y)
		dx := math.Sin(0.05*fy+t*i)*i + math.Cos(0.025*(fx+fy)+0.7*t*i)*0.5*i
		dy := math.Cos(0.05*fx+0.8*t*i)*i + math.Sin(0.025*(fx-fy)+1.2*t*i)*0.5*i
		return dx, dy
	}
	raster.Warp(f.Buf, pre, field, raster.Nearest)
	return nil, nil
}
