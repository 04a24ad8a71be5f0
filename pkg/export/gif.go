package export

import (
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"time"

	"golang.org/x/image/draw"
)

// GIF encodes an endlessly looping animation, dithered to the Plan 9
// palette.
func GIF() Encoder {
	return &gifEncoder{}
}

type gifEncoder struct{}

func (e *gifEncoder) Ext() string {
	return ".gif"
}

func (e *gifEncoder) Encode(w io.Writer, frames []Snapshot, delay time.Duration, width, height int) error {
	if err := check(frames, width, height); err != nil {
		return err
	}

	// GIF delays are in 1/100 s; most viewers clamp anything below 2
	d := max(2, int(delay/(10*time.Millisecond)))
	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	for _, f := range frames {
		p := image.NewPaletted(f.Image.Rect, palette.Plan9)
		draw.FloydSteinberg.Draw(p, p.Rect, f.Image, image.Point{})
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, d)
	}
	return gif.EncodeAll(w, anim)
}
