package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Transparent is what out-of-bounds reads return.
var Transparent = color.NRGBA{}

func New(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Buffer{NRGBA: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

func FromImage(img image.Image) *Buffer {
	if b, ok := img.(*Buffer); ok {
		return b.Clone()
	}
	return &Buffer{NRGBA: imaging.Clone(img)}
}

// Buffer is a fixed-size, unpremultiplied 8-bit RGBA raster. It implements
// draw.Image, so it can be handed to the image, imaging and x/image packages.
type Buffer struct {
	*image.NRGBA
}

func (b *Buffer) Width() int {
	return b.Rect.Dx()
}

func (b *Buffer) Height() int {
	return b.Rect.Dy()
}

func (b *Buffer) Empty() bool {
	return b.Rect.Empty()
}

func (b *Buffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Rect.Dx() && y < b.Rect.Dy()
}

func (b *Buffer) offset(x, y int) int {
	return y*b.Stride + x*4
}

func (b *Buffer) Get(x, y int) color.NRGBA {
	if !b.In(x, y) {
		return Transparent
	}
	i := b.offset(x, y)
	s := b.Pix[i : i+4 : i+4]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

func (b *Buffer) Put(x, y int, c color.NRGBA) {
	if !b.In(x, y) {
		return
	}
	i := b.offset(x, y)
	s := b.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
}

// PutRGB writes unclamped channel values, clamping them to [0,255] and
// leaving alpha untouched.
func (b *Buffer) PutRGB(x, y int, r, g, bl float64) {
	if !b.In(x, y) {
		return
	}
	i := b.offset(x, y)
	s := b.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = Clamp8(r), Clamp8(g), Clamp8(bl)
}

func (b *Buffer) Clone() *Buffer {
	dst := New(b.Width(), b.Height())
	copy(dst.Pix, b.Pix)
	return dst
}

// CopyFrom overwrites b with src. Both buffers must have the same size,
// otherwise the overlapping area is copied.
func (b *Buffer) CopyFrom(src *Buffer) {
	if src.Rect == b.Rect {
		copy(b.Pix, src.Pix)
		return
	}
	b.CopyRect(src, src.Rect, image.Point{})
}

func (b *Buffer) Clear() {
	for i := range b.Pix {
		b.Pix[i] = 0
	}
}

func (b *Buffer) Fill(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(b.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := b.offset(x, y)
			s := b.Pix[i : i+4 : i+4]
			s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
		}
	}
}

// CopyRect blits srcRect of src so that its top-left lands on dst. Both the
// source rectangle and the destination area are clipped; nothing outside
// either buffer is read or written.
func (b *Buffer) CopyRect(src *Buffer, srcRect image.Rectangle, dst image.Point) {
	clipped := srcRect.Intersect(src.Rect)
	if clipped.Empty() {
		return
	}
	dst = dst.Add(clipped.Min.Sub(srcRect.Min))
	target := image.Rectangle{Min: dst, Max: dst.Add(clipped.Size())}.Intersect(b.Rect)
	if target.Empty() {
		return
	}
	sp := clipped.Min.Add(target.Min.Sub(dst))
	n := target.Dx() * 4
	for y := 0; y < target.Dy(); y++ {
		di := b.offset(target.Min.X, target.Min.Y+y)
		si := src.offset(sp.X, sp.Y+y)
		copy(b.Pix[di:di+n], src.Pix[si:si+n])
	}
}

func (b *Buffer) CopyRectMirrored(src *Buffer, srcRect image.Rectangle, dst image.Point) {
	clipped := srcRect.Intersect(src.Rect)
	if clipped.Empty() {
		return
	}
	w := clipped.Dx()
	for y := 0; y < clipped.Dy(); y++ {
		for x := 0; x < w; x++ {
			c := src.Get(clipped.Max.X-1-x, clipped.Min.Y+y)
			b.Put(dst.X+x, dst.Y+y, c)
		}
	}
}

func (b *Buffer) DrawScaled(src image.Image, dstRect image.Rectangle) {
	draw.NearestNeighbor.Scale(b, dstRect.Intersect(b.Rect), src, src.Bounds(), draw.Src, nil)
}

func (b *Buffer) Snapshot() *image.NRGBA {
	return b.Clone().NRGBA
}

// Clamp8 rounds v to the nearest byte value, clamping to [0,255]. NaN maps to 0.
func Clamp8(v float64) uint8 {
	switch {
	case v > 255:
		return 255
	case v >= 0:
		return uint8(v + 0.5)
	default:
		return 0
	}
}
