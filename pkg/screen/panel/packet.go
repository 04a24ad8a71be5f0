package panel

import "image"

// packet packs four 10-bit arguments and a command code into the panel's
// 6-byte header.
func packet(code byte, a, b, c, d int) []byte {
	return []byte{
		byte(a >> 2),
		byte((a&3)<<6 | b>>4),
		byte((b&0xF)<<4 | c>>6),
		byte((c&0x3F)<<2 | d>>8),
		byte(d),
		code,
	}
}

// RGB565 converts img to little-endian 16-bit pixels, row by row.
func RGB565(img *image.NRGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := make([]byte, 0, w*h*2)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			v := uint16(row[i]&0xF8)<<8 | uint16(row[i+1]&0xFC)<<3 | uint16(row[i+2])>>3
			out = append(out, byte(v), byte(v>>8))
		}
	}
	return out
}
