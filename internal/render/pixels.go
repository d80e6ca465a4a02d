package render

import "image"

// premultiplyNRGBA writes src into buf as premultiplied RGBA, the layout
// ebiten expects for pixel uploads. buf must hold 4*w*h bytes.
func premultiplyNRGBA(buf []byte, src *image.NRGBA) {
	b := src.Rect
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		out := buf[y*w*4:]
		for x := 0; x < w; x++ {
			i := x * 4
			a := uint32(row[i+3])
			switch a {
			case 0xff:
				out[i+0], out[i+1], out[i+2], out[i+3] = row[i+0], row[i+1], row[i+2], 0xff
			case 0:
				out[i+0], out[i+1], out[i+2], out[i+3] = 0, 0, 0, 0
			default:
				out[i+0] = uint8((uint32(row[i+0])*a + 127) / 255)
				out[i+1] = uint8((uint32(row[i+1])*a + 127) / 255)
				out[i+2] = uint8((uint32(row[i+2])*a + 127) / 255)
				out[i+3] = uint8(a)
			}
		}
	}
}

// fillChecker paints a two-tone checkerboard used behind transparent pixels.
func fillChecker(buf []byte, w, h, cell int, light, dark uint8) {
	if cell <= 0 {
		cell = 8
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := dark
			if ((x/cell)+(y/cell))%2 == 0 {
				v = light
			}
			i := (y*w + x) * 4
			buf[i+0], buf[i+1], buf[i+2], buf[i+3] = v, v, v, 0xff
		}
	}
}
