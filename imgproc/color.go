package imgproc

import (
	"image"
	"image/color"
	"math"
)

// LumaWeights are the per-channel coefficients of a colour to grey reduction.
type LumaWeights struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// ITU-R BT.601, the weighting OpenCV uses for BGR2GRAY
var BT601 = LumaWeights{R: 0.299, G: 0.587, B: 0.114}

// Fixed point precision of the weights, the same OpenCV uses for BGR2GRAY
const lumaShift = 14

// Reduces a single 8-bit colour to its grey intensity. The weights are applied
// in 14-bit fixed point so BT.601 results are identical to OpenCV's.
func (w LumaWeights) Gray(r, g, b uint8) uint8 {
	return w.fixed().gray(r, g, b)
}

type fixedWeights struct{ r, g, b int }

func (w LumaWeights) fixed() fixedWeights {
	scale := float64(int(1) << lumaShift)
	return fixedWeights{
		r: int(math.Round(w.R * scale)),
		g: int(math.Round(w.G * scale)),
		b: int(math.Round(w.B * scale)),
	}
}

func (f fixedWeights) gray(r, g, b uint8) uint8 {
	y := (int(r)*f.r + int(g)*f.g + int(b)*f.b + 1<<(lumaShift-1)) >> lumaShift
	if y > 255 {
		return 255
	}
	return uint8(y)
}

// Converts `img` into a single channel image with bounds starting at 0,0.
// Alpha is ignored: colour values are taken un-premultiplied, the way a colour
// decode drops the alpha channel.
func (w LumaWeights) ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	f := w.fixed()

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < b.Dx(); x++ {
				p := row[x*4 : x*4+3]
				dst.Pix[y*dst.Stride+x] = f.gray(p[0], p[1], p[2])
			}
		}
		return dst
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.Pix[y*dst.Stride+x] = f.gray(c.R, c.G, c.B)
		}
	}
	return dst
}
