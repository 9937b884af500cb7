package imgproc

import (
	"image"
	"math"
)

// SimilarityMap holds one normalized correlation coefficient per offset of the
// template inside the searched region, row-major.
type SimilarityMap struct {
	Width, Height int
	Scores        []float64
}

func (m *SimilarityMap) At(x, y int) float64 {
	return m.Scores[y*m.Width+x]
}

// Max returns the highest score and its offset. Ties resolve to the first
// offset in row-major order.
func (m *SimilarityMap) Max() (float64, image.Point) {
	best, loc := math.Inf(-1), image.Point{}
	for i, s := range m.Scores {
		if s > best {
			best, loc = s, image.Point{X: i % m.Width, Y: i / m.Width}
		}
	}
	return best, loc
}

// integralImage stores summed-area tables of a grey image and of its squares,
// padded with a leading zero row and column so any window sum is four lookups.
type integralImage struct {
	sum, sumSq []float64
	stride     int
}

func newIntegralImage(g *image.Gray) *integralImage {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	ii := &integralImage{
		sum:    make([]float64, (w+1)*(h+1)),
		sumSq:  make([]float64, (w+1)*(h+1)),
		stride: w + 1,
	}
	for y := 0; y < h; y++ {
		var rowSum, rowSumSq float64
		for x := 0; x < w; x++ {
			v := float64(g.Pix[y*g.Stride+x])
			rowSum += v
			rowSumSq += v * v
			off := (y+1)*ii.stride + x + 1
			ii.sum[off] = ii.sum[off-ii.stride] + rowSum
			ii.sumSq[off] = ii.sumSq[off-ii.stride] + rowSumSq
		}
	}
	return ii
}

// window returns the sum and sum of squares over [x, x+w) x [y, y+h).
func (ii *integralImage) window(x, y, w, h int) (float64, float64) {
	a := y*ii.stride + x
	b := a + w
	c := (y+h)*ii.stride + x
	d := c + w
	return ii.sum[d] - ii.sum[b] - ii.sum[c] + ii.sum[a],
		ii.sumSq[d] - ii.sumSq[b] - ii.sumSq[c] + ii.sumSq[a]
}

// Correlate slides tmpl over every offset of roi where it fits and computes
// the zero-mean normalized cross-correlation coefficient at each one.
//
// A window or template without variance has no correlated structure and
// scores 0. Scores that rounding pushes to or just past +-1 are clamped, so an
// exact copy of the template scores 1.
func Correlate(roi, tmpl *image.Gray) (*SimilarityMap, error) {
	rw, rh := roi.Rect.Dx(), roi.Rect.Dy()
	tw, th := tmpl.Rect.Dx(), tmpl.Rect.Dy()
	if err := CheckFits(image.Pt(rw, rh), image.Pt(tw, th)); err != nil {
		return nil, err
	}

	roi = rebase(roi)
	tmpl = rebase(tmpl)

	n := float64(tw * th)
	centered := make([]float64, tw*th)
	var sumT float64
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			sumT += float64(tmpl.Pix[y*tmpl.Stride+x])
		}
	}
	meanT := sumT / n
	var normT float64
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			c := float64(tmpl.Pix[y*tmpl.Stride+x]) - meanT
			centered[y*tw+x] = c
			normT += c * c
		}
	}
	normT = math.Sqrt(normT)

	m := &SimilarityMap{Width: rw - tw + 1, Height: rh - th + 1}
	m.Scores = make([]float64, m.Width*m.Height)
	if normT == 0 {
		return m, nil
	}

	ii := newIntegralImage(roi)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			var num float64
			for py := 0; py < th; py++ {
				row := roi.Pix[(y+py)*roi.Stride+x:]
				tc := centered[py*tw : (py+1)*tw]
				for px, c := range tc {
					num += float64(row[px]) * c
				}
			}

			sumF, sumSqF := ii.window(x, y, tw, th)
			den := math.Sqrt(math.Max(sumSqF-sumF*sumF/n, 0)) * normT

			m.Scores[y*m.Width+x] = normalize(num, den)
		}
	}
	return m, nil
}

// Coefficients closer than unitEps to +-1 are reported as exactly +-1.
const unitEps = 1e-12

func normalize(num, den float64) float64 {
	switch abs := math.Abs(num); {
	case abs < den*(1-unitEps):
		return num / den
	case abs < den*1.125:
		return math.Copysign(1, num)
	default:
		return 0
	}
}

// rebase returns g with bounds starting at 0,0, copying only when needed.
func rebase(g *image.Gray) *image.Gray {
	if g.Rect.Min == (image.Point{}) {
		return g
	}
	out := image.NewGray(image.Rect(0, 0, g.Rect.Dx(), g.Rect.Dy()))
	for y := 0; y < out.Rect.Dy(); y++ {
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], g.Pix[g.PixOffset(g.Rect.Min.X, g.Rect.Min.Y+y):])
	}
	return out
}
