// Package cvmatch matches templates with OpenCV through gocv.
package cvmatch

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/DaniruKun/watermark-detector/imgproc"
)

// Matcher runs the bottom-right template search with OpenCV's
// TM_CCOEFF_NORMED. OpenCV converts colour to grey with fixed BT.601 weights,
// so other luma weights are rejected.
type Matcher struct {
	cfg imgproc.Config
}

func New(cfg imgproc.Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Luma != imgproc.BT601 {
		return nil, errors.Wrapf(imgproc.ErrInvalidConfig, "opencv backend only supports BT.601 luma, got %+v", cfg.Luma)
	}
	return &Matcher{cfg: cfg}, nil
}

func (m *Matcher) Match(imagePath, templatePath string) (imgproc.Match, error) {
	img, err := readColor(imagePath, imgproc.InputImage)
	if err != nil {
		return imgproc.Match{}, err
	}
	defer img.Close()

	tmpl, err := readColor(templatePath, imgproc.InputTemplate)
	if err != nil {
		return imgproc.Match{}, err
	}
	defer tmpl.Close()

	bounds := image.Rect(0, 0, img.Cols(), img.Rows())
	roiRect := imgproc.BottomRightROI(bounds, m.cfg.CropWidth, m.cfg.CropHeight)
	tmplSize := image.Pt(tmpl.Cols(), tmpl.Rows())
	if err := imgproc.CheckFits(roiRect.Size(), tmplSize); err != nil {
		return imgproc.Match{}, err
	}

	roi := img.Region(roiRect)
	defer roi.Close()

	roiGrey := gocv.NewMat()
	defer roiGrey.Close()
	gocv.CvtColor(roi, &roiGrey, gocv.ColorBGRToGray)

	tmplGrey := gocv.NewMat()
	defer tmplGrey.Close()
	gocv.CvtColor(tmpl, &tmplGrey, gocv.ColorBGRToGray)

	res := imgproc.Match{ROI: roiRect, Template: tmplSize}

	// OpenCV reports 1 everywhere for a template without variance; treat it as
	// carrying no structure instead.
	if isFlat(tmplGrey.ToBytes()) {
		return res, nil
	}

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(roiGrey, tmplGrey, &result, gocv.TmCcoeffNormed, mask)
	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

	res.Score = float64(maxVal)
	res.Location = maxLoc
	return res, nil
}

func readColor(path string, input imgproc.Input) (gocv.Mat, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, &imgproc.LoadError{Input: input, Path: path}
	}
	return mat, nil
}

func isFlat(pix []byte) bool {
	for _, v := range pix {
		if v != pix[0] {
			return false
		}
	}
	return true
}
