package imgproc

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// imaging registers jpeg, png, gif, bmp and tiff; add webp.
	_ "golang.org/x/image/webp"
)

// NativeMatcher matches in pure Go, without OpenCV.
type NativeMatcher struct {
	cfg Config
}

func NewNativeMatcher(cfg Config) (*NativeMatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &NativeMatcher{cfg: cfg}, nil
}

func (m *NativeMatcher) Match(imagePath, templatePath string) (Match, error) {
	img, err := loadColor(imagePath, InputImage)
	if err != nil {
		return Match{}, err
	}
	tmpl, err := loadColor(templatePath, InputTemplate)
	if err != nil {
		return Match{}, err
	}

	roiRect := BottomRightROI(img.Bounds(), m.cfg.CropWidth, m.cfg.CropHeight)
	tmplSize := tmpl.Bounds().Size()
	if err := CheckFits(roiRect.Size(), tmplSize); err != nil {
		return Match{}, err
	}

	roiGrey := m.cfg.Luma.ToGray(imaging.Crop(img, roiRect))
	tmplGrey := m.cfg.Luma.ToGray(tmpl)

	sim, err := Correlate(roiGrey, tmplGrey)
	if err != nil {
		return Match{}, err
	}
	score, loc := sim.Max()

	return Match{Score: score, Location: loc, ROI: roiRect, Template: tmplSize}, nil
}

// loadColor decodes path, applying EXIF orientation like OpenCV's imread.
func loadColor(path string, input Input) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &LoadError{Input: input, Path: path, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, &LoadError{Input: input, Path: path, Err: errors.New("empty image")}
	}
	return img, nil
}
