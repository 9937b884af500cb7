package imgproc

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

var (
	ErrLoad          = errors.New("image could not be read")
	ErrDimension     = errors.New("region of interest is smaller than the template")
	ErrInvalidConfig = errors.New("invalid config")
)

// Input identifies which of the two inputs an error refers to.
type Input string

const (
	InputImage    Input = "image"
	InputTemplate Input = "template"
)

// LoadError is returned when an input path does not decode to a colour image.
type LoadError struct {
	Input Input
	Path  string
	Err   error // underlying cause, may be nil
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("could not read %s from %s", e.Input, e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// DimensionError is returned when the template does not fit inside the ROI.
type DimensionError struct {
	ROI      image.Point
	Template image.Point
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("region of interest %dx%d is smaller than template %dx%d",
		e.ROI.X, e.ROI.Y, e.Template.X, e.Template.Y)
}

func (e *DimensionError) Is(target error) bool { return target == ErrDimension }

// CheckFits returns a DimensionError unless tmpl fits inside roi on both axes.
func CheckFits(roi, tmpl image.Point) error {
	if tmpl.X <= 0 || tmpl.Y <= 0 || roi.X < tmpl.X || roi.Y < tmpl.Y {
		return &DimensionError{ROI: roi, Template: tmpl}
	}
	return nil
}
