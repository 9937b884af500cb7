package imgproc

import "image"

// Match is the outcome of searching the bottom-right ROI of an image for a
// template.
type Match struct {
	Score    float64         // Maximum normalized correlation coefficient
	Location image.Point     // Offset of the best alignment, relative to ROI.Min
	ROI      image.Rectangle // Searched region, in image coordinates
	Template image.Point     // Template width and height
}

// Matcher loads an image and a template and returns the best match of the
// template inside the image's bottom-right ROI.
type Matcher interface {
	Match(imagePath, templatePath string) (Match, error)
}
