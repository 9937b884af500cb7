package imgproc

import "image"

// Returns the crop rectangle anchored at the bottom-right corner of `bounds`.
// The window is `width` x `height` unless the image is smaller on an axis, in
// which case it starts at the image's edge on that axis.
func BottomRightROI(bounds image.Rectangle, width, height int) image.Rectangle {
	x0 := bounds.Max.X - width
	y0 := bounds.Max.Y - height

	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}

	return image.Rect(x0, y0, bounds.Max.X, bounds.Max.Y)
}
