// Package watermark decides whether a watermark template appears in the
// bottom-right corner of an image.
//
// The corner region is compared against the template with zero-mean
// normalized cross-correlation; the best coefficient is the match confidence
// and the watermark is considered present when it reaches the threshold.
package watermark
