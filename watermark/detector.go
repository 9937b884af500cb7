package watermark

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/DaniruKun/watermark-detector/imgproc"
)

// Result is the outcome of one detection.
type Result struct {
	imgproc.Match
	Threshold float64
	Present   bool
}

// Report renders the one-line status for the result.
func (r Result) Report() string {
	if r.Present {
		return fmt.Sprintf("Watermark detected! Match confidence: %.2f", r.Score)
	}
	return fmt.Sprintf("No watermark detected. Highest match confidence: %.2f", r.Score)
}

// Detector turns a match into a decision and reports it. It keeps no state
// between calls and is safe for concurrent use if its matcher and output are.
type Detector struct {
	matcher imgproc.Matcher
	out     io.Writer
	log     zerolog.Logger
}

type Option func(*Detector)

// WithOutput sets where status lines are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Detector) { d.out = w }
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Detector) { d.log = l }
}

func NewDetector(m imgproc.Matcher, opts ...Option) *Detector {
	d := &Detector{matcher: m, out: os.Stdout, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect searches the bottom-right region of the image at imagePath for the
// template at templatePath. On success it writes exactly one status line; on
// failure it writes none and returns an *imgproc.LoadError or
// *imgproc.DimensionError.
func (d *Detector) Detect(imagePath, templatePath string, threshold float64) (Result, error) {
	start := time.Now()

	m, err := d.matcher.Match(imagePath, templatePath)
	if err != nil {
		d.log.Error().Err(err).
			Str("image", imagePath).
			Str("template", templatePath).
			Msg("watermark match failed")
		return Result{}, err
	}

	res := Result{Match: m, Threshold: threshold, Present: m.Score >= threshold}

	d.log.Debug().
		Str("image", imagePath).
		Str("template", templatePath).
		Str("roi", m.ROI.String()).
		Str("template_size", m.Template.String()).
		Str("location", m.Location.String()).
		Float64("score", m.Score).
		Float64("threshold", threshold).
		Bool("present", res.Present).
		Dur("duration", time.Since(start)).
		Msg("watermark match")

	fmt.Fprintln(d.out, res.Report())
	return res, nil
}

var defaultDetector struct {
	once sync.Once
	det  *Detector
	err  error
}

// DetectWatermark reports whether the template at templatePath appears in the
// default 100x50 bottom-right region of the image at imagePath, with a match
// confidence of at least threshold. It uses the pure-Go matcher and writes the
// status line to stdout.
func DetectWatermark(imagePath, templatePath string, threshold float64) (bool, error) {
	defaultDetector.once.Do(func() {
		cfg := imgproc.DefaultConfig()
		cfg.Backend = imgproc.BackendNative
		m, err := imgproc.NewNativeMatcher(cfg)
		if err != nil {
			defaultDetector.err = err
			return
		}
		defaultDetector.det = NewDetector(m)
	})
	if defaultDetector.err != nil {
		return false, defaultDetector.err
	}

	res, err := defaultDetector.det.Detect(imagePath, templatePath, threshold)
	if err != nil {
		return false, err
	}
	return res.Present, nil
}
