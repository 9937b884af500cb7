package imgproc

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCropWidth  = 100 // Width of the bottom-right region searched for the watermark
	DefaultCropHeight = 50  // Height of the bottom-right region searched for the watermark
	DefaultThreshold  = 0.8
)

// Backend names the template matching implementation.
type Backend string

const (
	BackendOpenCV Backend = "opencv"
	BackendNative Backend = "native"
)

type Config struct {
	CropWidth  int         `yaml:"crop_width"`  // ROI width, anchored at the right edge
	CropHeight int         `yaml:"crop_height"` // ROI height, anchored at the bottom edge
	Threshold  float64     `yaml:"threshold"`   // Used when the caller does not supply a threshold
	Backend    Backend     `yaml:"backend"`     // `opencv` or `native`
	Luma       LumaWeights `yaml:"luma"`        // Colour to grey reduction weights
}

// DefaultConfig returns the configuration matching the reference detector:
// a 100x50 crop, BT.601 luma and the OpenCV backend.
func DefaultConfig() Config {
	return Config{
		CropWidth:  DefaultCropWidth,
		CropHeight: DefaultCropHeight,
		Threshold:  DefaultThreshold,
		Backend:    BackendOpenCV,
		Luma:       BT601,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.CropWidth <= 0 || c.CropHeight <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "crop size must be positive, got %dx%d", c.CropWidth, c.CropHeight)
	}
	switch c.Backend {
	case BackendOpenCV, BackendNative:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown backend %q", c.Backend)
	}
	if c.Luma.R < 0 || c.Luma.G < 0 || c.Luma.B < 0 {
		return errors.Wrapf(ErrInvalidConfig, "luma weights must be non-negative, got %+v", c.Luma)
	}
	if sum := c.Luma.R + c.Luma.G + c.Luma.B; math.Abs(sum-1) > 1e-6 {
		return errors.Wrapf(ErrInvalidConfig, "luma weights must sum to 1, got %.6f", sum)
	}
	return nil
}

// LoadConfig reads a YAML config file on top of DefaultConfig. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), errors.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}
