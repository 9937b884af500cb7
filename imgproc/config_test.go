package imgproc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detector.yaml")
	data := []byte("crop_width: 160\nthreshold: 0.5\nbackend: native\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 160, cfg.CropWidth)
	assert.Equal(t, DefaultCropHeight, cfg.CropHeight)
	assert.Equal(t, 0.5, cfg.Threshold)
	assert.Equal(t, BackendNative, cfg.Backend)
	assert.Equal(t, BT601, cfg.Luma)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"malformed":       "crop_width: [",
		"unknown backend": "backend: cuda\n",
		"negative crop":   "crop_height: -5\n",
		"bad weights":     "luma: {r: 0.5, g: 0.5, b: 0.5}\n",
	}

	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "detector.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Luma = LumaWeights{R: -0.1, G: 1.0, B: 0.1}
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
}
