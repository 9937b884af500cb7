package cmd

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaniruKun/watermark-detector/imgproc"
	"github.com/DaniruKun/watermark-detector/internal/testimage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func fixtures(t *testing.T) (string, string) {
	t.Helper()
	tmpl := testimage.Patterned(50, 20)
	img := testimage.Noise(200, 200, 13)
	testimage.Paste(img, tmpl, image.Pt(130, 160))
	return testimage.WritePNG(t, "generated_image.png", img), testimage.WritePNG(t, "grok.png", tmpl)
}

func TestRootDetects(t *testing.T) {
	imgPath, tmplPath := fixtures(t)

	out, err := execute(t, "-i", imgPath, "-t", tmplPath, "-b", "native", "--threshold", "0.8")
	require.NoError(t, err)
	assert.Equal(t, "Watermark detected! Match confidence: 1.00\nWatermark Found: true\n", out)
}

func TestRootNoWatermark(t *testing.T) {
	_, tmplPath := fixtures(t)
	plain := testimage.WritePNG(t, "plain.png", testimage.Noise(200, 200, 99))

	out, err := execute(t, "-i", plain, "-t", tmplPath, "-b", "native", "--threshold", "0.8")
	require.NoError(t, err)
	assert.Contains(t, out, "No watermark detected. Highest match confidence: ")
	assert.Contains(t, out, "Watermark Found: false\n")
}

func TestRootConfigFile(t *testing.T) {
	imgPath, tmplPath := fixtures(t)
	cfgPath := filepath.Join(t.TempDir(), "detector.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("backend: native\nthreshold: 1.0\ncrop_width: 120\n"), 0o644))

	out, err := execute(t, "-i", imgPath, "-t", tmplPath, "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Watermark Found: true\n")
}

func TestRootErrors(t *testing.T) {
	imgPath, tmplPath := fixtures(t)
	missing := filepath.Join(t.TempDir(), "generated_image.jpg")

	_, err := execute(t, "-i", missing, "-t", tmplPath, "-b", "native")
	assert.True(t, errors.Is(err, imgproc.ErrLoad))
	assert.Contains(t, err.Error(), missing)

	_, err = execute(t, "-i", imgPath, "-t", tmplPath, "-b", "gpu")
	assert.True(t, errors.Is(err, imgproc.ErrInvalidConfig))
}
