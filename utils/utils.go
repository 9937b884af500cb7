package utils

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultImagePath    = "generated_image.jpg"
	DefaultTemplatePath = "grok.jpg"
)

// Expands a leading `~/` to the user's home directory. Other paths, and paths
// when the home directory is unknown, are returned unchanged.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
