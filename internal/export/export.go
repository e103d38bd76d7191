package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// PhotoDir is the sub-directory of the app directory that holds exports.
const PhotoDir = "photo"

// Encoder writes one image to a file.
type Encoder interface {
	Ext() string
	Write(path string, img image.Image) error
}

// ForFormat returns the encoder for a configured format name.
func ForFormat(format string, quality int) (Encoder, error) {
	switch format {
	case "", "jpg", "jpeg":
		return JPEG{Quality: quality}, nil
	case "pdf":
		return PDF{Quality: quality}, nil
	}
	return nil, fmt.Errorf("export: unknown format %q", format)
}

// PathFor returns <root>/photo/<epoch-millis>.<ext>. Two exports within the
// same millisecond get the same name.
func PathFor(root string, now time.Time, ext string) string {
	name := strconv.FormatInt(now.UnixMilli(), 10) + "." + ext
	return filepath.Join(root, PhotoDir, name)
}

// Save encodes img into a timestamp-named file below root, creating the
// photo directory if needed, and returns the file's absolute path.
func Save(root string, img image.Image, enc Encoder, now time.Time) (string, error) {
	path, err := filepath.Abs(PathFor(root, now, enc.Ext()))
	if err != nil {
		return "", fmt.Errorf("export: resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("export: create directory: %w", err)
	}
	if err := enc.Write(path, img); err != nil {
		// best effort: do not leave a half-written file behind
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}
