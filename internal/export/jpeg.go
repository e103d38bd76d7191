package export

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"os"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 70

type JPEG struct {
	Quality int
}

func (JPEG) Ext() string { return "jpg" }

func (j JPEG) Write(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality(j.Quality)}); err != nil {
		f.Close()
		return fmt.Errorf("export: encode jpeg: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}

func quality(q int) int {
	if q < 1 || q > 100 {
		return DefaultQuality
	}
	return q
}
