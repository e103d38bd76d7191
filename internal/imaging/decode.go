package imaging

import (
	"errors"
	"fmt"
	"image"
	"io"

	// decoders accepted for import
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when the picture cannot be read or parsed.
var ErrDecode = errors.New("imaging: image could not be decoded")

// Opener returns a fresh stream over the same picture each time it is
// called. Decode reads the stream twice: once for the header, once for the
// pixels.
type Opener func() (io.ReadCloser, error)

// Decoded is a picture reduced for display.
type Decoded struct {
	Image  image.Image
	Format string
	Source image.Point // width and height before subsampling
	Factor int
}

// Decode reads the picture behind open, subsampling it so it is not much
// larger than reqW×reqH.
func Decode(open Opener, reqW, reqH int) (*Decoded, error) {
	cfg, format, err := decodeConfig(open)
	if err != nil {
		return nil, err
	}
	factor := SampleSize(cfg.Width, cfg.Height, reqW, reqH)

	rc, err := open()
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrDecode, err)
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &Decoded{
		Image:  Subsample(img, factor),
		Format: format,
		Source: image.Pt(cfg.Width, cfg.Height),
		Factor: factor,
	}, nil
}

func decodeConfig(open Opener) (image.Config, string, error) {
	rc, err := open()
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: open: %v", ErrDecode, err)
	}
	defer rc.Close()

	cfg, format, err := image.DecodeConfig(rc)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Config{}, "", fmt.Errorf("%w: empty %s image", ErrDecode, format)
	}
	return cfg, format, nil
}
