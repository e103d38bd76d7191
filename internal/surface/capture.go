package surface

import (
	"context"
	"errors"
	"fmt"
	"image"
)

var (
	// ErrCaptureRejected is reported when the display refuses the capture,
	// or hands back a frame that does not match the surface.
	ErrCaptureRejected = errors.New("surface: capture rejected")

	// ErrCaptureTimeout is returned by Await when no result arrived in time.
	ErrCaptureTimeout = errors.New("surface: capture timed out")
)

// Capturer grabs what is currently on screen for the surface. The returned
// image must be exactly the surface's native size.
type Capturer interface {
	Capture() (image.Image, error)
}

// CapturerFunc adapts a function to Capturer.
type CapturerFunc func() (image.Image, error)

func (f CapturerFunc) Capture() (image.Image, error) { return f() }

// CaptureResult is the outcome of one capture request.
type CaptureResult struct {
	Image *image.RGBA
	Err   error
}

// Capture rasterizes the surface asynchronously. With a nil Capturer the
// surface is rendered off-screen right away; otherwise the display capture
// runs on its own goroutine.
//
// The returned channel yields at most one result and is then closed. A
// failed capture is not retried.
func (s *Surface) Capture(c Capturer) <-chan CaptureResult {
	out := make(chan CaptureResult, 1)
	if c == nil {
		// the off-screen frame must be produced on the surface's goroutine
		img := s.ExportBitmap()
		out <- CaptureResult{Image: img}
		close(out)
		return out
	}

	w, h := s.width, s.height
	go func() {
		defer close(out)
		img, err := c.Capture()
		if err != nil {
			logger().Warn("[SURFACE] display capture failed", "err", err)
			out <- CaptureResult{Err: fmt.Errorf("%w: %v", ErrCaptureRejected, err)}
			return
		}
		b := img.Bounds()
		if b.Dx() != w || b.Dy() != h {
			out <- CaptureResult{Err: fmt.Errorf("%w: got %dx%d, want %dx%d",
				ErrCaptureRejected, b.Dx(), b.Dy(), w, h)}
			return
		}
		out <- CaptureResult{Image: toRGBA(img)}
	}()
	return out
}

// Await blocks until the capture delivers or ctx is done. A channel closed
// without a value counts as a timeout as well.
func Await(ctx context.Context, ch <-chan CaptureResult) (*image.RGBA, error) {
	select {
	case res, ok := <-ch:
		if !ok {
			return nil, ErrCaptureTimeout
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Image, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrCaptureTimeout, ctx.Err())
	}
}
