// Package host connects the drawing surface to the outside world: storage
// permission, the image picker, decoding imported pictures and writing
// exports. Every failure is handled here and reported to the user; none of
// them is fatal.
package host

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"
	"time"

	"PhotoSketch/internal/export"
	"PhotoSketch/internal/imaging"
	"PhotoSketch/internal/logging"
	"PhotoSketch/internal/state"
	"PhotoSketch/internal/surface"
)

var (
	ErrPermissionDenied = errors.New("host: storage permission denied")
	ErrDecode           = errors.New("host: image could not be loaded")
	ErrCapture          = errors.New("host: drawing could not be captured")
	ErrWrite            = errors.New("host: image could not be written")
)

// User-visible messages.
const (
	MsgPermissionDenied = "Permission denied"
	MsgImageNotLoaded   = "Image is not loaded"
	MsgCaptureFailed    = "Could not capture the drawing, try again"
	MsgWriteFailed      = "Could not save the image"
	MsgSavedPrefix      = "Image saved at "
)

// Handle identifies a picture chosen in the picker, such as a URI.
type Handle string

// PermissionGate guards read access to the user's pictures.
type PermissionGate interface {
	Granted() bool
	// Request asks the user; done receives the answer.
	Request(done func(granted bool))
}

// Picker lets the user choose a picture. done receives an empty handle when
// the user cancels.
type Picker interface {
	Pick(done func(h Handle, err error))
}

// Resolver opens the byte stream behind a handle.
type Resolver interface {
	Open(h Handle) (io.ReadCloser, error)
}

type Notifier interface {
	Notify(msg string)
}

// Drawing is the part of the surface the controller drives.
type Drawing interface {
	AttachImage(img image.Image)
	Capture(c surface.Capturer) <-chan surface.CaptureResult
	ToggleEraser() bool
	EraserActive() bool
	Extent() state.Rect
}

type Options struct {
	// DisplayWidth/DisplayHeight size the import bounds together with the
	// fractions: by default half the width and a quarter of the height.
	DisplayWidth   int
	DisplayHeight  int
	WidthFraction  float64
	HeightFraction float64

	Dir            string // app-private directory; exports go to Dir/photo
	Encoder        export.Encoder
	CaptureTimeout time.Duration

	Now    func() time.Time
	Logger *slog.Logger
}

type Controller struct {
	drawing  Drawing
	perms    PermissionGate
	picker   Picker
	resolver Resolver
	notifier Notifier
	capturer surface.Capturer

	mu   sync.Mutex // guards opts.DisplayWidth/DisplayHeight
	opts Options
	log  *slog.Logger

	// OnFailure, if set, receives every handled failure.
	OnFailure func(error)
}

func NewController(d Drawing, perms PermissionGate, picker Picker, resolver Resolver, n Notifier, opts Options) *Controller {
	if opts.WidthFraction <= 0 {
		opts.WidthFraction = 0.5
	}
	if opts.HeightFraction <= 0 {
		opts.HeightFraction = 0.25
	}
	if opts.Encoder == nil {
		opts.Encoder = export.JPEG{Quality: export.DefaultQuality}
	}
	if opts.CaptureTimeout <= 0 {
		opts.CaptureTimeout = 3 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	l := opts.Logger
	if l == nil {
		l = logging.Nop()
	}
	return &Controller{
		drawing:  d,
		perms:    perms,
		picker:   picker,
		resolver: resolver,
		notifier: n,
		opts:     opts,
		log:      l,
	}
}

// SetCapturer installs the display capture path. Without one, exports are
// rendered off-screen.
func (c *Controller) SetCapturer(cp surface.Capturer) {
	c.capturer = cp
}

// SetDisplaySize updates the size the import bounds are derived from.
func (c *Controller) SetDisplaySize(w, h int) {
	c.mu.Lock()
	c.opts.DisplayWidth, c.opts.DisplayHeight = w, h
	c.mu.Unlock()
}

// ImportBounds returns the maximum size an imported picture is reduced to.
func (c *Controller) ImportBounds() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(float64(c.opts.DisplayWidth) * c.opts.WidthFraction),
		int(float64(c.opts.DisplayHeight) * c.opts.HeightFraction)
}

func (c *Controller) notify(msg string) {
	if c.notifier != nil {
		c.notifier.Notify(msg)
	}
}

func (c *Controller) fail(err error, msg string) error {
	c.log.Warn("[HOST] "+msg, "err", err)
	c.notify(msg)
	if c.OnFailure != nil {
		c.OnFailure(err)
	}
	return err
}

// ToggleEraser flips eraser mode and returns the new state, for the
// control bar's label.
func (c *Controller) ToggleEraser() bool {
	return c.drawing.ToggleEraser()
}

// RequestImageImport opens the picker, asking for storage permission first
// if it was not granted yet. A denial is reported and not retried.
func (c *Controller) RequestImageImport() {
	if c.perms == nil || c.perms.Granted() {
		c.pick()
		return
	}
	c.perms.Request(func(granted bool) {
		if !granted {
			_ = c.fail(ErrPermissionDenied, MsgPermissionDenied)
			return
		}
		c.log.Info("[HOST] storage permission granted")
		c.pick()
	})
}

func (c *Controller) pick() {
	c.picker.Pick(func(h Handle, err error) {
		if err != nil {
			_ = c.fail(fmt.Errorf("%w: picker: %w", ErrDecode, err), MsgImageNotLoaded)
			return
		}
		if h == "" {
			c.log.Debug("[HOST] image selection cancelled")
			return
		}
		_ = c.OnImageSelected(h)
	})
}

// OnImageSelected decodes the chosen picture, reduced to the import bounds,
// and attaches it to the surface. On failure the surface is untouched.
func (c *Controller) OnImageSelected(h Handle) error {
	reqW, reqH := c.ImportBounds()
	d, err := imaging.Decode(func() (io.ReadCloser, error) {
		return c.resolver.Open(h)
	}, reqW, reqH)
	if err != nil {
		return c.fail(fmt.Errorf("%w: %w", ErrDecode, err), MsgImageNotLoaded)
	}
	b := d.Image.Bounds()
	c.log.Info("[HOST] image imported",
		"handle", string(h),
		"format", d.Format,
		"source", fmt.Sprintf("%dx%d", d.Source.X, d.Source.Y),
		"factor", d.Factor,
		"size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))
	c.drawing.AttachImage(d.Image)
	return nil
}

// ExportAndSave captures the surface, waits for the frame and writes it.
// It must be called on the surface's goroutine and blocks until done, so it
// is only suitable when the capture path does not need that goroutine.
func (c *Controller) ExportAndSave(ctx context.Context) (string, error) {
	return c.finishExport(ctx, c.capture())
}

func (c *Controller) capture() <-chan surface.CaptureResult {
	if ext := c.drawing.Extent(); ext.Empty() {
		c.log.Info("[HOST] exporting a blank drawing")
	} else {
		c.log.Debug("[HOST] exporting", "extent", ext)
	}
	return c.drawing.Capture(c.capturer)
}

// ExportAndSaveAsync issues the capture on the calling goroutine and does
// the waiting and file writing in the background. done may be nil.
func (c *Controller) ExportAndSaveAsync(ctx context.Context, done func(path string, err error)) {
	ch := c.capture()
	go func() {
		path, err := c.finishExport(ctx, ch)
		if done != nil {
			done(path, err)
		}
	}()
}

func (c *Controller) finishExport(ctx context.Context, ch <-chan surface.CaptureResult) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.CaptureTimeout)
	defer cancel()

	img, err := surface.Await(ctx, ch)
	if err != nil {
		return "", c.fail(fmt.Errorf("%w: %w", ErrCapture, err), MsgCaptureFailed)
	}
	path, err := export.Save(c.opts.Dir, img, c.opts.Encoder, c.opts.Now())
	if err != nil {
		return "", c.fail(fmt.Errorf("%w: %w", ErrWrite, err), MsgWriteFailed)
	}
	c.log.Info("[HOST] image saved", "path", path)
	c.notify(MsgSavedPrefix + path)
	return path, nil
}
