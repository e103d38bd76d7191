package ui

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"PhotoSketch/internal/host"
)

// imageExtensions are the picker filter; they match the decoders linked
// into the imaging package.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// sessionGate asks for access to the user's pictures with a confirmation
// dialog. A grant lasts for the session; a refusal is asked again on the
// next attempt.
type sessionGate struct {
	win     fyne.Window
	granted bool
}

func (g *sessionGate) Granted() bool { return g.granted }

func (g *sessionGate) Request(done func(bool)) {
	dialog.ShowConfirm("Photo access",
		"PhotoSketch needs to read your pictures to place one on the canvas. Allow?",
		func(ok bool) {
			g.granted = ok
			done(ok)
		}, g.win)
}

// filePicker wraps fyne's file open dialog.
type filePicker struct {
	win fyne.Window
	log *slog.Logger
}

func (p *filePicker) Pick(done func(host.Handle, error)) {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			done("", err)
			return
		}
		if rc == nil {
			done("", nil)
			return
		}
		uri := rc.URI().String()
		if cerr := rc.Close(); cerr != nil {
			p.log.Debug("[UI] closing picked file failed", "uri", uri, "err", cerr)
		}
		done(host.Handle(uri), nil)
	}, p.win)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fd.Show()
}

type uriResolver struct{}

func (uriResolver) Open(h host.Handle) (io.ReadCloser, error) {
	u, err := storage.ParseURI(string(h))
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", h, err)
	}
	return storage.Reader(u)
}

// statusNotifier shows messages in the status bar and as a system
// notification. It may be called from any goroutine.
type statusNotifier struct {
	app    fyne.App
	status *widget.Label
}

func (n *statusNotifier) Notify(msg string) {
	fyne.Do(func() {
		n.status.SetText(msg)
	})
	n.app.SendNotification(fyne.NewNotification("PhotoSketch", msg))
}

// windowCapture grabs the window and crops it to the sketch widget. It is
// called off the UI goroutine and hops onto it for the grab itself.
type windowCapture struct {
	win    fyne.Window
	sketch *SketchWidget
}

var errNotShown = errors.New("sketch is not on screen")

func (c *windowCapture) Capture() (image.Image, error) {
	var (
		frame  image.Image
		origin fyne.Position
		scale  float32
		w, h   int
	)
	fyne.DoAndWait(func() {
		frame = c.win.Canvas().Capture()
		origin = fyne.CurrentApp().Driver().AbsolutePositionForObject(c.sketch)
		scale = c.win.Canvas().Scale()
		w, h = c.sketch.Surface().Size()
	})
	if frame == nil || w <= 0 || h <= 0 {
		return nil, errNotShown
	}

	x := int(math.Round(float64(origin.X * scale)))
	y := int(math.Round(float64(origin.Y * scale)))
	r := image.Rect(x, y, x+w, y+h).Add(frame.Bounds().Min)
	if !r.In(frame.Bounds()) {
		return nil, fmt.Errorf("sketch %v outside window frame %v", r, frame.Bounds())
	}
	sub, ok := frame.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("window frame %T cannot be cropped", frame)
	}
	return sub.SubImage(r), nil
}
