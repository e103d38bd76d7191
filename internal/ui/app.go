package ui

import (
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"PhotoSketch/internal/config"
	"PhotoSketch/internal/export"
	"PhotoSketch/internal/host"
	"PhotoSketch/internal/state"
	"PhotoSketch/internal/surface"
)

const AppID = "io.photosketch.app"

// Window is the assembled main window content, kept separate from the fyne
// app so it can be built against a test app.
type Window struct {
	Sketch  *SketchWidget
	Status  *widget.Label
	Control *host.Controller

	bar *controlBar
}

// NewWindow builds the sketch, the control bar and the host controller for
// win. dir is the app-private directory exports are written below.
func NewWindow(a fyne.App, win fyne.Window, cfg *config.Config, dir string, log *slog.Logger) (*Window, error) {
	palette := state.Palette{
		Foreground: config.MustColor(cfg.Surface.Foreground),
		Background: config.MustColor(cfg.Surface.Background),
		Width:      cfg.Surface.StrokeWidth,
	}
	s := surface.New(surface.Options{
		Palette:       palette,
		Tolerance:     cfg.Surface.TouchTolerance,
		OverlayOffset: state.Point{X: cfg.Surface.OverlayX, Y: cfg.Surface.OverlayY},
	})
	sketch := NewSketchWidget(s)

	enc, err := export.ForFormat(cfg.Export.Format, cfg.Export.Quality)
	if err != nil {
		return nil, err
	}

	status := widget.NewLabel("Ready")
	ctrl := host.NewController(s,
		&sessionGate{win: win},
		&filePicker{win: win, log: log},
		uriResolver{},
		&statusNotifier{app: a, status: status},
		host.Options{
			WidthFraction:  cfg.Import.WidthFraction,
			HeightFraction: cfg.Import.HeightFraction,
			Dir:            dir,
			Encoder:        enc,
			CaptureTimeout: time.Duration(cfg.Export.CaptureTimeout) * time.Millisecond,
			Logger:         log,
		})
	ctrl.SetCapturer(&windowCapture{win: win, sketch: sketch})

	// import bounds follow the window, measured in pixels like the surface
	sketch.OnResize = func(int, int) {
		size := win.Canvas().Size()
		scale := win.Canvas().Scale()
		ctrl.SetDisplaySize(int(size.Width*scale), int(size.Height*scale))
	}

	return &Window{
		Sketch:  sketch,
		Status:  status,
		Control: ctrl,
		bar:     newControlBar(ctrl, palette),
	}, nil
}

func (w *Window) Content() fyne.CanvasObject {
	return container.NewBorder(w.bar.CanvasObject(), w.Status, nil, nil, w.Sketch)
}

// RunApp opens the main window and blocks until it is closed.
func RunApp(cfg *config.Config, log *slog.Logger) error {
	myApp := app.NewWithID(AppID)
	myWindow := myApp.NewWindow("PhotoSketch")
	myWindow.Resize(fyne.NewSize(1024, 768))

	dir := cfg.Export.Dir
	if dir == "" {
		dir = myApp.Storage().RootURI().Path()
	}
	log.Info("[UI] starting", "export_dir", dir, "format", cfg.Export.Format)

	w, err := NewWindow(myApp, myWindow, cfg, dir, log)
	if err != nil {
		return err
	}
	myWindow.SetContent(w.Content())
	myWindow.ShowAndRun()
	return nil
}
