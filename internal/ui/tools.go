package ui

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PhotoSketch/internal/host"
	"PhotoSketch/internal/state"
)

const (
	labelEraser = "Eraser"
	labelDraw   = "Draw"
)

// --- Swatch showing the ink the next stroke will use ---
type colorSwatch struct {
	widget.BaseWidget
	rect     *canvas.Rectangle
	OnTapped func()
}

func newColorSwatch(c color.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{rect: canvas.NewRectangle(c), OnTapped: tapped}
	s.rect.SetMinSize(fyne.NewSize(32, 32))
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) SetColor(c color.Color) {
	s.rect.FillColor = c
	s.rect.Refresh()
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(s.rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

// controlBar holds the three commands: toggle eraser, choose image, save.
type controlBar struct {
	ctrl    *host.Controller
	palette state.Palette

	eraser *widget.Button
	choose *widget.Button
	save   *widget.Button
	swatch *colorSwatch

	// onSaved is called on the UI goroutine after every save attempt.
	onSaved func(path string, err error)
}

func newControlBar(ctrl *host.Controller, palette state.Palette) *controlBar {
	b := &controlBar{ctrl: ctrl, palette: palette}
	b.eraser = widget.NewButtonWithIcon(labelEraser, theme.ContentClearIcon(), b.toggleEraser)
	b.choose = widget.NewButtonWithIcon("Choose image", theme.FileImageIcon(), ctrl.RequestImageImport)
	b.save = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), b.saveImage)
	b.swatch = newColorSwatch(palette.Foreground, b.toggleEraser)
	return b
}

func (b *controlBar) toggleEraser() {
	if b.ctrl.ToggleEraser() {
		b.eraser.SetText(labelDraw)
		b.eraser.SetIcon(theme.DocumentCreateIcon())
		b.swatch.SetColor(b.palette.Background)
		return
	}
	b.eraser.SetText(labelEraser)
	b.eraser.SetIcon(theme.ContentClearIcon())
	b.swatch.SetColor(b.palette.Foreground)
}

// saveImage keeps the button disabled until the export finished, so one
// tap produces at most one file.
func (b *controlBar) saveImage() {
	b.save.Disable()
	b.ctrl.ExportAndSaveAsync(context.Background(), func(path string, err error) {
		fyne.Do(func() {
			b.save.Enable()
			if b.onSaved != nil {
				b.onSaved(path, err)
			}
		})
	})
}

func (b *controlBar) CanvasObject() fyne.CanvasObject {
	return container.NewHBox(
		b.swatch,
		b.eraser,
		widget.NewSeparator(),
		b.choose,
		b.save,
		layout.NewSpacer(),
	)
}
