package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/jung-kurt/gofpdf"
)

// PDF writes a single page the size of the image (one point per pixel)
// with the image embedded as JPEG.
type PDF struct {
	Quality int
}

func (PDF) Ext() string { return "pdf" }

func (p PDF) Write(path string, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("export: empty image")
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality(p.Quality)}); err != nil {
		return fmt.Errorf("export: encode jpeg: %w", err)
	}

	w, h := float64(b.Dx()), float64(b.Dy())
	// "P" keeps Wd/Ht as given; "L" would swap them
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	doc.RegisterImageOptionsReader("sketch", opts, &buf)
	doc.ImageOptions("sketch", 0, 0, w, h, false, opts, 0, "")

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}
