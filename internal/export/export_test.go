package export

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestPathFor(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, filepath.Join("root", "photo", "1700000000123.jpg"), PathFor("root", now, "jpg"))
}

func TestSaveJPEGRoundTripKeepsDimensions(t *testing.T) {
	root := t.TempDir()
	now := time.UnixMilli(42)

	path, err := Save(root, testImage(123, 77), JPEG{Quality: 70}, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "photo", "42.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 123, 77), img.Bounds())
}

func TestSavePDF(t *testing.T) {
	root := t.TempDir()
	path, err := Save(root, testImage(200, 100), PDF{Quality: 70}, time.UnixMilli(7))
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "/DCTDecode")

	pages, err := api.PageCountFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)

	dims, err := api.PageDimsFile(path)
	require.NoError(t, err)
	require.Len(t, dims, 1)
	assert.InDelta(t, 200, dims[0].Width, 0.01)
	assert.InDelta(t, 100, dims[0].Height, 0.01)
}

func TestSaveFailsWhenRootIsAFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	path, err := Save(root, testImage(4, 4), JPEG{}, time.Now())
	assert.Error(t, err)
	assert.Empty(t, path)
}

func TestPDFRejectsEmptyImage(t *testing.T) {
	root := t.TempDir()
	path, err := Save(root, image.NewRGBA(image.Rect(0, 0, 0, 0)), PDF{}, time.UnixMilli(1))
	assert.Error(t, err)
	assert.Empty(t, path)
	_, statErr := os.Stat(filepath.Join(root, "photo", "1.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestForFormat(t *testing.T) {
	enc, err := ForFormat("jpg", 70)
	require.NoError(t, err)
	assert.Equal(t, JPEG{Quality: 70}, enc)

	enc, err = ForFormat("pdf", 80)
	require.NoError(t, err)
	assert.Equal(t, "pdf", enc.Ext())

	_, err = ForFormat("gif", 70)
	assert.Error(t, err)
}

func TestQualityFallback(t *testing.T) {
	assert.Equal(t, DefaultQuality, quality(0))
	assert.Equal(t, DefaultQuality, quality(101))
	assert.Equal(t, 55, quality(55))
}
