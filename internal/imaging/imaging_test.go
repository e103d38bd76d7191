package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleSize(t *testing.T) {
	tests := []struct {
		name             string
		w, h, reqW, reqH int
		want             int
	}{
		{"large photo", 4000, 3000, 1000, 500, 4},
		{"fits already", 500, 400, 1000, 500, 1},
		{"exact bounds", 1000, 500, 1000, 500, 1},
		{"only width too big", 1500, 100, 1000, 500, 1},
		{"half rounds away from zero", 2500, 5000, 1000, 1000, 3},
		{"below half rounds down", 2400, 2400, 1000, 1000, 2},
		{"portrait", 3000, 4000, 540, 480, 6},
		{"degenerate bounds", 100, 100, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SampleSize(tt.w, tt.h, tt.reqW, tt.reqH))
		})
	}
}

func TestSubsampleLargePhoto(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4000, 3000))
	f := SampleSize(4000, 3000, 1000, 500)
	out := Subsample(src, f)

	assert.Equal(t, image.Rect(0, 0, 1000, 750), out.Bounds())
	assert.GreaterOrEqual(t, out.Bounds().Dx(), 1000)
	assert.GreaterOrEqual(t, out.Bounds().Dy(), 500)
}

func TestSubsampleNoop(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 500, 400))
	out := Subsample(src, SampleSize(500, 400, 1000, 500))
	assert.Same(t, src, out.(*image.Gray))
}

func TestSubsampleKeepsOnePixelPerBlock(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			src.SetGray(x, y, color.Gray{Y: uint8(10*y + x)})
		}
	}
	out := Subsample(src, 2)
	require.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())

	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			r, _, _, _ := out.At(i, j).RGBA()
			v := int(r >> 8)
			x, y := v%10, v/10
			assert.Contains(t, []int{2 * i, 2*i + 1}, x)
			assert.Contains(t, []int{2 * j, 2*j + 1}, y)
		}
	}
}

func TestSubsampledSizeNeverZero(t *testing.T) {
	w, h := SubsampledSize(3, 100, 8)
	assert.Equal(t, 1, w)
	assert.Equal(t, 12, h)
}

func opener(data []byte, opens *int) Opener {
	return func() (io.ReadCloser, error) {
		*opens++
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

func TestDecodeDownsamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48))))

	opens := 0
	d, err := Decode(opener(buf.Bytes(), &opens), 16, 16)
	require.NoError(t, err)

	assert.Equal(t, 2, opens)
	assert.Equal(t, "png", d.Format)
	assert.Equal(t, image.Pt(64, 48), d.Source)
	assert.Equal(t, 3, d.Factor)
	assert.Equal(t, image.Rect(0, 0, 21, 16), d.Image.Bounds())
}

func TestDecodeJPEGWithinBounds(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 30, 20)), nil))

	opens := 0
	d, err := Decode(opener(buf.Bytes(), &opens), 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Factor)
	assert.Equal(t, "jpeg", d.Format)
	assert.Equal(t, image.Rect(0, 0, 30, 20), d.Image.Bounds())
}

func TestDecodeFailures(t *testing.T) {
	opens := 0
	_, err := Decode(opener([]byte("definitely not an image"), &opens), 10, 10)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, 1, opens)

	_, err = Decode(func() (io.ReadCloser, error) {
		return nil, errors.New("no such content")
	}, 10, 10)
	assert.ErrorIs(t, err, ErrDecode)

	// valid header, truncated pixels
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48))))
	truncated := buf.Bytes()[:60]
	opens = 0
	_, err = Decode(opener(truncated, &opens), 10, 10)
	assert.ErrorIs(t, err, ErrDecode)
}
