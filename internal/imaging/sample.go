// Package imaging decodes imported pictures at a reduced size.
package imaging

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// SampleSize returns the integer subsampling factor for a w×h source that
// should be shown within reqW×reqH. The factor is the smaller of the rounded
// height and width ratios, so the result stays at least about as large as
// the requested bounds on both axes.
func SampleSize(w, h, reqW, reqH int) int {
	if w <= reqW && h <= reqH {
		return 1
	}
	if reqW <= 0 || reqH <= 0 {
		return 1
	}
	heightRatio := roundRatio(h, reqH)
	widthRatio := roundRatio(w, reqW)
	return max(1, min(heightRatio, widthRatio))
}

// roundRatio rounds a/b half away from zero. The ratio is computed in single
// precision like the platform decoders do.
func roundRatio(a, b int) int {
	return int(math.Round(float64(float32(a) / float32(b))))
}

// SubsampledSize is the size of a w×h image subsampled by factor.
func SubsampledSize(w, h, factor int) (int, int) {
	if factor <= 1 {
		return w, h
	}
	return max(1, w/factor), max(1, h/factor)
}

// Subsample keeps one pixel out of every factor×factor block. It is a
// blocky reduction, not a filtered resize.
func Subsample(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	w, h := SubsampledSize(b.Dx(), b.Dy(), factor)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// sample from the factor-aligned area so every output pixel maps to
	// exactly one source block
	src := image.Rect(b.Min.X, b.Min.Y, b.Min.X+w*factor, b.Min.Y+h*factor).Intersect(b)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}
