package preprocess

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Blur softens the image before classification so sensor and compression
// noise stops flipping individual pixels across the tolerance boundary.
// A sigma at or below zero returns the input untouched.
func Blur(img *image.NRGBA, sigma float64) *image.NRGBA {
	if sigma <= 0 {
		return img
	}
	return imaging.Blur(img, sigma)
}

// Downscale resizes img so its longest side is at most maxSide, keeping
// the aspect ratio. Images already inside the limit come back untouched.
func Downscale(img *image.NRGBA, maxSide int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	nw, nh := maxSide, maxSide
	if w >= h {
		nh = h * maxSide / w
	} else {
		nw = w * maxSide / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
