package region

import (
	"image"
	"image/color"

	"silhouette-maker/internal/colordist"
)

// ClassifyGlobal labels pixels by thresholding every pixel against one
// reference color, with no connectivity analysis. Background-colored
// patches enclosed by the subject are punched out instead of filled,
// which is exactly what Classify exists to avoid; this mode is kept as
// a fallback for images where that behavior is wanted.
func ClassifyGlobal(img *image.NRGBA, ref color.NRGBA, opts Options) (*Grid, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, ErrEmptyImage
	}

	tol := opts.Tolerance
	if tol <= 0 {
		tol = colordist.DefaultTolerance(opts.Metric)
	}

	g := &Grid{W: w, H: h, Labels: make([]Label, w*h)}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pixAt(img, x, y)
			if colordist.NearTransparent(p, opts.AlphaCutoff) ||
				opts.Metric.Similar(p, ref, tol) {
				g.Labels[y*w+x] = Background
			} else {
				g.Labels[y*w+x] = Subject
			}
		}
	}

	return g, nil
}
