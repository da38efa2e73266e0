package region

import (
	"errors"
	"image"
	"image/color"

	"silhouette-maker/internal/colordist"
)

// ErrEmptyImage reports an input with zero width or height.
var ErrEmptyImage = errors.New("region: empty image")

// Label classifies one cell of the grid.
type Label uint8

const (
	// Unvisited is the zero value; Classify leaves none behind.
	Unvisited Label = iota
	// Background is reachable from a corner through similar or
	// near-transparent pixels.
	Background
	// Subject covers the subject body and any enclosed holes.
	Subject
)

// Grid is a flat row-major label grid matching an image's dimensions.
type Grid struct {
	W, H   int
	Labels []Label
}

// At returns the label at (x, y).
func (g *Grid) At(x, y int) Label {
	return g.Labels[y*g.W+x]
}

// Options control background matching. The zero value selects the
// Manhattan metric with its default tolerance and no alpha rule;
// DefaultOptions returns the settings the CLI uses.
type Options struct {
	// Tolerance is the similarity threshold. Zero or negative selects
	// the metric's calibrated default.
	Tolerance float64
	// AlphaCutoff treats pixels with alpha below it as background-like
	// regardless of color. Zero disables the rule.
	AlphaCutoff uint8
	// Metric selects the distance function.
	Metric colordist.Metric
}

// DefaultOptions returns the conversion settings used when no knobs are set.
func DefaultOptions() Options {
	return Options{
		Tolerance:   colordist.DefaultTolerance(colordist.Manhattan),
		AlphaCutoff: 10,
		Metric:      colordist.Manhattan,
	}
}

// Classify labels every pixel as Background or Subject by flood-filling
// from the four image corners. Each corner seed matches neighbors against
// its own corner color, so differently colored corners (a gradient
// background) each absorb their own region. Anything the fill cannot
// reach, including background-colored patches fully enclosed by the
// subject, ends up as Subject.
func Classify(img *image.NRGBA, opts Options) (*Grid, error) {
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

	// 4-connected neighborhood, no diagonals
	dx := [4]int{0, -1, 1, 0}
	dy := [4]int{-1, 0, 0, 1}

	seeds := [4][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}}

	queue := make([]int, 0, 1024)

	for _, s := range seeds {
		sx, sy := s[0], s[1]
		idx := sy*w + sx
		if g.Labels[idx] != Unvisited {
			// Corners coincide on 1-wide or 1-tall images, or an
			// earlier fill already swept this one.
			continue
		}

		ref := pixAt(img, sx, sy)

		g.Labels[idx] = Background
		queue = queue[:0]
		queue = append(queue, idx)

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]

			cy := curr / w
			cx := curr % w
			for d := 0; d < 4; d++ {
				nx := cx + dx[d]
				ny := cy + dy[d]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if g.Labels[ni] != Unvisited {
					continue
				}
				p := pixAt(img, nx, ny)
				if colordist.NearTransparent(p, opts.AlphaCutoff) ||
					opts.Metric.Similar(p, ref, tol) {
					g.Labels[ni] = Background
					queue = append(queue, ni)
				}
			}
		}
	}

	// Whatever the fills never reached is subject mass, enclosed
	// holes included.
	for i, l := range g.Labels {
		if l == Unvisited {
			g.Labels[i] = Subject
		}
	}

	return g, nil
}

func pixAt(img *image.NRGBA, x, y int) color.NRGBA {
	i := y*img.Stride + x*4
	return color.NRGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
}
