package mask

import (
	"image"

	"silhouette-maker/internal/region"
)

// Render converts a label grid into a binary silhouette: background cells
// become fully transparent, everything else opaque black. NewNRGBA starts
// zeroed, so only the opaque alpha needs writing.
func Render(g *region.Grid) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Labels[y*g.W+x] == region.Background {
				continue
			}
			out.Pix[y*out.Stride+x*4+3] = 255
		}
	}
	return out
}

// Coverage returns the number of subject cells and their fraction of the grid.
func Coverage(g *region.Grid) (int, float64) {
	n := 0
	for _, l := range g.Labels {
		if l != region.Background {
			n++
		}
	}
	if len(g.Labels) == 0 {
		return 0, 0
	}
	return n, float64(n) / float64(len(g.Labels))
}

// SubjectBounds returns the tight bounding box of subject cells.
// The zero rectangle means the grid holds no subject at all.
func SubjectBounds(g *region.Grid) image.Rectangle {
	minX, minY := g.W, g.H
	maxX, maxY := -1, -1
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Labels[y*g.W+x] == region.Background {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
