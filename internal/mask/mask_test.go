package mask

import (
	"image"
	"testing"

	"silhouette-maker/internal/region"
)

func gridOf(w, h int, subject ...[2]int) *region.Grid {
	g := &region.Grid{W: w, H: h, Labels: make([]region.Label, w*h)}
	for i := range g.Labels {
		g.Labels[i] = region.Background
	}
	for _, s := range subject {
		g.Labels[s[1]*w+s[0]] = region.Subject
	}
	return g
}

func TestRenderBinaryOutput(t *testing.T) {
	g := gridOf(4, 3, [2]int{1, 1}, [2]int{2, 1})
	out := Render(g)

	if got, want := out.Bounds(), image.Rect(0, 0, 4, 3); got != want {
		t.Fatalf("bounds = %v, want %v", got, want)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			i := y*out.Stride + x*4
			r, gg, b, a := out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3]
			if r != 0 || gg != 0 || b != 0 {
				t.Fatalf("pixel (%d,%d) has non-black RGB (%d,%d,%d)", x, y, r, gg, b)
			}
			wantA := uint8(0)
			if g.At(x, y) == region.Subject {
				wantA = 255
			}
			if a != wantA {
				t.Errorf("pixel (%d,%d) alpha = %d, want %d", x, y, a, wantA)
			}
		}
	}
}

func TestRenderTreatsOnlyBackgroundAsClear(t *testing.T) {
	// Unvisited should never survive classification, but if it does the
	// renderer must err on the side of subject.
	g := &region.Grid{W: 2, H: 1, Labels: []region.Label{region.Background, region.Unvisited}}
	out := Render(g)

	if out.Pix[3] != 0 {
		t.Error("background cell should be transparent")
	}
	if out.Pix[7] != 255 {
		t.Error("non-background cell should be opaque")
	}
}

func TestCoverage(t *testing.T) {
	g := gridOf(4, 4, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0})
	n, frac := Coverage(g)
	if n != 4 {
		t.Errorf("subject count = %d, want 4", n)
	}
	if frac != 0.25 {
		t.Errorf("coverage = %v, want 0.25", frac)
	}
}

func TestSubjectBounds(t *testing.T) {
	cases := []struct {
		name string
		grid *region.Grid
		want image.Rectangle
	}{
		{"single cell", gridOf(5, 5, [2]int{2, 3}), image.Rect(2, 3, 3, 4)},
		{"spread cells", gridOf(6, 4, [2]int{1, 1}, [2]int{4, 2}), image.Rect(1, 1, 5, 3)},
		{"no subject", gridOf(3, 3), image.Rectangle{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SubjectBounds(tc.grid); got != tc.want {
				t.Errorf("SubjectBounds = %v, want %v", got, tc.want)
			}
		})
	}
}
