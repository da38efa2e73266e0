package inspect

import (
	"image"
	"image/color"
	"math"
	"testing"

	"silhouette-maker/internal/colordist"
)

func fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func TestCorners(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	fill(img, color.NRGBA{9, 9, 9, 255})
	img.SetNRGBA(0, 0, color.NRGBA{1, 0, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{2, 0, 0, 255})
	img.SetNRGBA(0, 2, color.NRGBA{3, 0, 0, 255})
	img.SetNRGBA(2, 2, color.NRGBA{4, 0, 0, 255})

	got := Corners(img)
	for i, want := range []uint8{1, 2, 3, 4} {
		if got[i].R != want {
			t.Errorf("corner %s = %v, want R=%d", CornerNames[i], got[i], want)
		}
	}
}

func TestMaxPairwise(t *testing.T) {
	c := [4]color.NRGBA{
		{0, 0, 0, 255},
		{10, 0, 0, 255},
		{0, 20, 0, 255},
		{0, 0, 30, 255},
	}
	// Largest Manhattan gap is corner 1 to corner 3: 10+0+30.
	if got := MaxPairwise(c, colordist.Manhattan); got != 50 {
		t.Errorf("MaxPairwise = %v, want 50", got)
	}
}

func TestAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 1, color.NRGBA{0, 0, 0, 100})

	st := Alpha(img)
	if st.Min != 0 || st.Max != 255 {
		t.Errorf("min/max = %d/%d, want 0/255", st.Min, st.Max)
	}
	if st.Opaque != 2 || st.Total != 4 {
		t.Errorf("opaque/total = %d/%d, want 2/4", st.Opaque, st.Total)
	}
	if want := (0 + 255 + 255 + 100) / 4.0; st.Avg != want {
		t.Errorf("avg = %v, want %v", st.Avg, want)
	}
}

func TestBorderPaletteUniformRing(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fill(img, color.NRGBA{200, 200, 200, 255})

	pal := BorderPalette(img, 1)
	if len(pal) != 1 {
		t.Fatalf("palette size = %d, want 1", len(pal))
	}
	want := 200.0 / 255.0
	if math.Abs(pal[0].R-want) > 0.02 {
		t.Errorf("palette color = %v, want gray %v", pal[0], want)
	}
}

func TestBorderPaletteTwoTone(t *testing.T) {
	// Top half of the ring white, bottom half black.
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	fill(img, color.NRGBA{128, 128, 128, 255})
	for x := 0; x < 10; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{255, 255, 255, 255})
		img.SetNRGBA(x, 9, color.NRGBA{0, 0, 0, 255})
	}
	for y := 1; y < 9; y++ {
		c := color.NRGBA{255, 255, 255, 255}
		if y >= 5 {
			c = color.NRGBA{0, 0, 0, 255}
		}
		img.SetNRGBA(0, y, c)
		img.SetNRGBA(9, y, c)
	}

	pal := BorderPalette(img, 2)
	if len(pal) != 2 {
		t.Fatalf("palette size = %d, want 2", len(pal))
	}

	var sawLight, sawDark bool
	for _, p := range pal {
		if p.R > 0.85 {
			sawLight = true
		}
		if p.R < 0.15 {
			sawDark = true
		}
	}
	if !sawLight || !sawDark {
		t.Errorf("palette %v should contain a near-white and a near-black entry", pal)
	}
}

func TestSuggestToleranceCleanBorder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	fill(img, color.NRGBA{240, 240, 240, 255})

	got := SuggestTolerance(img, colordist.Manhattan)
	if want := colordist.DefaultTolerance(colordist.Manhattan) / 4; got != want {
		t.Errorf("clean border suggestion = %v, want the floor %v", got, want)
	}
}

func TestSuggestToleranceNoisyBorder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	fill(img, color.NRGBA{200, 200, 200, 255})
	// Jitter part of the border away from every corner color.
	for x := 2; x < 10; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{230, 200, 200, 255})
	}

	got := SuggestTolerance(img, colordist.Manhattan)
	if got < 30*1.25-0.001 {
		t.Errorf("noisy border suggestion = %v, want at least 37.5", got)
	}
}

func TestDominant(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fill(img, color.NRGBA{20, 20, 220, 255})
	for x := 0; x < 4; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{220, 20, 20, 255})
	}

	d := Dominant(img)
	if d.B <= d.R {
		t.Errorf("dominant = %v, want mostly blue", d)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.NRGBA{255, 0, 0, 255}); got != "#ff0000" {
		t.Errorf("Hex = %q, want #ff0000", got)
	}
}
