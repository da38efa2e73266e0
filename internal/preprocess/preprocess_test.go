package preprocess

import (
	"image"
	"image/color"
	"testing"
)

func TestBlurZeroSigmaIsIdentity(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if got := Blur(img, 0); got != img {
		t.Error("sigma 0 should return the input image unchanged")
	}
}

func TestBlurSoftensEdges(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	img.SetNRGBA(4, 4, color.NRGBA{0, 0, 0, 255})

	out := Blur(img, 1.5)
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	if c := out.NRGBAAt(4, 4); c.R == 0 {
		t.Error("center pixel should have absorbed surrounding white")
	}
	if c := out.NRGBAAt(0, 0); c.R != 255 {
		t.Errorf("far corner should stay white, got %v", c)
	}
}

func TestDownscale(t *testing.T) {
	cases := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"landscape", 400, 200, 100, 100, 50},
		{"portrait", 200, 400, 100, 50, 100},
		{"already small", 64, 64, 100, 64, 64},
		{"extreme ratio floors at one", 1000, 2, 100, 100, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tc.w, tc.h))
			out := Downscale(img, tc.max)
			if out.Bounds().Dx() != tc.wantW || out.Bounds().Dy() != tc.wantH {
				t.Errorf("got %dx%d, want %dx%d",
					out.Bounds().Dx(), out.Bounds().Dy(), tc.wantW, tc.wantH)
			}
		})
	}
}
