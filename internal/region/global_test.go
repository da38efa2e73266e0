package region

import (
	"errors"
	"image"
	"testing"
)

func TestClassifyGlobalThresholdsEveryPixel(t *testing.T) {
	img := uniform(5, 5, white)
	img.SetNRGBA(2, 2, black)

	g, err := ClassifyGlobal(img, white, Options{Tolerance: 40, AlphaCutoff: 10})
	if err != nil {
		t.Fatalf("ClassifyGlobal: %v", err)
	}

	if got := g.At(2, 2); got != Subject {
		t.Errorf("center = %v, want Subject", got)
	}
	if got := count(g, Background); got != 24 {
		t.Errorf("background cells = %d, want 24", got)
	}
}

// Global mode has no connectivity, so an enclosed background-colored patch
// is punched out. This is the documented difference from Classify.
func TestClassifyGlobalPunchesOutEnclosedPatch(t *testing.T) {
	img := uniform(7, 7, white)
	for y := 1; y <= 5; y++ {
		for x := 1; x <= 5; x++ {
			img.SetNRGBA(x, y, black)
		}
	}
	img.SetNRGBA(3, 3, white)

	g, err := ClassifyGlobal(img, white, Options{Tolerance: 40, AlphaCutoff: 10})
	if err != nil {
		t.Fatalf("ClassifyGlobal: %v", err)
	}

	if got := g.At(3, 3); got != Background {
		t.Errorf("enclosed white patch = %v, want Background in global mode", got)
	}
}

func TestClassifyGlobalEmptyImage(t *testing.T) {
	_, err := ClassifyGlobal(image.NewNRGBA(image.Rect(0, 0, 0, 0)), white, DefaultOptions())
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("error = %v, want ErrEmptyImage", err)
	}
}
