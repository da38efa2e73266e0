package inspect

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"silhouette-maker/internal/colordist"
)

// CornerNames label the four seed positions in fill order.
var CornerNames = [4]string{"top-left", "top-right", "bottom-left", "bottom-right"}

// Corners samples the four corner pixels in seed order.
func Corners(img *image.NRGBA) [4]color.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	return [4]color.NRGBA{
		img.NRGBAAt(0, 0),
		img.NRGBAAt(w-1, 0),
		img.NRGBAAt(0, h-1),
		img.NRGBAAt(w-1, h-1),
	}
}

// MaxPairwise returns the largest distance between any two corner colors
// under the metric. Big values mean a single shared reference color would
// misclassify at least one corner's region.
func MaxPairwise(c [4]color.NRGBA, m colordist.Metric) float64 {
	maxD := 0.0
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if d := m.Distance(c[i], c[j]); d > maxD {
				maxD = d
			}
		}
	}
	return maxD
}

// AlphaStats summarizes an image's alpha channel.
type AlphaStats struct {
	Min, Max uint8
	Avg      float64
	Opaque   int
	Total    int
}

// Alpha scans the whole image and reports alpha statistics.
func Alpha(img *image.NRGBA) AlphaStats {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	st := AlphaStats{Min: 255}
	sum := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := img.Pix[y*img.Stride+x*4+3]
			st.Total++
			sum += int(a)
			if a < st.Min {
				st.Min = a
			}
			if a > st.Max {
				st.Max = a
			}
			if a == 255 {
				st.Opaque++
			}
		}
	}
	if st.Total > 0 {
		st.Avg = float64(sum) / float64(st.Total)
	} else {
		st.Min = 0
	}
	return st
}

// Dominant estimates the image's dominant color.
func Dominant(img image.Image) color.NRGBA {
	c := dominantcolor.Find(img)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex formats a color as #rrggbb for report output.
func Hex(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// BorderPalette clusters the one-pixel border ring into at most k
// representative colors, most populous cluster first. The ring is what
// the corner seeds reach first, so its palette is the candidate set of
// background colors.
func BorderPalette(img *image.NRGBA, k int) []colorful.Color {
	ring := borderColors(img)
	if k <= 0 || len(ring) == 0 {
		return nil
	}

	// Subsample very long rings to keep kmeans quick.
	maxSamples := 4000
	step := 1
	if len(ring) > maxSamples {
		step = len(ring)/maxSamples + 1
	}

	dataset := make(clusters.Observations, 0, min(len(ring), maxSamples))
	for i := 0; i < len(ring); i += step {
		c := ring[i]
		dataset = append(dataset, clusters.Coordinates{
			float64(c.R) / 255.0,
			float64(c.G) / 255.0,
			float64(c.B) / 255.0,
		})
	}
	if k > len(dataset) {
		k = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return nil
	}

	sort.Slice(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	out := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped())
	}
	return out
}

// SuggestTolerance proposes a similarity threshold from border noise: the
// 95th percentile distance between border pixels and their nearest corner
// color, padded by a quarter. A starting point, not a guarantee; subjects
// that touch the border inflate it.
func SuggestTolerance(img *image.NRGBA, m colordist.Metric) float64 {
	ring := borderColors(img)
	if len(ring) == 0 {
		return colordist.DefaultTolerance(m)
	}
	corners := Corners(img)

	dists := make([]float64, 0, len(ring))
	for _, p := range ring {
		best := math.Inf(1)
		for _, ref := range corners {
			if d := m.Distance(p, ref); d < best {
				best = d
			}
		}
		dists = append(dists, best)
	}
	sort.Float64s(dists)

	suggested := dists[len(dists)*95/100] * 1.25
	if floor := colordist.DefaultTolerance(m) / 4; suggested < floor {
		suggested = floor
	}
	return suggested
}

func borderColors(img *image.NRGBA) []color.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	out := make([]color.NRGBA, 0, 2*(w+h))
	for x := 0; x < w; x++ {
		out = append(out, img.NRGBAAt(x, 0))
		if h > 1 {
			out = append(out, img.NRGBAAt(x, h-1))
		}
	}
	for y := 1; y < h-1; y++ {
		out = append(out, img.NRGBAAt(0, y))
		if w > 1 {
			out = append(out, img.NRGBAAt(w-1, y))
		}
	}
	return out
}
