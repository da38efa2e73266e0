package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"silhouette-maker/internal/colordist"
	"silhouette-maker/internal/imgio"
	"silhouette-maker/internal/inspect"
	"silhouette-maker/internal/mask"
	"silhouette-maker/internal/preprocess"
	"silhouette-maker/internal/region"
)

var log = logrus.New()

func main() {
	paletteK := flag.Int("palette", 3, "Number of border palette clusters")
	metricName := flag.String("metric", "manhattan", "Distance metric for the report")
	tolerance := flag.Float64("tolerance", 0, "Tolerance for the trial classification (default: per metric)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] IMAGE...\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(os.Stderr, "Reports the background-related properties of each image: corner")
		fmt.Fprintln(os.Stderr, "colors, alpha statistics, border palette and a tolerance suggestion.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	m, err := colordist.ParseMetric(*metricName)
	if err != nil {
		log.Fatal(err)
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := report(path, m, *tolerance, *paletteK); err != nil {
			log.Error(err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func report(path string, m colordist.Metric, tol float64, k int) error {
	img, err := imgio.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %dx%d\n", path, img.Bounds().Dx(), img.Bounds().Dy())

	st := inspect.Alpha(img)
	fmt.Printf("  alpha: min=%d max=%d avg=%.0f opaque=%d/%d\n",
		st.Min, st.Max, st.Avg, st.Opaque, st.Total)

	corners := inspect.Corners(img)
	for i, c := range corners {
		fmt.Printf("  %-12s %s  rgba(%d,%d,%d,%d)\n",
			inspect.CornerNames[i], inspect.Hex(c), c.R, c.G, c.B, c.A)
	}
	fmt.Printf("  corner spread: %.1f (%s)\n", inspect.MaxPairwise(corners, m), m)

	fmt.Printf("  dominant: %s\n", inspect.Hex(inspect.Dominant(img)))

	// Clustering cost grows with image size, so shrink first.
	small := preprocess.Downscale(img, 512)
	for i, p := range inspect.BorderPalette(small, k) {
		fmt.Printf("  border palette %d: %s\n", i+1, p.Hex())
	}

	fmt.Printf("  suggested tolerance: %.1f (%s)\n", inspect.SuggestTolerance(img, m), m)

	grid, err := region.Classify(img, region.Options{Tolerance: tol, AlphaCutoff: 10, Metric: m})
	if err != nil {
		return err
	}
	n, frac := mask.Coverage(grid)
	fmt.Printf("  trial classification: %d subject pixels (%.1f%%), bounds %v\n",
		n, 100*frac, mask.SubjectBounds(grid))
	return nil
}
