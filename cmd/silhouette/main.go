package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"silhouette-maker/internal/batch"
	"silhouette-maker/internal/config"
	"silhouette-maker/internal/imgio"
	"silhouette-maker/internal/inspect"
	"silhouette-maker/internal/region"
)

var log = logrus.New()

func main() {
	configFile := flag.String("config", "", "Path to a JSON or YAML config file")
	tolerance := flag.Float64("tolerance", 0, "Similarity threshold (default: per metric, 40 for manhattan)")
	alphaCutoff := flag.Int("alpha-cutoff", -1, "Treat alpha below this as background, 0 disables (default: 10)")
	metric := flag.String("metric", "", "Distance metric: manhattan, euclidean or lab (default: manhattan)")
	mode := flag.String("mode", "", "Classifier: flood or global (default: flood)")
	ref := flag.String("ref", "", "Reference color for global mode: topleft or dominant (default: topleft)")
	blur := flag.Float64("blur", 0, "Gaussian blur sigma applied before classification (default: off)")
	minRegion := flag.Float64("min-region", 0, "Drop subject regions below this fraction of subject area (default: off)")
	workers := flag.Int("workers", 0, "Worker goroutines in directory mode (default: NumCPU)")
	suffix := flag.String("suffix", "", "Output filename suffix (default: _silhouette)")
	format := flag.String("format", "", "Output format: png, webp, bmp or tiff (default: png)")
	outputDir := flag.String("output", "", "Output directory in directory mode (default: INPUT/silhouettes)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	quiet := flag.Bool("q", false, "Log errors only")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] INPUT [OUTPUT]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(os.Stderr, "Converts an image, or every image in a directory, into a binary")
		fmt.Fprintln(os.Stderr, "silhouette mask: background transparent, subject opaque black.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if *quiet {
		log.SetLevel(logrus.ErrorLevel)
	}

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	if err := cfg.Resolve(config.Flags{
		Tolerance:   *tolerance,
		AlphaCutoff: *alphaCutoff,
		Metric:      *metric,
		Mode:        *mode,
		Ref:         *ref,
		Blur:        *blur,
		MinRegion:   *minRegion,
		Suffix:      *suffix,
		Format:      *format,
		OutputDir:   *outputDir,
		Workers:     *workers,
	}); err != nil {
		log.Fatal(err)
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	classify := buildClassifier(cfg, opts)

	info, err := os.Stat(input)
	if err != nil {
		log.Fatalf("stat %s: %v", input, err)
	}

	if info.IsDir() {
		if flag.NArg() == 2 {
			log.Fatal("directory mode takes no OUTPUT argument, use -output instead")
		}
		os.Exit(runDir(cfg, classify, input))
	}

	output := ""
	if flag.NArg() == 2 {
		output = flag.Arg(1)
	} else {
		output = filepath.Join(filepath.Dir(input),
			batch.OutputName(input, cfg.Suffix, cfg.OutputExt()))
	}

	res := batch.Convert(batch.Config{
		Blur:      cfg.Blur,
		MinRegion: cfg.MinRegion,
		Classify:  classify,
		Log:       log,
	}, input, output)
	if !res.Success {
		log.Fatal(res.Error)
	}
	log.Infof("saved %s (%dx%d, %d subject pixels)", res.Output, res.Width, res.Height, res.Subject)
}

// buildClassifier turns the resolved config into the per-image pipeline step.
func buildClassifier(cfg config.Config, opts region.Options) batch.Classifier {
	if cfg.Mode == "global" {
		useDominant := cfg.Ref == "dominant"
		return func(img *image.NRGBA) (*region.Grid, error) {
			ref := img.NRGBAAt(0, 0)
			if useDominant {
				ref = inspect.Dominant(img)
			}
			return region.ClassifyGlobal(img, ref, opts)
		}
	}
	return func(img *image.NRGBA) (*region.Grid, error) {
		return region.Classify(img, opts)
	}
}

func runDir(cfg config.Config, classify batch.Classifier, dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("read %s: %v", dir, err)
	}

	var inputs []string
	for _, e := range entries {
		if e.IsDir() || !imgio.SupportedInput(e.Name()) {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, e.Name()))
	}
	sort.Strings(inputs)

	if len(inputs) == 0 {
		log.Info("no images to convert")
		return 0
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = filepath.Join(dir, "silhouettes")
	}

	log.Infof("converting %d images with %d workers", len(inputs), cfg.Workers)
	log.Infof("output: %s", outDir)

	start := time.Now()
	results := batch.Run(batch.Config{
		OutputDir: outDir,
		Suffix:    cfg.Suffix,
		Ext:       cfg.OutputExt(),
		Blur:      cfg.Blur,
		MinRegion: cfg.MinRegion,
		Classify:  classify,
		Workers:   cfg.Workers,
		Log:       log,
	}, inputs)
	log.Infof("done in %.1fs", time.Since(start).Seconds())

	success, failed := 0, 0
	var failures []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			failures = append(failures, r)
		}
	}
	log.Infof("converted %d/%d", success, len(inputs))

	if len(failures) > 0 {
		log.Errorf("failed (%d):", failed)
		limit := 20
		if len(failures) < limit {
			limit = len(failures)
		}
		for _, r := range failures[:limit] {
			log.Errorf("  %s: %s", r.Input, r.Error)
		}
	}

	manifestPath := filepath.Join(outDir, "manifest.json")
	os.MkdirAll(outDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Warnf("manifest write failed: %v", err)
	} else {
		log.Infof("manifest: %s", manifestPath)
	}

	if failed > 0 {
		return 1
	}
	return 0
}
