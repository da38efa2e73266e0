package batch

import (
	"image"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"silhouette-maker/internal/imgio"
	"silhouette-maker/internal/mask"
	"silhouette-maker/internal/preprocess"
	"silhouette-maker/internal/region"
)

// Classifier produces the label grid for one prepared image.
type Classifier func(*image.NRGBA) (*region.Grid, error)

// Config holds shared settings for a batch run.
type Config struct {
	OutputDir string
	Suffix    string
	Ext       string
	Blur      float64
	MinRegion float64
	Classify  Classifier
	Workers   int
	Log       *logrus.Logger
}

// Result holds the outcome of converting one input.
type Result struct {
	Input   string
	Output  string
	Width   int
	Height  int
	Subject int
	Success bool
	Error   string
}

// Run converts all inputs using a worker pool.
func Run(cfg Config, inputs []string) []Result {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	total := len(inputs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					cfg.Log.Infof("[%d/%d] %.1f images/sec", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				in := inputs[idx]
				out := filepath.Join(cfg.OutputDir, OutputName(in, cfg.Suffix, cfg.Ext))
				results[idx] = Convert(cfg, in, out)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range inputs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

// OutputName maps an input filename to its silhouette filename.
// Ext defaults to .png when empty.
func OutputName(input, suffix, ext string) string {
	if ext == "" {
		ext = ".png"
	}
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + suffix + ext
}

// Convert runs the full pipeline for one input file: load, blur,
// classify, render, save.
func Convert(cfg Config, input, output string) Result {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}

	res := Result{Input: input, Output: output}

	img, err := imgio.Load(input)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Width = img.Bounds().Dx()
	res.Height = img.Bounds().Dy()

	img = preprocess.Blur(img, cfg.Blur)

	grid, err := cfg.Classify(img)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if cfg.MinRegion > 0 {
		mask.RemoveSpecks(grid, cfg.MinRegion)
	}
	res.Subject, _ = mask.Coverage(grid)

	if err := imgio.Save(output, mask.Render(grid)); err != nil {
		res.Error = err.Error()
		return res
	}

	cfg.Log.Debugf("converted %s -> %s", input, output)
	res.Success = true
	return res
}
