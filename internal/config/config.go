package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"silhouette-maker/internal/colordist"
	"silhouette-maker/internal/region"
)

// Config holds all conversion settings.
type Config struct {
	Tolerance   float64 `json:"tolerance" yaml:"tolerance"`
	AlphaCutoff int     `json:"alpha_cutoff" yaml:"alpha_cutoff"`
	Metric      string  `json:"metric" yaml:"metric"`
	Mode        string  `json:"mode" yaml:"mode"`
	Ref         string  `json:"ref" yaml:"ref"`
	Blur        float64 `json:"blur" yaml:"blur"`
	MinRegion   float64 `json:"min_region" yaml:"min_region"`
	Suffix      string  `json:"suffix" yaml:"suffix"`
	Format      string  `json:"format" yaml:"format"`
	OutputDir   string  `json:"output_dir" yaml:"output_dir"`
	Workers     int     `json:"workers" yaml:"workers"`
}

// Default returns the settings used when nothing is configured.
// Tolerance zero means "use the metric's calibrated default".
func Default() Config {
	return Config{
		AlphaCutoff: 10,
		Metric:      "manhattan",
		Mode:        "flood",
		Ref:         "topleft",
		Suffix:      "_silhouette",
		Workers:     runtime.NumCPU(),
	}
}

// Load reads a JSON or YAML config file, keyed on the extension.
// Fields absent from the file keep their defaults, so an explicit
// zero (for example alpha_cutoff: 0) survives as written.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Numeric zero values mean "not set"; AlphaCutoff uses -1 for that
// since zero legitimately disables the alpha rule.
type Flags struct {
	Tolerance   float64
	AlphaCutoff int
	Metric      string
	Mode        string
	Ref         string
	Blur        float64
	MinRegion   float64
	Suffix      string
	Format      string
	OutputDir   string
	Workers     int
}

// Resolve applies CLI overrides, fills remaining defaults and validates
// the result. CLI flags take priority over config file values.
func (c *Config) Resolve(flags Flags) error {
	if flags.Tolerance > 0 {
		c.Tolerance = flags.Tolerance
	}
	if flags.AlphaCutoff >= 0 {
		c.AlphaCutoff = flags.AlphaCutoff
	}
	if flags.Metric != "" {
		c.Metric = flags.Metric
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Ref != "" {
		c.Ref = flags.Ref
	}
	if flags.Blur > 0 {
		c.Blur = flags.Blur
	}
	if flags.MinRegion > 0 {
		c.MinRegion = flags.MinRegion
	}
	if flags.Suffix != "" {
		c.Suffix = flags.Suffix
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.Metric == "" {
		c.Metric = "manhattan"
	}
	if c.Mode == "" {
		c.Mode = "flood"
	}
	if c.Ref == "" {
		c.Ref = "topleft"
	}
	if c.Suffix == "" {
		c.Suffix = "_silhouette"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	if c.AlphaCutoff < 0 || c.AlphaCutoff > 255 {
		return fmt.Errorf("config: alpha cutoff %d outside 0-255", c.AlphaCutoff)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("config: negative tolerance %v", c.Tolerance)
	}
	if c.MinRegion < 0 || c.MinRegion >= 1 {
		return fmt.Errorf("config: min region %v outside [0, 1)", c.MinRegion)
	}
	switch c.Mode {
	case "flood", "global":
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	switch c.Ref {
	case "topleft", "dominant":
	default:
		return fmt.Errorf("config: unknown reference %q", c.Ref)
	}
	switch strings.TrimPrefix(c.Format, ".") {
	case "", "png", "webp", "bmp", "tif", "tiff":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Format)
	}
	if _, err := colordist.ParseMetric(c.Metric); err != nil {
		return err
	}
	return nil
}

// OutputExt returns the output file extension for the configured format,
// ".png" when none is set.
func (c Config) OutputExt() string {
	if c.Format == "" {
		return ".png"
	}
	return "." + strings.TrimPrefix(c.Format, ".")
}

// Options converts a resolved config into classifier options.
func (c Config) Options() (region.Options, error) {
	m, err := colordist.ParseMetric(c.Metric)
	if err != nil {
		return region.Options{}, err
	}
	return region.Options{
		Tolerance:   c.Tolerance,
		AlphaCutoff: uint8(c.AlphaCutoff),
		Metric:      m,
	}, nil
}
