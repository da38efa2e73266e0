package colordist

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Metric selects the color distance function used for background matching.
// Alpha never contributes to a distance; transparency is handled separately
// by the near-transparent rule.
type Metric int

const (
	// Manhattan sums the absolute per-channel RGB differences (range 0-765).
	Manhattan Metric = iota
	// Euclidean is the straight-line distance in RGB space (range 0-441).
	Euclidean
	// Lab is the CIE76 delta-E in L*a*b* space (range roughly 0-150).
	Lab
)

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Lab:
		return "lab"
	default:
		return "manhattan"
	}
}

// ParseMetric maps a flag or config value to a Metric.
// The empty string selects Manhattan.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "manhattan":
		return Manhattan, nil
	case "euclidean":
		return Euclidean, nil
	case "lab":
		return Lab, nil
	}
	return Manhattan, fmt.Errorf("colordist: unknown metric %q", s)
}

// DefaultTolerance returns the calibrated similarity threshold for a metric.
// The metrics live on different scales, so one constant cannot serve all.
func DefaultTolerance(m Metric) float64 {
	switch m {
	case Euclidean:
		return 30
	case Lab:
		return 15
	default:
		return 40
	}
}

// Distance returns the distance between two colors under the metric.
func (m Metric) Distance(a, b color.NRGBA) float64 {
	switch m {
	case Euclidean:
		dr := float64(a.R) - float64(b.R)
		dg := float64(a.G) - float64(b.G)
		db := float64(a.B) - float64(b.B)
		return math.Sqrt(dr*dr + dg*dg + db*db)
	case Lab:
		ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
		cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
		// go-colorful keeps L in 0..1; scale up to the usual 0..100 axis.
		return ca.DistanceLab(cb) * 100
	default:
		return math.Abs(float64(a.R)-float64(b.R)) +
			math.Abs(float64(a.G)-float64(b.G)) +
			math.Abs(float64(a.B)-float64(b.B))
	}
}

// Similar reports whether two colors fall within tolerance of each other.
// The comparison is strict, so a tolerance of zero matches nothing.
func (m Metric) Similar(a, b color.NRGBA, tolerance float64) bool {
	return m.Distance(a, b) < tolerance
}

// NearTransparent reports whether a pixel's alpha is below cutoff.
// Pre-existing transparency is a strong background signal regardless of hue.
// A cutoff of zero disables the rule.
func NearTransparent(c color.NRGBA, cutoff uint8) bool {
	return c.A < cutoff
}
