package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry describes one successful conversion in the output manifest.
type ManifestEntry struct {
	Input    string  `json:"input"`
	Image    string  `json:"image"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Subject  int     `json:"subject_pixels"`
	Coverage float64 `json:"coverage"`
}

// WriteManifest writes manifest.json describing every successful result.
// Image paths are relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)

	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		img := r.Output
		if rel, err := filepath.Rel(dir, r.Output); err == nil {
			img = rel
		}
		cov := 0.0
		if n := r.Width * r.Height; n > 0 {
			cov = float64(r.Subject) / float64(n)
		}
		entries = append(entries, ManifestEntry{
			Input:    r.Input,
			Image:    img,
			Width:    r.Width,
			Height:   r.Height,
			Subject:  r.Subject,
			Coverage: cov,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
