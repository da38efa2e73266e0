package imgio

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"silhouette-maker/internal/region"
)

// Load reads an image file and normalizes it to a zero-origin NRGBA.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &LoadError{Path: path, Err: region.ErrEmptyImage}
	}

	return ToNRGBA(src), nil
}

// ToNRGBA converts a decoded image to a zero-origin NRGBA copy.
// Pixel loops elsewhere index Pix directly and rely on both properties.
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// SupportedInput reports whether path has an extension Load can decode.
func SupportedInput(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".tga":
		return true
	}
	return false
}

// Save encodes img to path, creating parent directories as needed. The
// format follows the extension: png, webp, bmp or tiff. JPEG and GIF are
// rejected since neither preserves the mask's alpha channel as encoded
// by the standard writers.
func Save(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "", ".png", ".webp", ".bmp", ".tif", ".tiff":
	case ".jpg", ".jpeg", ".gif":
		return &SaveError{Path: path, Err: fmt.Errorf("format %s cannot carry the alpha channel", ext)}
	default:
		return &SaveError{Path: path, Err: fmt.Errorf("unsupported output format %s", ext)}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &SaveError{Path: path, Err: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}

	var encErr error
	switch ext {
	case ".webp":
		encErr = nativewebp.Encode(f, img, nil)
	case ".bmp":
		encErr = bmp.Encode(f, img)
	case ".tif", ".tiff":
		encErr = tiff.Encode(f, img, nil)
	default:
		encErr = png.Encode(f, img)
	}

	if closeErr := f.Close(); encErr == nil {
		encErr = closeErr
	}
	if encErr != nil {
		return &SaveError{Path: path, Err: encErr}
	}
	return nil
}
