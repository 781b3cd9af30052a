// Package texture decodes image files into RGBA staging data and uploads them as 2D textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrLoad is returned when an image file cannot be read or decoded.
	ErrLoad = errors.New("failed to load texture")

	// ErrUnsupportedFormat is returned when the file content is not an image type with a registered decoder.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// supportedMIME lists the content types with a decoder registered above.
var supportedMIME = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// LoadImage reads and decodes an image file into RGBA staging data.
// OpenGL expects the first row at the bottom, so most callers pass flipV true.
//
// Parameters:
//   - path: the image file
//   - flipV: whether to flip the image vertically
//
// Returns:
//   - common.TextureStagingData: the decoded pixels
//   - error: wrapping ErrLoad or ErrUnsupportedFormat
func LoadImage(path string, flipV bool) (common.TextureStagingData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("%w %s: %w", ErrLoad, path, err)
	}
	staging, err := DecodeImage(data, flipV)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("%s: %w", path, err)
	}
	staging.Path = path
	return staging, nil
}

// DecodeImage decodes image bytes into RGBA staging data. The format is sniffed from the content,
// not from a file extension.
//
// Parameters:
//   - data: the encoded image
//   - flipV: whether to flip the image vertically
//
// Returns:
//   - common.TextureStagingData: the decoded pixels
//   - error: wrapping ErrLoad or ErrUnsupportedFormat
func DecodeImage(data []byte, flipV bool) (common.TextureStagingData, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if kind == filetype.Unknown || !supportedMIME[kind.MIME.Value] {
		return common.TextureStagingData{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, kind.MIME.Value)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var rgba *image.RGBA
	if flipV {
		// FlipV returns a new RGBA image anchored at the origin.
		rgba = transform.FlipV(img)
	} else {
		bounds := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return common.TextureStagingData{
		Pixels:   tightPixels(rgba),
		Width:    uint32(rgba.Rect.Dx()),
		Height:   uint32(rgba.Rect.Dy()),
		MimeType: kind.MIME.Value,
	}, nil
}

// LoadImages decodes several files in parallel on a worker pool and returns them in input order.
// Decoding is CPU-only, so the results can be uploaded from the graphics thread afterwards.
//
// Parameters:
//   - paths: the image files
//   - flipV: whether to flip the images vertically
//   - workers: the maximum number of decoding goroutines, 0 for GOMAXPROCS
//
// Returns:
//   - []common.TextureStagingData: one entry per path; failed entries are zero values
//   - error: the joined errors of every failed path
func LoadImages(paths []string, flipV bool, workers int) ([]common.TextureStagingData, error) {
	out := make([]common.TextureStagingData, len(paths))
	if len(paths) == 0 {
		return out, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(paths))

	pool := worker.NewDynamicWorkerPool(workers, len(paths), time.Second)
	defer pool.Stop()

	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		idx, p := i, path
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				out[idx], errs[idx] = LoadImage(p, flipV)
				return nil, errs[idx]
			},
		})
	}
	wg.Wait()

	return out, errors.Join(errs...)
}

// tightPixels returns the pixel bytes without row padding.
func tightPixels(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride == w*4 {
		return img.Pix[:w*h*4]
	}
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(pix[y*w*4:(y+1)*w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}
	return pix
}
