// Package thumbs decodes image files and downsizes them into a
// bounding box. Decoding runs on the background worker, never on the
// render path.
package thumbs

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Box is the maximum width/height a thumbnail may occupy
type Box struct {
	Width  int
	Height int
}

// DecodeError reports a file that could not be decoded. It is
// per-file and non-fatal: the worker logs it and moves on.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Load decodes the image at path and scales it down to fit within box,
// preserving aspect ratio. Images already smaller than the box are
// returned at their original size.
func Load(path string, box Box) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	bounds := img.Bounds()
	if bounds.Dx() <= box.Width && bounds.Dy() <= box.Height {
		return img, nil
	}

	return imaging.Fit(img, box.Width, box.Height, imaging.Lanczos), nil
}

// SupportedExtension reports whether the file extension is one the
// decoder handles, independent of the browser's allow-list.
func SupportedExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}
