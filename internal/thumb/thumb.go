// Package thumb produces best-effort image thumbnails. Formats the codec
// cannot encode yield an empty result rather than an error; callers decide
// whether to skip.
package thumb

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

const jpegQuality = 85

var formats = map[string]imaging.Format{
	".jpg":  imaging.JPEG,
	".jpeg": imaging.JPEG,
	".png":  imaging.PNG,
	".gif":  imaging.GIF,
	".bmp":  imaging.BMP,
	".tif":  imaging.TIFF,
	".tiff": imaging.TIFF,
}

var thumbContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// Result is a generated thumbnail. A zero Result means the format was not
// supported.
type Result struct {
	Data        []byte
	ContentType string
}

func (r Result) Empty() bool { return len(r.Data) == 0 }

// Generate shrinks the image to fit within a box×box square, preserving
// aspect ratio and never enlarging. ext is the original file extension
// including the dot; unsupported extensions (heic, webp) return an empty
// result and nil error.
func Generate(data []byte, ext string, box int) (Result, error) {
	ext = strings.ToLower(ext)
	format, ok := formats[ext]
	if !ok {
		return Result{}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Result{}, fmt.Errorf("decode image: %w", err)
	}

	img = fit(img, box)

	var buf bytes.Buffer
	opts := []imaging.EncodeOption{}
	if format == imaging.JPEG {
		opts = append(opts, imaging.JPEGQuality(jpegQuality))
	}
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return Result{}, fmt.Errorf("encode thumbnail: %w", err)
	}
	return Result{Data: buf.Bytes(), ContentType: thumbContentTypes[ext]}, nil
}

func fit(img image.Image, box int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= box && bounds.Dy() <= box {
		return img
	}
	return imaging.Fit(img, box, box, imaging.Lanczos)
}
