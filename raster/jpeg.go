package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"golang.org/x/image/draw"
)

// JPEGEncoder encodes frames as baseline JPEG. Quality in (0, 1] maps onto
// the codec's 1..100 scale. A MaxDimension > 0 downsamples any frame whose
// width or height exceeds it before encoding; the zero value never resizes,
// so rendered dimensions pass through untouched.
type JPEGEncoder struct {
	MaxDimension int
}

func (e *JPEGEncoder) Encode(frame image.Image, quality float64) ([]byte, error) {
	if quality <= 0 || quality > 1 {
		return nil, fmt.Errorf("jpeg quality must be in (0,1], got %g", quality)
	}
	if e.MaxDimension > 0 {
		frame = capDimensions(frame, e.MaxDimension)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: jpegQuality(quality)}); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

func jpegQuality(q float64) int {
	n := int(math.Round(q * 100))
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}

// capDimensions shrinks frame so neither side exceeds limit, preserving the
// aspect ratio.
func capDimensions(frame image.Image, limit int) image.Image {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return frame
	}
	ratio := float64(limit) / float64(w)
	if h > w {
		ratio = float64(limit) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(1, int(float64(w)*ratio)), max(1, int(float64(h)*ratio))))
	draw.CatmullRom.Scale(dst, dst.Bounds(), frame, b, draw.Over, nil)
	return dst
}
