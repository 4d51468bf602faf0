// Package raster renders PDF pages to pixel frames and encodes frames as
// lossy images. The default renderer is backed by MuPDF (go-fitz); the
// default encoder produces baseline JPEG.
package raster

import (
	"context"
	"image"
)

// Renderer opens PDF bytes for page rendering.
type Renderer interface {
	Open(data []byte) (Session, error)
}

// Session renders single pages of one open document. A session is not safe
// for concurrent use and must be closed when done.
type Session interface {
	PageCount() int

	// Render rasterizes the 0-based page at the given scale multiplier,
	// where scale 1.0 reproduces the page's nominal size at 72 dpi: a
	// 612x792 point page becomes a 612x792 pixel frame.
	Render(ctx context.Context, page int, scale float64) (image.Image, error)

	Close() error
}

// Encoder turns one rendered frame into compressed image bytes.
type Encoder interface {
	// Encode compresses the frame at the given quality in (0, 1].
	Encode(frame image.Image, quality float64) ([]byte, error)
}
