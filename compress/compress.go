// Package compress rebuilds a document from lossy re-encoded renders of its
// pages.
//
// The transformation is one-way: vector text and graphics become pixels, no
// selectable text survives, and source metadata and bookmarks are not
// carried over. Size reduction is bought with exactly that fidelity loss,
// and callers should surface it to their users.
package compress

import (
	"context"
	"fmt"

	"github.com/wudi/pagekit/document"
	"github.com/wudi/pagekit/observability"
	"github.com/wudi/pagekit/raster"
	"github.com/wudi/pagekit/security"
)

const (
	DefaultQuality = 0.6
	DefaultScale   = 1.2
)

// Config tunes the rasterize/re-encode pipeline. The zero value takes the
// defaults.
type Config struct {
	// Quality of the lossy page images in (0, 1]: 0 is most compression,
	// 1 most fidelity.
	Quality float64

	// Scale multiplies the render resolution. Output page dimensions are
	// Scale times the source page dimensions; the practical range is
	// 0.8 to 2.0.
	Scale float64
}

func (c Config) withDefaults() Config {
	if c.Quality == 0 {
		c.Quality = DefaultQuality
	}
	if c.Scale == 0 {
		c.Scale = DefaultScale
	}
	return c
}

func (c Config) validate() error {
	if c.Quality <= 0 || c.Quality > 1 {
		return fmt.Errorf("quality must be in (0,1], got %g", c.Quality)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", c.Scale)
	}
	return nil
}

// PageError reports the 1-based page whose render or encode step failed.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("failed to process page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// Compressor re-renders every page of a document and rebuilds the document
// from the encoded frames.
type Compressor struct {
	codec    document.Codec
	renderer raster.Renderer
	encoder  raster.Encoder
	logger   observability.Logger
	limits   security.Limits
	progress func(done, total int)
}

type Option func(*Compressor)

// WithEncoder replaces the default JPEG encoder.
func WithEncoder(e raster.Encoder) Option { return func(c *Compressor) { c.encoder = e } }

func WithLogger(l observability.Logger) Option { return func(c *Compressor) { c.logger = l } }

func WithLimits(l security.Limits) Option { return func(c *Compressor) { c.limits = l } }

// WithProgress registers a callback fired after each page is processed.
func WithProgress(fn func(done, total int)) Option {
	return func(c *Compressor) { c.progress = fn }
}

func New(codec document.Codec, renderer raster.Renderer, opts ...Option) *Compressor {
	c := &Compressor{
		codec:    codec,
		renderer: renderer,
		encoder:  &raster.JPEGEncoder{},
		logger:   observability.NopLogger{},
		limits:   security.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compress renders every page at cfg.Scale, encodes each frame at
// cfg.Quality, and builds a new document whose pages are sized to the
// rendered frames, in source page order. The operation is all-or-nothing:
// one failing page fails the whole call with *PageError and no output, so a
// partially-rasterized document with mixed fidelity can never escape.
func (c *Compressor) Compress(ctx context.Context, src []byte, cfg Config) ([]byte, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := c.limits.CheckSourceBytes(int64(len(src))); err != nil {
		return nil, err
	}
	doc, err := c.codec.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load source: %w", err)
	}
	if err := c.limits.CheckPages(doc.PageCount()); err != nil {
		return nil, err
	}

	sess, err := c.renderer.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open source for rendering: %w", err)
	}
	defer sess.Close()

	total := sess.PageCount()
	if total != doc.PageCount() {
		c.logger.Warn("renderer and codec disagree on page count",
			observability.Int("codec_pages", doc.PageCount()),
			observability.Int("renderer_pages", total))
	}
	c.logger.Debug("compressing document",
		observability.Int("pages", total),
		observability.Float64("quality", cfg.Quality),
		observability.Float64("scale", cfg.Scale))

	images := make([][]byte, 0, total)
	for page := 0; page < total; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frame, err := sess.Render(ctx, page, cfg.Scale)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &PageError{Page: page + 1, Err: err}
		}
		bounds := frame.Bounds()
		if err := c.limits.CheckFramePixels(int64(bounds.Dx()) * int64(bounds.Dy())); err != nil {
			return nil, &PageError{Page: page + 1, Err: err}
		}
		encoded, err := c.encoder.Encode(frame, cfg.Quality)
		if err != nil {
			return nil, &PageError{Page: page + 1, Err: err}
		}
		images = append(images, encoded)
		if c.progress != nil {
			c.progress(page+1, total)
		}
	}

	out, err := c.codec.FromImages(ctx, images)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild document: %w", err)
	}

	c.logger.Info("compressed document",
		observability.Int("pages", total),
		observability.Int64("in_bytes", int64(len(src))),
		observability.Int64("out_bytes", int64(len(out))))
	return out, nil
}
