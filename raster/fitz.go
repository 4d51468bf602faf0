package raster

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/wudi/pagekit/document"
)

// FitzRenderer renders pages with MuPDF.
type FitzRenderer struct{}

func NewFitzRenderer() *FitzRenderer { return &FitzRenderer{} }

func (*FitzRenderer) Open(data []byte) (Session, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		if errors.Is(err, fitz.ErrNeedsPassword) {
			return nil, &document.UnreadableError{Encrypted: true, Err: err}
		}
		return nil, &document.UnreadableError{Err: err}
	}
	return &fitzSession{doc: doc}, nil
}

type fitzSession struct {
	doc *fitz.Document
}

func (s *fitzSession) PageCount() int { return s.doc.NumPage() }

func (s *fitzSession) Render(ctx context.Context, page int, scale float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, fmt.Errorf("render scale must be positive, got %g", scale)
	}
	img, err := s.doc.ImageDPI(page, 72*scale)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page+1, err)
	}
	return img, nil
}

func (s *fitzSession) Close() error { return s.doc.Close() }
