// Package pdfcpucodec binds the document capability surface to pdfcpu.
package pdfcpucodec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/wudi/pagekit/document"
)

// Codec implements document.Codec on top of pdfcpu.
type Codec struct {
	conf *model.Configuration
}

// New returns a codec with relaxed validation and the compact object-stream
// layout enabled on write.
func New() *Codec {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true
	return &Codec{conf: conf}
}

// Load decodes and validates a PDF. Encrypted input is rejected with
// document.UnreadableError{Encrypted: true}; so is input pdfcpu cannot
// read, with the cause attached.
func (c *Codec) Load(ctx context.Context, data []byte) (document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), c.conf)
	if err != nil {
		return nil, classifyReadError(err)
	}
	if pctx.Encrypt != nil {
		return nil, &document.UnreadableError{Encrypted: true}
	}
	if err := pctx.EnsurePageCount(); err != nil {
		return nil, &document.UnreadableError{Err: err}
	}
	if pctx.PageCount == 0 {
		return nil, &document.UnreadableError{Err: errors.New("document has no pages")}
	}
	return &loadedDocument{pctx: pctx, size: int64(len(data))}, nil
}

// Merge concatenates the sources in list order.
func (c *Codec) Merge(ctx context.Context, sources [][]byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	readers := make([]io.ReadSeeker, len(sources))
	for i, src := range sources {
		readers[i] = bytes.NewReader(src)
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, c.conf); err != nil {
		return nil, fmt.Errorf("failed to merge documents: %w", err)
	}
	return buf.Bytes(), nil
}

// FromImages builds one page per encoded image using pdfcpu's default
// import placement: the page takes the image's pixel dimensions in points
// and the image fills it from the origin.
func (c *Codec) FromImages(ctx context.Context, images [][]byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, errors.New("no images to import")
	}
	readers := make([]io.Reader, len(images))
	for i, img := range images {
		readers[i] = bytes.NewReader(img)
	}
	var buf bytes.Buffer
	if err := api.ImportImages(nil, &buf, readers, nil, c.conf); err != nil {
		return nil, fmt.Errorf("failed to build document from images: %w", err)
	}
	return buf.Bytes(), nil
}

type loadedDocument struct {
	pctx *model.Context
	size int64
}

func (d *loadedDocument) PageCount() int { return d.pctx.PageCount }

func (d *loadedDocument) Info() document.Info {
	info := document.Info{PageCount: d.pctx.PageCount, Bytes: d.size}
	if v := d.pctx.HeaderVersion; v != nil {
		info.Version = v.String()
	}
	return info
}

// CopyPages extracts the given 1-based pages, in the order given, into a
// fresh document.
func (d *loadedDocument) CopyPages(ctx context.Context, pages []int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	extracted, err := pdfcpu.ExtractPages(d.pctx, pages, false)
	if err != nil {
		return nil, fmt.Errorf("failed to extract pages: %w", err)
	}
	var buf bytes.Buffer
	if err := api.WriteContext(extracted, &buf); err != nil {
		return nil, fmt.Errorf("failed to serialize extracted pages: %w", err)
	}
	return buf.Bytes(), nil
}

// classifyReadError distinguishes encryption failures from structural ones.
// pdfcpu signals a missing or wrong password with ErrWrongPassword; other
// read paths report encryption only in the message text, so fall back to
// sniffing that.
func classifyReadError(err error) error {
	if errors.Is(err, pdfcpu.ErrWrongPassword) {
		return &document.UnreadableError{Encrypted: true, Err: err}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") {
		return &document.UnreadableError{Encrypted: true, Err: err}
	}
	return &document.UnreadableError{Err: err}
}
