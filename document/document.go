// Package document defines the codec capabilities the transformation
// engines build on, decoupled from any concrete PDF library. Any conformant
// codec may be substituted; the default binding backed by pdfcpu lives in
// document/pdfcpucodec.
package document

import (
	"context"
	"fmt"
)

// Codec is the capability surface required by the engines: decoding with a
// page count, page copying, concatenation, and rebuilding a document from
// encoded raster images.
type Codec interface {
	// Load decodes a PDF held in memory. data is treated as read-only for
	// the lifetime of the returned Document.
	Load(ctx context.Context, data []byte) (Document, error)

	// Merge concatenates the given PDFs into one document, all pages of
	// each source in their existing order, sources in list order.
	Merge(ctx context.Context, sources [][]byte) ([]byte, error)

	// FromImages builds a document with one page per encoded image. Each
	// page is sized to its image's pixel dimensions in points and the
	// image fills the page exactly from the bottom-left corner.
	FromImages(ctx context.Context, images [][]byte) ([]byte, error)
}

// Document is one decoded, read-only source document.
type Document interface {
	PageCount() int
	Info() Info

	// CopyPages serializes a new document holding exactly the given
	// 1-based pages, in the order given.
	CopyPages(ctx context.Context, pages []int) ([]byte, error)
}

// Info describes a loaded document.
type Info struct {
	PageCount int
	Version   string // header version, e.g. "1.7"
	Bytes     int64
}

// UnreadableError reports input that could not be decoded as a usable PDF.
// Encrypted and password-protected documents are unsupported and reported
// with Encrypted set rather than as a parse failure.
type UnreadableError struct {
	Encrypted bool
	Err       error
}

func (e *UnreadableError) Error() string {
	if e.Encrypted {
		return "document is encrypted or password-protected, which is not supported"
	}
	return fmt.Sprintf("document is not a readable PDF: %v", e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }
