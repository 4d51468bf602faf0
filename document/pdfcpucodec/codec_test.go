package pdfcpucodec

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/wudi/pagekit/document"
	"github.com/wudi/pagekit/pdftest"
)

func TestLoadReportsPageCount(t *testing.T) {
	c := New()
	doc, err := c.Load(context.Background(), pdftest.Doc(5))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if got := doc.PageCount(); got != 5 {
		t.Fatalf("page count %d, want 5", got)
	}
	info := doc.Info()
	if info.PageCount != 5 || info.Bytes == 0 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	c := New()
	for _, data := range [][]byte{nil, []byte("not a pdf"), pdftest.Corrupt()} {
		_, err := c.Load(context.Background(), data)
		var ue *document.UnreadableError
		if !errors.As(err, &ue) {
			t.Fatalf("Load(%q...) = %v, want *document.UnreadableError", truncate(data), err)
		}
		if ue.Encrypted {
			t.Fatalf("garbage misreported as encrypted: %v", ue)
		}
	}
}

func truncate(b []byte) []byte {
	if len(b) > 8 {
		return b[:8]
	}
	return b
}

func TestClassifyReadError(t *testing.T) {
	cases := []struct {
		err       error
		encrypted bool
	}{
		// The sentinel must be honored even when the message text says
		// nothing about encryption.
		{&opaqueError{cause: pdfcpu.ErrWrongPassword}, true},
		{errors.New("this file is encrypted"), true},
		{errors.New("xref table corrupt"), false},
	}
	for _, c := range cases {
		var ue *document.UnreadableError
		got := classifyReadError(c.err)
		if !errors.As(got, &ue) {
			t.Fatalf("classifyReadError(%v) = %v, want *document.UnreadableError", c.err, got)
		}
		if ue.Encrypted != c.encrypted {
			t.Fatalf("classifyReadError(%v): Encrypted = %v, want %v", c.err, ue.Encrypted, c.encrypted)
		}
	}
}

// opaqueError hides its cause's text while keeping it on the unwrap chain.
type opaqueError struct{ cause error }

func (e *opaqueError) Error() string { return "read failed" }
func (e *opaqueError) Unwrap() error { return e.cause }

func TestLoadHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Load(ctx, pdftest.Doc(1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestCopyPagesSubset(t *testing.T) {
	c := New()
	doc, err := c.Load(context.Background(), pdftest.Doc(5))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	out, err := doc.CopyPages(context.Background(), []int{2, 3, 4})
	if err != nil {
		t.Fatalf("copy error: %v", err)
	}
	copied, err := c.Load(context.Background(), out)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := copied.PageCount(); got != 3 {
		t.Fatalf("copied page count %d, want 3", got)
	}
}

func TestCopyPagesRepeatedOnSameDocument(t *testing.T) {
	c := New()
	doc, err := c.Load(context.Background(), pdftest.Doc(4))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	for _, pages := range [][]int{{1, 2}, {3}, {4}} {
		out, err := doc.CopyPages(context.Background(), pages)
		if err != nil {
			t.Fatalf("copy %v error: %v", pages, err)
		}
		copied, err := c.Load(context.Background(), out)
		if err != nil {
			t.Fatalf("reload %v error: %v", pages, err)
		}
		if got := copied.PageCount(); got != len(pages) {
			t.Fatalf("copy %v produced %d pages", pages, got)
		}
	}
}

func TestMergeConcatenates(t *testing.T) {
	c := New()
	out, err := c.Merge(context.Background(), [][]byte{pdftest.Doc(3), pdftest.Doc(2)})
	if err != nil {
		t.Fatalf("merge error: %v", err)
	}
	merged, err := c.Load(context.Background(), out)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := merged.PageCount(); got != 5 {
		t.Fatalf("merged page count %d, want 5", got)
	}
}

func TestFromImagesBuildsOnePagePerImage(t *testing.T) {
	c := New()
	images := [][]byte{testJPEG(t, 100, 150), testJPEG(t, 80, 80)}
	out, err := c.FromImages(context.Background(), images)
	if err != nil {
		t.Fatalf("from images error: %v", err)
	}
	doc, err := c.Load(context.Background(), out)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := doc.PageCount(); got != 2 {
		t.Fatalf("page count %d, want 2", got)
	}
}

func TestFromImagesRejectsEmptyList(t *testing.T) {
	if _, err := New().FromImages(context.Background(), nil); err == nil {
		t.Fatal("expected an error for an empty image list")
	}
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("encode fixture jpeg: %v", err)
	}
	return buf.Bytes()
}
