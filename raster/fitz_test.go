package raster

import (
	"context"
	"errors"
	"testing"

	"github.com/wudi/pagekit/document"
	"github.com/wudi/pagekit/pdftest"
)

func TestFitzRendererOpensAndCounts(t *testing.T) {
	sess, err := NewFitzRenderer().Open(pdftest.Doc(3))
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer sess.Close()
	if got := sess.PageCount(); got != 3 {
		t.Fatalf("page count %d, want 3", got)
	}
}

func TestFitzRendererScaleControlsPixelDimensions(t *testing.T) {
	sess, err := NewFitzRenderer().Open(pdftest.DocSized(1, 300, 400))
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer sess.Close()

	cases := []struct {
		scale        float64
		wantW, wantH int
	}{
		{1.0, 300, 400},
		{2.0, 600, 800},
		{0.5, 150, 200},
	}
	for _, tc := range cases {
		img, err := sess.Render(context.Background(), 0, tc.scale)
		if err != nil {
			t.Fatalf("render at %g: %v", tc.scale, err)
		}
		b := img.Bounds()
		if !within(b.Dx(), tc.wantW, 2) || !within(b.Dy(), tc.wantH, 2) {
			t.Fatalf("scale %g: got %dx%d, want about %dx%d", tc.scale, b.Dx(), b.Dy(), tc.wantW, tc.wantH)
		}
	}
}

func within(got, want, tolerance int) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func TestFitzRendererRejectsGarbage(t *testing.T) {
	_, err := NewFitzRenderer().Open(pdftest.Corrupt())
	var ue *document.UnreadableError
	if !errors.As(err, &ue) {
		t.Fatalf("got %v, want *document.UnreadableError", err)
	}
}

func TestFitzRendererRejectsBadScale(t *testing.T) {
	sess, err := NewFitzRenderer().Open(pdftest.Doc(1))
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer sess.Close()
	if _, err := sess.Render(context.Background(), 0, 0); err == nil {
		t.Fatal("zero scale must be rejected")
	}
}

func TestFitzRendererHonorsCancelledContext(t *testing.T) {
	sess, err := NewFitzRenderer().Open(pdftest.Doc(1))
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer sess.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sess.Render(ctx, 0, 1.0); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
