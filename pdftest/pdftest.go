// Package pdftest builds small but fully valid PDF documents in memory for
// use in tests. Generated files use the classic cross-reference layout with
// computed byte offsets so any conformant reader accepts them.
package pdftest

import (
	"bytes"
	"fmt"
)

// Doc returns a letter-sized PDF with n pages. Each page draws a
// "Page i of n" line in Helvetica so pages stay distinguishable after
// copying and merging.
func Doc(n int) []byte { return DocSized(n, 612, 792) }

// DocSized is Doc with an explicit page size in points.
func DocSized(n int, width, height float64) []byte {
	if n < 1 {
		panic("pdftest: page count must be at least 1")
	}

	var buf bytes.Buffer
	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	// Object layout: 1 catalog, 2 page tree, 3 font, 4..3+n content
	// streams, 4+n..3+2n pages.
	var kids bytes.Buffer
	for i := 0; i < n; i++ {
		if i > 0 {
			kids.WriteByte(' ')
		}
		fmt.Fprintf(&kids, "%d 0 R", 4+n+i)
	}
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), n))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for i := 1; i <= n; i++ {
		content := fmt.Sprintf("BT /F1 24 Tf 72 %d Td (Page %d of %d) Tj ET", int(height)-72, i, n)
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}
	for i := 1; i <= n; i++ {
		writeObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			width, height, 3+i))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// Corrupt returns bytes that start like a PDF but cannot be parsed as one.
func Corrupt() []byte {
	return []byte("%PDF-1.7\nthis is not a well-formed document\n%%EOF\n")
}
