package attachment

import (
	"bytes"
	"fmt"

	"github.com/dendoesit/carte/internal/render"
)

// pdfSignature is the prefix every PDF file starts with.
var pdfSignature = []byte("%PDF-")

// MinSize is the smallest buffer accepted as a plausible PDF: header,
// catalog, page tree, one page and a trailer cannot fit in less.
const MinSize = 64

// Info describes a validated attachment.
type Info struct {
	Pages int
	Sizes []render.PageSize
}

// Validate checks that data is a well-formed PDF with at least one page.
// The cheap structural check runs first; the document is only parsed when
// it passes. Validate never panics.
func Validate(data []byte) (*Info, error) {
	if len(data) == 0 {
		return nil, newError(KindEmpty, "", nil)
	}
	if !bytes.HasPrefix(data, pdfSignature) {
		return nil, newError(KindBadHeader, "", fmt.Errorf("starts with %q", preview(data)))
	}
	if len(data) < MinSize {
		return nil, newError(KindUnparseable, "", fmt.Errorf("only %d bytes", len(data)))
	}

	sizes, err := render.Inspect(data)
	if err != nil {
		return nil, newError(KindUnparseable, "", err)
	}
	if len(sizes) == 0 {
		return nil, newError(KindZeroPages, "", nil)
	}

	// The merger must accept the document too, or staging would fail later.
	n, err := render.CountPages(data)
	if err != nil {
		return nil, newError(KindUnparseable, "", err)
	}
	if n == 0 {
		return nil, newError(KindZeroPages, "", nil)
	}
	if n != len(sizes) {
		return nil, newError(KindUnparseable, "", fmt.Errorf("page tree reports %d pages, merger sees %d", len(sizes), n))
	}

	return &Info{Pages: n, Sizes: sizes}, nil
}

// preview returns up to 8 leading bytes, printable ASCII only.
func preview(data []byte) string {
	n := min(len(data), 8)
	out := make([]byte, 0, n)
	for _, b := range data[:n] {
		if b >= 0x20 && b < 0x7f {
			out = append(out, b)
		} else {
			out = append(out, '.')
		}
	}
	return string(out)
}
