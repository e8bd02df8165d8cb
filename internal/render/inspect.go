package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ErrInspect indicates a document could not be read.
var ErrInspect = errors.New("PDF inspection failed")

// PageSize is a page's MediaBox extent in points.
type PageSize struct {
	Width  float64
	Height float64
}

// A4 is the size of every generated page.
var A4 = PageSize{Width: A4Width, Height: A4Height}

// Inspect opens data as a page-indexed document and returns the size of
// every page. Pages without a readable MediaBox report A4. Parser panics are
// returned as errors.
func Inspect(data []byte) (sizes []PageSize, err error) {
	defer func() {
		if r := recover(); r != nil {
			sizes, err = nil, fmt.Errorf("%w: %v", ErrInspect, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInspect, err)
	}

	n := r.NumPage()
	sizes = make([]PageSize, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			return nil, fmt.Errorf("%w: page %d missing", ErrInspect, i)
		}
		sizes = append(sizes, mediaBox(p.V))
	}
	return sizes, nil
}

// mediaBox resolves the MediaBox of a page dictionary, following /Parent
// for inherited values.
func mediaBox(v pdf.Value) PageSize {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w < 0 {
				w = -w
			}
			if h < 0 {
				h = -h
			}
			if w > 0 && h > 0 {
				return PageSize{Width: w, Height: h}
			}
		}
		v = v.Key("Parent")
	}
	return A4
}

// PageText extracts the plain text of a 1-based page.
func PageText(data []byte, page int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrInspect, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInspect, err)
	}
	if page < 1 || page > r.NumPage() {
		return "", fmt.Errorf("%w: page %d out of range 1..%d", ErrInspect, page, r.NumPage())
	}

	text, err = r.Page(page).GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInspect, err)
	}
	return text, nil
}
